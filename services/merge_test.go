package services

import (
	"testing"
	"time"

	"paper-scope/models"
)

func paper(title, doi, date string) *models.Paper {
	return &models.Paper{Title: title, DOI: doi, Date: date, Journal: "Journal of Finance", Field: "Finance"}
}

func TestMergeIdempotent(t *testing.T) {
	existing := []*models.Paper{
		paper("Asset Pricing Anomalies", "10.1/a", "2025-06-01"),
		paper("Bank Runs Revisited", "10.1/b", "2025-01-01"),
	}

	got := Merge(existing, nil)
	if len(got) != len(existing) {
		t.Fatalf("Merge(X, nil) has %d papers, want %d", len(got), len(existing))
	}
	for i, p := range got {
		if p != existing[i] {
			t.Errorf("paper %d: got %q, want %q", i, p.Title, existing[i].Title)
		}
	}
}

func TestMergeDedupByDOI(t *testing.T) {
	old := paper("Old Title", "10.1/x", "2025-01-01")
	fresh := paper("New Title", "10.1/x", "2025-02-01")

	got := Merge([]*models.Paper{old}, []*models.Paper{fresh})
	if len(got) != 1 {
		t.Fatalf("got %d papers, want 1", len(got))
	}
	if got[0] != fresh {
		t.Errorf("got %q, want the freshly fetched record %q", got[0].Title, fresh.Title)
	}
}

func TestMergeDedupByTitle(t *testing.T) {
	old := &models.Paper{Title: "  The Cross-Section of Returns ", Date: "2025-01-01"}
	fresh := &models.Paper{Title: "The Cross-Section of Returns", Date: "2025-01-01", Abstract: "updated"}

	got := Merge([]*models.Paper{old}, []*models.Paper{fresh})
	if len(got) != 1 {
		t.Fatalf("got %d papers, want 1", len(got))
	}
	if got[0].Abstract != "updated" {
		t.Errorf("dedup kept the stale record: %+v", got[0])
	}
}

func TestMergeSortsByDateDescending(t *testing.T) {
	a := paper("A", "10.1/1", "2025-01-01")
	b := paper("B", "10.1/2", "2025-06-01")
	c := paper("C", "10.1/3", "2024-12-01")

	got := Merge([]*models.Paper{a, b}, []*models.Paper{c})
	wantOrder := []string{"B", "A", "C"}
	for i, want := range wantOrder {
		if got[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestMergeSortsUnparseableLast(t *testing.T) {
	good := paper("Good", "10.1/g", "2024-03-01")
	bad := paper("Bad", "10.1/b", "not-a-date")

	got := Merge([]*models.Paper{bad}, []*models.Paper{good})
	if got[0] != good || got[1] != bad {
		t.Errorf("unparseable date should sort last, got order [%q, %q]", got[0].Title, got[1].Title)
	}
}

func TestFilterRecent(t *testing.T) {
	now := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		keep bool
	}{
		{name: "well within window", date: "2025-06-01", keep: true},
		{name: "exactly at cutoff", date: "2025-01-15", keep: true},
		{name: "one day older than cutoff", date: "2025-01-14", keep: false},
		{name: "full timestamp within window", date: "2025-05-01T08:30:00Z", keep: true},
		{name: "unparseable date dropped", date: "garbled", keep: false},
		{name: "empty date dropped", date: "", keep: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []*models.Paper{paper("T", "10.1/t", tt.date)}
			got := FilterRecent(in, 6, now)
			if kept := len(got) == 1; kept != tt.keep {
				t.Errorf("FilterRecent kept=%v, want %v", kept, tt.keep)
			}
		})
	}
}
