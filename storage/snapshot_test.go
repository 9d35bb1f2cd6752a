package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"paper-scope/models"
)

func TestLoadSnapshotMissingFile(t *testing.T) {
	snap := LoadSnapshot(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if snap == nil {
		t.Fatal("LoadSnapshot returned nil")
	}
	if snap.Count != 0 || len(snap.Papers) != 0 {
		t.Errorf("expected empty snapshot, got count=%d papers=%d", snap.Count, len(snap.Papers))
	}
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers-data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap := LoadSnapshot(path)
	if snap.Count != 0 || len(snap.Papers) != 0 {
		t.Errorf("expected empty snapshot, got count=%d papers=%d", snap.Count, len(snap.Papers))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers-data.json")
	snap := &models.Snapshot{
		LastUpdated: "2025-07-15T06:00:00Z",
		Count:       2,
		Papers: []*models.Paper{
			{Title: "First Article", Authors: "Jane Doe", Journal: "Nature", Field: "Other", Date: "2025-07-01", DOI: "10.1/1"},
			{Title: "Second Article", Authors: "John Roe", Journal: "Econometrica", Field: "Economics", Date: "2025-06-01"},
		},
	}
	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got := LoadSnapshot(path)
	if got.LastUpdated != snap.LastUpdated {
		t.Errorf("LastUpdated = %q, want %q", got.LastUpdated, snap.LastUpdated)
	}
	if got.Count != 2 || len(got.Papers) != 2 {
		t.Fatalf("count=%d papers=%d, want 2/2", got.Count, len(got.Papers))
	}
	if got.Papers[0].Title != "First Article" || got.Papers[1].DOI != "" {
		t.Errorf("papers nicht korrekt gelesen: %+v", got.Papers)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\"lastUpdated\"") {
		t.Error("JSON-Feldnamen entsprechen nicht dem Snapshot-Format")
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("Snapshot ist nicht eingerückt")
	}
}

func TestSaveSnapshotOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papers-data.json")
	if err := SaveSnapshot(path, &models.Snapshot{Count: 1, Papers: []*models.Paper{{Title: "Old"}}}); err != nil {
		t.Fatal(err)
	}
	if err := SaveSnapshot(path, &models.Snapshot{Count: 1, Papers: []*models.Paper{{Title: "New"}}}); err != nil {
		t.Fatal(err)
	}

	got := LoadSnapshot(path)
	if len(got.Papers) != 1 || got.Papers[0].Title != "New" {
		t.Errorf("unerwarteter Inhalt nach Overwrite: %+v", got.Papers)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Temp-Dateien nicht aufgeräumt: %d Einträge", len(entries))
	}
}
