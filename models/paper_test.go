package models

import (
	"testing"
	"time"
)

func TestPaperKey(t *testing.T) {
	tests := []struct {
		name  string
		paper Paper
		want  string
	}{
		{name: "doi wins", paper: Paper{Title: "Some Title", DOI: "10.1111/jofi.12345"}, want: "10.1111/jofi.12345"},
		{name: "title lowercased and trimmed", paper: Paper{Title: "  Some Title "}, want: "some title"},
		{name: "empty paper", paper: Paper{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.paper.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "plain date", input: "2025-06-03", want: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "rfc3339", input: "2025-06-03T12:30:00Z", want: time.Date(2025, 6, 3, 12, 30, 0, 0, time.UTC), ok: true},
		{name: "rfc1123z", input: "Tue, 03 Jun 2025 12:30:00 +0000", want: time.Date(2025, 6, 3, 12, 30, 0, 0, time.UTC), ok: true},
		{name: "garbage", input: "kein Datum", ok: false},
		{name: "empty", input: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldForJournal(t *testing.T) {
	journals := []Journal{
		{Name: "Journal of Finance", Field: "Finance"},
		{Name: "Nature", Field: "Other"},
	}
	tests := []struct {
		name    string
		journal string
		want    string
	}{
		{name: "exact match wins over heuristic", journal: "Nature", want: "Other"},
		{name: "configured journal", journal: "Journal of Finance", want: "Finance"},
		{name: "economics heuristic", journal: "Review of Economic Studies", want: "Economics"},
		{name: "accounting heuristic", journal: "Journal of Accounting Research", want: "Accounting"},
		{name: "science heuristic", journal: "Science Advances", want: "Science"},
		{name: "unknown journal", journal: "Acta Mathematica", want: "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldForJournal(tt.journal, journals); got != tt.want {
				t.Errorf("FieldForJournal(%q) = %q, want %q", tt.journal, got, tt.want)
			}
		})
	}
}
