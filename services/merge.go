package services

import (
	"sort"
	"time"

	"paper-scope/models"
)

// Merge kombiniert persistierte und frisch geholte Paper. Der Schlüssel
// ist die Identität (DOI, sonst normalisierter Titel); bei Kollision
// überschreibt das frisch geholte Paper das persistierte, Frische vor
// Vollständigkeit. Das Ergebnis ist absteigend nach Datum sortiert,
// Gleichstände bleiben in Einfüge-Reihenfolge.
func Merge(existing, incoming []*models.Paper) []*models.Paper {
	index := make(map[string]int)
	var ordered []*models.Paper

	insert := func(p *models.Paper) {
		key := p.Key()
		if pos, ok := index[key]; ok {
			ordered[pos] = p
			return
		}
		index[key] = len(ordered)
		ordered = append(ordered, p)
	}

	for _, p := range existing {
		insert(p)
	}
	for _, p := range incoming {
		insert(p)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return paperTime(ordered[i]).After(paperTime(ordered[j]))
	})
	return ordered
}

// FilterRecent behält Paper, deren Datum innerhalb des Retention-Fensters
// liegt (>= Stichtag, der Stichtag selbst bleibt also erhalten).
// Unparsebares Datum gilt als epochenalt und fällt heraus, da die
// Aktualität nicht verifizierbar ist.
func FilterRecent(papers []*models.Paper, months int, now time.Time) []*models.Paper {
	cutoff := now.AddDate(0, -months, 0)
	var kept []*models.Paper
	for _, p := range papers {
		if !paperTime(p).Before(cutoff) {
			kept = append(kept, p)
		}
	}
	return kept
}

// paperTime parst das Datum eines Papers; unparsebar ergibt den
// Null-Zeitpunkt, sodass solche Records ans Ende sortieren.
func paperTime(p *models.Paper) time.Time {
	t, ok := models.ParseDate(p.Date)
	if !ok {
		return time.Time{}
	}
	return t
}
