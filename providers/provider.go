package providers

import (
	"context"

	"paper-scope/models"
)

// Provider ist das Interface, das jeder Quell-Adapter (Feed, Crossref)
// implementieren muss.
type Provider interface {
	// Name gibt den eindeutigen Namen des Adapters zurück (z.B. "rss").
	Name() string

	// Supports meldet, ob der Adapter das Journal bedienen kann
	// (Feed-URL konfiguriert bzw. API-Fallback erlaubt).
	Supports(j models.Journal) bool

	// Fetch liefert die aktuellen Paper-Kandidaten für ein Journal.
	// Transport- und Parse-Fehler werden geloggt und als leere Liste
	// gemeldet; ein Fehler bricht niemals den Gesamtlauf ab.
	Fetch(ctx context.Context, j models.Journal) ([]*models.Paper, error)
}
