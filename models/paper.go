package models

import (
	"strings"
	"time"
)

// NoAbstract ist der Platzhalter, wenn eine Quelle keinen Abstract liefert.
const NoAbstract = "No abstract available"

// Paper repräsentiert eine wissenschaftliche Publikation und deren Metadaten,
// wie sie im Snapshot persistiert und vom Frontend konsumiert werden.
type Paper struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Journal  string `json:"journal"`
	Field    string `json:"field"`
	Date     string `json:"date"`
	Abstract string `json:"abstract,omitempty"`
	DOI      string `json:"doi,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Key liefert den Identitätsschlüssel für die De-Duplizierung:
// DOI falls vorhanden, sonst der kleingeschriebene, getrimmte Titel.
func (p *Paper) Key() string {
	if p.DOI != "" {
		return p.DOI
	}
	return strings.ToLower(strings.TrimSpace(p.Title))
}

// dateLayouts sind die akzeptierten Datumsformate: ISO-Datum,
// voller Zeitstempel sowie die üblichen RSS-pubDate-Varianten.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate parst einen Datums-String des Paper-Modells. Der zweite
// Rückgabewert ist false, wenn kein bekanntes Format passt; der Aufrufer
// behandelt solche Records als epochenalt (siehe services.FilterRecent).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Snapshot ist das persistierte JSON-Artefakt und der einzige
// Datenvertrag mit dem Frontend.
type Snapshot struct {
	LastUpdated string   `json:"lastUpdated"`
	Count       int      `json:"count"`
	Papers      []*Paper `json:"papers"`
}
