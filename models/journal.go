package models

import "strings"

// Journal beschreibt eine konfigurierte Zeitschrift: Name, optionale
// ISSN für exaktes API-Matching, Fachgebiet, optionale Feed-URL und
// ob die Crossref-API als Fallback genutzt werden darf.
type Journal struct {
	Name   string `json:"name"`
	ISSN   string `json:"issn,omitempty"`
	Field  string `json:"field"`
	RSS    string `json:"rss,omitempty"`
	UseAPI bool   `json:"useAPI"`
}

// FieldForJournal bestimmt das Fachgebiet zu einem Journalnamen:
// zuerst exakter Treffer in der Konfiguration, danach Substring-Heuristik.
func FieldForJournal(name string, journals []Journal) string {
	for _, j := range journals {
		if j.Name == name {
			return j.Field
		}
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "economic"):
		return "Economics"
	case strings.Contains(lower, "finance"):
		return "Finance"
	case strings.Contains(lower, "accounting"):
		return "Accounting"
	case strings.Contains(lower, "nature"), strings.Contains(lower, "science"):
		return "Science"
	}
	return "Other"
}
