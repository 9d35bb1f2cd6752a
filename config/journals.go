package config

import (
	"encoding/json"
	"os"

	"paper-scope/models"
)

// DefaultJournals ist die eingebaute Journal-Tabelle. Die ISSN erlaubt
// exaktes Matching in der Crossref-API; Journals ohne öffentlichen Feed
// haben eine leere RSS-URL und laufen über den API-Fallback.
func DefaultJournals() []models.Journal {
	return []models.Journal{
		{Name: "American Economic Review", ISSN: "0002-8282", Field: "Economics", RSS: "https://www.aeaweb.org/journals/aer/feed", UseAPI: true},
		{Name: "Quarterly Journal of Economics", ISSN: "0033-5533", Field: "Economics", UseAPI: true},
		{Name: "Journal of Political Economy", ISSN: "0022-3808", Field: "Economics", UseAPI: true},
		{Name: "Journal of Finance", ISSN: "0022-1082", Field: "Finance", UseAPI: true},
		{Name: "Journal of Financial Economics", ISSN: "0304-405X", Field: "Finance", UseAPI: true},
		{Name: "Review of Financial Studies", ISSN: "0893-9454", Field: "Finance", UseAPI: true},
		{Name: "Journal of Accounting and Economics", ISSN: "0165-4101", Field: "Accounting", UseAPI: true},
		{Name: "Journal of Accounting Research", ISSN: "0021-8456", Field: "Accounting", UseAPI: true},
		{Name: "The Accounting Review", ISSN: "0001-4826", Field: "Accounting", UseAPI: true},
		{Name: "Nature", ISSN: "0028-0836", Field: "Science", RSS: "https://www.nature.com/nature.rss", UseAPI: true},
	}
}

// LoadJournals liefert die Journal-Liste: aus der optionalen JSON-Datei,
// sonst die eingebaute Tabelle.
func LoadJournals(path string) ([]models.Journal, error) {
	if path == "" {
		return DefaultJournals(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var journals []models.Journal
	if err := json.Unmarshal(data, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}
