package providers

import "strings"

// invalidTitlePatterns erkennen Nicht-Artikel (Front Matter, Korrekturen,
// redaktionelle Mitteilungen), die in Feeds und API-Antworten als Paper
// auftauchen. Case-insensitiver Substring-Match, datengetrieben, damit
// die Liste ohne Adapter-Änderung erweiterbar bleibt.
var invalidTitlePatterns = []string{
	"untitled",
	"announcement",
	"issue information",
	"front matter",
	"back matter",
	"table of contents",
	"editorial board",
	"index",
	"erratum",
	"corrigendum",
	"retraction",
	"cover",
	"correction",
	"author correction",
	"finance association",
	"economic association",
	"accounting association",
	"expanding our insights",
	"acknowledgement",
	"acknowledgment",
	"recent referees",
	"referee",
	"references",
	"bibliography",
}

// minTitleLength: kürzere Titel sind erfahrungsgemäß keine Artikel.
const minTitleLength = 10

// LooksLikeArticle prüft, ob ein Titel nach Länge und Denylist wie ein
// echter Forschungsartikel aussieht.
func LooksLikeArticle(title string) bool {
	if len(title) <= minTitleLength {
		return false
	}
	lower := strings.ToLower(title)
	for _, pattern := range invalidTitlePatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// HasValidAuthors prüft, ob das Autorenfeld brauchbar ist
// (nicht leer, nicht der "unknown"-Platzhalter).
func HasValidAuthors(authors string) bool {
	trimmed := strings.TrimSpace(authors)
	return trimmed != "" && !strings.EqualFold(trimmed, "unknown")
}
