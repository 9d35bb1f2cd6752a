package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tagRE entfernt alle <...>-Spans, auch namespaced Tags wie <jats:p>.
var tagRE = regexp.MustCompile(`<[^>]*>`)

// abstractLabelRE entfernt ein führendes "Abstract"-Label.
var abstractLabelRE = regexp.MustCompile(`(?i)^abstract\s*`)

// entityReplacer dekodiert die bekannten Entities inklusive der
// typografischen Anführungszeichen. Unbekannte Entities bleiben bewusst
// unverändert, daher kein html.UnescapeString.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&lsquo;", "‘",
	"&rsquo;", "’",
	"&ldquo;", "“",
	"&rdquo;", "”",
	"&#8216;", "‘",
	"&#8217;", "’",
	"&#8220;", "“",
	"&#8221;", "”",
)

// ligatureReplacer ersetzt gängige Ligaturen aus Verlags-HTML.
var ligatureReplacer = strings.NewReplacer(
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬆ", "st",
)

// CleanText macht rohen Titel-/Abstract-Text anzeigesicher: Tags
// entfernen, Entities dekodieren, Ligaturen auflösen, NFC-normalisieren,
// Whitespace-Läufe zu einem Leerzeichen zusammenfassen, trimmen.
// Reine Funktion, wirft nie einen Fehler.
func CleanText(s string) string {
	s = tagRE.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = ligatureReplacer.Replace(s)
	if normalized, _, err := transform.String(norm.NFC, s); err == nil {
		s = normalized
	}
	return strings.Join(strings.Fields(s), " ")
}

// RepairAuthorCase repariert komplett großgeschriebene Autorennamen
// ("JANE DOE" -> "Jane Doe"). Namen mit legitimer Binnen-Großschreibung
// ("Jane McDoe") bleiben unangetastet.
func RepairAuthorCase(s string) string {
	if s == "" || s != strings.ToUpper(s) {
		return s
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// StripAbstractLabel entfernt ein führendes wörtliches "Abstract",
// das viele Verlagsseiten vor den eigentlichen Text setzen.
func StripAbstractLabel(s string) string {
	return strings.TrimSpace(abstractLabelRE.ReplaceAllString(s, ""))
}
