package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"paper-scope/config"
)

// browserTransport fügt jeder Anfrage browserübliche Header hinzu.
// Verlagsseiten liefern an nackte Go-Clients oft nur Consent-Seiten.
type browserTransport struct {
	Transport http.RoundTripper
}

func (t *browserTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return t.Transport.RoundTrip(req)
}

const maxRedirects = 5

// elementSelectors sind die Struktur-Selektoren, geordnet von
// verlagsspezifisch zu generisch.
var elementSelectors = []string{
	// Elsevier/ScienceDirect
	"div.abstract.author p",
	"div.abstract.author div",
	`div[class*="abstract"] div.author`,
	`section[id="abstracts"] div`,
	`section[id="abstract"] div`,
	"div#abstracts p",
	"div#abstract p",

	// Wiley
	"section.article-section__abstract p",
	"div.article-section__content p",
	"section.abstract div",

	// AEA/Oxford
	"section.abstract p",
	"div.abstractSection p",
	"div.abstract p",

	// Generisch
	`section[class*="abstract"] p`,
	`div[class*="abstract"] p`,
	`div[id*="abstract"] p`,
	`section[id*="abstract"] p`,
	".abstract-content p",
	".article-abstract p",
	"article section p",
}

// metaSelectors sind die Meta-Tag-Fallbacks nach den Struktur-Selektoren.
var metaSelectors = []string{
	`meta[name="dc.description"]`,
	`meta[name="DC.Description"]`,
	`meta[name="description"]`,
	`meta[property="og:description"]`,
	`meta[name="citation_abstract"]`,
	`meta[property="article:abstract"]`,
}

// junkPhrases kennzeichnen Navigations-/Paywall-Fragmente statt echtem Inhalt.
var junkPhrases = []string{"cookie", "javascript", "browser", "download", "purchase", "subscribe"}

const (
	minFragmentLength = 20
	minAbstractLength = 100
)

// Scraper versucht, fehlende Abstracts von Verlags-Landingpages zu
// rekonstruieren. Best-effort: ein Fehlschlag lässt den vorhandenen
// Abstract-Wert unangetastet und bricht nie den Lauf ab.
type Scraper struct {
	Config  *config.Config
	Logger  *zap.Logger
	client  *http.Client
	limiter *rate.Limiter
}

// NewScraper erstellt einen Scraper mit begrenztem Timeout, begrenzter
// Redirect-Anzahl und einem Limiter, der aufeinanderfolgende Versuche
// zeitlich spreizt (Politeness gegenüber den Verlagen).
func NewScraper(cfg *config.Config, logger *zap.Logger) *Scraper {
	return &Scraper{
		Config: cfg,
		Logger: logger,
		client: &http.Client{
			Timeout:   cfg.ScrapeTimeout,
			Transport: &browserTransport{Transport: http.DefaultTransport},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errors.New("zu viele Redirects")
				}
				return nil
			},
		},
		limiter: rate.NewLimiter(rate.Every(cfg.ScrapeDelay), 1),
	}
}

// FetchAbstract lädt die Landingpage und versucht die Extraktion.
// Der zweite Rückgabewert ist false, wenn kein brauchbarer Abstract
// gefunden wurde; Fehler erreichen den Aufrufer nie.
func (s *Scraper) FetchAbstract(ctx context.Context, pageURL string) (string, bool) {
	if pageURL == "" {
		return "", false
	}
	log := s.Logger.With(zap.String("url", pageURL))

	if err := s.limiter.Wait(ctx); err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		log.Debug("Scrape-Request konnte nicht gebaut werden", zap.Error(err))
		return "", false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Debug("Landingpage nicht erreichbar", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug("Landingpage hat nicht-200-Status zurückgegeben", zap.Int("status", resp.StatusCode))
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Debug("HTML-Parsing fehlgeschlagen", zap.Error(err))
		return "", false
	}

	abstract, ok := extractAbstract(doc)
	if !ok {
		log.Debug("Kein Abstract auf der Landingpage gefunden.")
		return "", false
	}
	log.Debug("Abstract erfolgreich extrahiert", zap.Int("chars", len(abstract)))
	return abstract, true
}

// extractStrategy ist ein einzelner Extraktionsversuch auf dem Dokument.
type extractStrategy func(doc *goquery.Document) (string, bool)

// strategies liefert die geordnete Strategie-Liste: Struktur-Selektoren,
// Meta-Tags, zuletzt die Überschriften-Suche. Links-nach-rechts mit
// Early-Exit ausgewertet, damit jede Stufe einzeln testbar bleibt.
func strategies() []extractStrategy {
	var list []extractStrategy
	for _, sel := range elementSelectors {
		selector := sel
		list = append(list, func(doc *goquery.Document) (string, bool) {
			return combinedElementText(doc, selector)
		})
	}
	for _, sel := range metaSelectors {
		selector := sel
		list = append(list, func(doc *goquery.Document) (string, bool) {
			content, _ := doc.Find(selector).Attr("content")
			if len(content) > minAbstractLength {
				return content, true
			}
			return "", false
		})
	}
	list = append(list, headingSearch)
	return list
}

// extractAbstract wertet die Strategien der Reihe nach aus; der erste
// Kandidat, der die Validierung übersteht, gewinnt.
func extractAbstract(doc *goquery.Document) (string, bool) {
	for _, strategy := range strategies() {
		candidate, ok := strategy(doc)
		if !ok {
			continue
		}
		if cleaned, ok := validateAbstract(candidate); ok {
			return cleaned, true
		}
	}
	return "", false
}

// combinedElementText verkettet den Text aller Treffer eines Selektors,
// die einzeln die Mindestlänge überschreiten.
func combinedElementText(doc *goquery.Document, selector string) (string, bool) {
	var b strings.Builder
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > minFragmentLength {
			b.WriteString(text)
			b.WriteString(" ")
		}
	})
	combined := strings.TrimSpace(b.String())
	if len(combined) >= minAbstractLength {
		return combined, true
	}
	return "", false
}

// headingSearch sucht eine "Abstract"-Überschrift und sammelt den Text
// der folgenden Geschwister-Elemente bis zur nächsten Überschrift.
func headingSearch(doc *goquery.Document) (string, bool) {
	var result string
	doc.Find("h2, h3, h4, div.section-title, span.section-title").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		heading := strings.ToLower(strings.TrimSpace(sel.Text()))
		if !strings.Contains(heading, "abstract") {
			return true
		}

		var b strings.Builder
		next := sel.Next()
		for next.Length() > 0 && !next.Is("h1, h2, h3, h4, h5, h6") {
			text := strings.TrimSpace(next.Text())
			if len(text) > minFragmentLength {
				b.WriteString(text)
				b.WriteString(" ")
			}
			if b.Len() > 200 || len(strings.Fields(b.String())) > 50 {
				break
			}
			next = next.Next()
		}
		content := strings.TrimSpace(b.String())

		// Zweiter Versuch: das nächste Geschwister des Elternelements.
		if len(content) < minAbstractLength {
			content = strings.TrimSpace(sel.Parent().Next().Text())
		}

		if len(content) >= minAbstractLength {
			result = content
			return false
		}
		return true
	})
	if result == "" {
		return "", false
	}
	return result, true
}

// validateAbstract bereinigt einen Kandidaten und verwirft ihn, wenn er
// nach Junk-Fragment aussieht oder zu kurz ist.
func validateAbstract(candidate string) (string, bool) {
	cleaned := StripAbstractLabel(CleanText(candidate))
	lower := strings.ToLower(cleaned)
	for _, phrase := range junkPhrases {
		if strings.Contains(lower, phrase) {
			return "", false
		}
	}
	if len(cleaned) <= minAbstractLength {
		return "", false
	}
	return cleaned, true
}
