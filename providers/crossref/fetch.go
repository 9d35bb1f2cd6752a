package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"paper-scope/config"
	"paper-scope/models"
	"paper-scope/providers"
	"paper-scope/services"
)

const baseURL = "https://api.crossref.org/works"

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Fetcher implementiert das Provider-Interface für die Crossref-API.
// Sie ist der universelle Fallback, da nicht jedes Journal einen
// öffentlichen Feed anbietet. Aufrufer müssen aufeinanderfolgende
// Fetches zeitlich spreizen (siehe FetchService), Crossref drosselt sonst.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger

	now func() time.Time
}

// NewFetcher erstellt einen neuen Crossref-Fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{Config: cfg, Logger: logger, now: time.Now}
}

// Name gibt den Namen des Providers zurück.
func (f *Fetcher) Name() string {
	return "crossref"
}

// Supports meldet, ob das Journal den API-Fallback erlaubt. Mit ISSN ist
// die Abfrage exakt, sonst bleibt nur die unschärfere Freitext-Suche.
func (f *Fetcher) Supports(j models.Journal) bool {
	return j.UseAPI
}

// Fetch fragt die works-API mit Datums-Floor ab, absteigend nach
// Publikationsdatum sortiert und auf CrossrefRows begrenzt.
// Fehler werden geloggt und als leere Liste gemeldet.
func (f *Fetcher) Fetch(ctx context.Context, j models.Journal) ([]*models.Paper, error) {
	log := f.Logger.With(zap.String("journal", j.Name))
	log.Info("Starte Crossref-Abfrage.")

	fromDate := f.now().AddDate(0, -f.Config.RetentionMonths, 0).Format("2006-01-02")

	params := url.Values{}
	if j.ISSN != "" {
		params.Set("filter", fmt.Sprintf("issn:%s,from-pub-date:%s", j.ISSN, fromDate))
	} else {
		params.Set("query", j.Name)
		params.Set("filter", "from-pub-date:"+fromDate)
	}
	params.Set("rows", fmt.Sprint(f.Config.CrossrefRows))
	params.Set("sort", "published")
	params.Set("order", "desc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Warn("Crossref-Request konnte nicht gebaut werden", zap.Error(err))
		return nil, nil
	}
	req.Header.Set("User-Agent", fmt.Sprintf("paper-scope/1.0 (mailto:%s)", f.Config.CrossrefMailto))

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Warn("Crossref-Abfrage fehlgeschlagen", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Crossref-API hat nicht-200-Status zurückgegeben", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var worksResp WorksResponse
	if err := json.NewDecoder(resp.Body).Decode(&worksResp); err != nil {
		log.Warn("Fehler beim Parsen der Crossref-Antwort", zap.Error(err))
		return nil, nil
	}

	var papers []*models.Paper
	for i := range worksResp.Message.Items {
		paper, ok := f.mapItemToModel(&worksResp.Message.Items[i], j)
		if !ok {
			continue
		}
		papers = append(papers, paper)
	}

	log.Info("Crossref-Abfrage abgeschlossen", zap.Int("found_papers", len(papers)))
	return papers, nil
}

// mapItemToModel konvertiert ein Crossref-Work in unser Paper-Modell.
// Der zweite Rückgabewert ist false, wenn das Work herausgefiltert wird.
func (f *Fetcher) mapItemToModel(item *Item, j models.Journal) (*models.Paper, bool) {
	var title string
	if len(item.Title) > 0 {
		title = services.CleanText(item.Title[0])
	}
	if !providers.LooksLikeArticle(title) {
		return nil, false
	}

	authors := joinAuthors(item.Author)
	if !providers.HasValidAuthors(authors) {
		return nil, false
	}

	field := j.Field
	if field == "" {
		field = models.FieldForJournal(j.Name, nil)
	}

	return &models.Paper{
		Title:    title,
		Authors:  authors,
		Journal:  j.Name,
		Field:    field,
		Date:     f.resolveDate(item),
		Abstract: services.CleanText(item.Abstract),
		DOI:      item.DOI,
		URL:      item.URL,
	}, true
}

// joinAuthors baut aus den given/family-Paaren einen Anzeige-String.
// Komplett großgeschriebene Namen werden pro Name repariert.
func joinAuthors(authors []Author) string {
	var names []string
	for _, a := range authors {
		full := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
		if full == "" {
			continue
		}
		names = append(names, services.RepairAuthorCase(full))
	}
	return strings.Join(names, ", ")
}

// resolveDate setzt ein YYYY-MM-DD-Datum aus den date-parts zusammen.
// Fehlende Monate und Tage werden zu "01"; fehlt das Datum ganz,
// gilt das heutige Datum.
func (f *Fetcher) resolveDate(item *Item) string {
	parts := firstDateParts(item.Published)
	if parts == nil {
		parts = firstDateParts(item.Issued)
	}
	if len(parts) == 0 || parts[0] == 0 {
		return f.now().Format("2006-01-02")
	}
	year := parts[0]
	month, day := 1, 1
	if len(parts) > 1 {
		month = parts[1]
	}
	if len(parts) > 2 {
		day = parts[2]
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func firstDateParts(d *DateParts) []int {
	if d == nil || len(d.DateParts) == 0 {
		return nil
	}
	return d.DateParts[0]
}
