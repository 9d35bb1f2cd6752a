package rss

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"paper-scope/config"
	"paper-scope/models"
	"paper-scope/providers"
	"paper-scope/services"
)

// Fetcher implementiert das Provider-Interface für Journal-Feeds
// (RSS/Atom). Feeds sind die bevorzugte Quelle: billiger als die API
// und ohne Rate-Limits.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
	parser *gofeed.Parser

	// now ist injizierbar, damit Tests das Retention-Fenster fixieren können.
	now func() time.Time
}

// NewFetcher erstellt einen neuen Feed-Fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = "paper-scope/1.0"
	return &Fetcher{Config: cfg, Logger: logger, parser: parser, now: time.Now}
}

// Name gibt den Namen des Providers zurück.
func (f *Fetcher) Name() string {
	return "rss"
}

// Supports meldet, ob für das Journal ein Feed konfiguriert ist.
func (f *Fetcher) Supports(j models.Journal) bool {
	return j.RSS != ""
}

// Fetch holt und parst den Feed des Journals und behält nur Einträge,
// die innerhalb des Retention-Fensters liegen und wie echte Artikel
// aussehen. Fehler werden geloggt und als leere Liste gemeldet.
func (f *Fetcher) Fetch(ctx context.Context, j models.Journal) ([]*models.Paper, error) {
	log := f.Logger.With(zap.String("journal", j.Name), zap.String("feed", j.RSS))
	log.Info("Starte Feed-Abruf.")

	feed, err := f.parser.ParseURLWithContext(j.RSS, ctx)
	if err != nil {
		log.Warn("Feed-Abruf fehlgeschlagen", zap.Error(err))
		return nil, nil
	}

	cutoff := f.now().AddDate(0, -f.Config.RetentionMonths, 0)

	var papers []*models.Paper
	for _, item := range feed.Items {
		if len(papers) >= f.Config.FeedMaxItems {
			break
		}
		paper, ok := f.mapItemToModel(item, j, cutoff)
		if !ok {
			continue
		}
		papers = append(papers, paper)
	}

	log.Info("Feed-Abruf abgeschlossen", zap.Int("found_papers", len(papers)))
	return papers, nil
}

// mapItemToModel wandelt einen Feed-Eintrag in unser Paper-Modell um.
// Der zweite Rückgabewert ist false, wenn der Eintrag herausgefiltert wird.
func (f *Fetcher) mapItemToModel(item *gofeed.Item, j models.Journal, cutoff time.Time) (*models.Paper, bool) {
	published, ok := itemDate(item)
	if !ok || published.Before(cutoff) {
		return nil, false
	}

	title := services.CleanText(item.Title)
	if !providers.LooksLikeArticle(title) {
		return nil, false
	}

	authors := itemAuthors(item)
	if !providers.HasValidAuthors(authors) {
		return nil, false
	}

	abstract := item.Description
	if abstract == "" {
		abstract = item.Content
	}
	if abstract == "" {
		abstract = models.NoAbstract
	} else {
		abstract = services.CleanText(abstract)
	}

	field := j.Field
	if field == "" {
		field = models.FieldForJournal(j.Name, nil)
	}

	return &models.Paper{
		Title:    title,
		Authors:  services.RepairAuthorCase(authors),
		Journal:  j.Name,
		Field:    field,
		Date:     published.Format(time.RFC3339),
		Abstract: abstract,
		URL:      item.Link,
	}, true
}

// itemDate bestimmt das Publikationsdatum eines Feed-Eintrags.
func itemDate(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, true
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed, true
	}
	if t, ok := models.ParseDate(item.Published); ok {
		return t, true
	}
	return time.Time{}, false
}

// itemAuthors sammelt die Autoren eines Feed-Eintrags: Author-Elemente,
// danach Dublin-Core-Creator, sonst "Unknown".
func itemAuthors(item *gofeed.Item) string {
	var names []string
	for _, person := range item.Authors {
		if person != nil && strings.TrimSpace(person.Name) != "" {
			names = append(names, strings.TrimSpace(person.Name))
		}
	}
	if len(names) == 0 && item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			if strings.TrimSpace(creator) != "" {
				names = append(names, strings.TrimSpace(creator))
			}
		}
	}
	if len(names) == 0 {
		return "Unknown"
	}
	return strings.Join(names, ", ")
}
