package services

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"paper-scope/config"
	"paper-scope/models"
	"paper-scope/providers"
	"paper-scope/storage"
)

// FetchService orchestriert den gesamten Pipeline-Lauf: Snapshot laden,
// Altbestand prunen, pro Journal die Adapter in Fallback-Reihenfolge
// abfragen, fehlende Abstracts rekonstruieren, mergen, persistieren.
type FetchService struct {
	Config    *config.Config
	Logger    *zap.Logger
	Providers []providers.Provider
	Scraper   *Scraper
	Journals  []models.Journal

	// S3Client ist optional; gesetzt wird der Snapshot nach dem
	// Persistieren zusätzlich gespiegelt.
	S3Client *s3.Client

	limiter *rate.Limiter
	now     func() time.Time
}

// NewFetchService erstellt eine neue Instanz des FetchService.
func NewFetchService(cfg *config.Config, logger *zap.Logger, provs []providers.Provider, scraper *Scraper, journals []models.Journal, s3Client *s3.Client) *FetchService {
	return &FetchService{
		Config:    cfg,
		Logger:    logger,
		Providers: provs,
		Scraper:   scraper,
		Journals:  journals,
		S3Client:  s3Client,
		limiter:   rate.NewLimiter(rate.Every(cfg.FetchDelay), 1),
		now:       time.Now,
	}
}

// Run führt einen vollständigen Pipeline-Lauf aus und gibt die Anzahl
// der Paper im finalen Snapshot zurück. Nur ein Persistierungsfehler
// ist fatal; alle Quellfehler sind pro Journal isoliert.
func (f *FetchService) Run(ctx context.Context) (int, error) {
	now := f.now()
	log := f.Logger

	snap := storage.LoadSnapshot(f.Config.SnapshotPath)
	log.Info("Snapshot geladen", zap.Int("existing_papers", len(snap.Papers)))

	pruned := FilterRecent(snap.Papers, f.Config.RetentionMonths, now)
	log.Info("Altbestand gefiltert",
		zap.Int("kept", len(pruned)),
		zap.Int("dropped", len(snap.Papers)-len(pruned)))

	fetched := f.fetchAll(ctx)
	log.Info("Alle Journale abgefragt", zap.Int("fetched_papers", len(fetched)))

	f.recoverAbstracts(ctx, fetched)

	merged := Merge(pruned, fetched)
	log.Info("Merge abgeschlossen", zap.Int("unique_papers", len(merged)))

	result := &models.Snapshot{
		LastUpdated: now.UTC().Format(time.RFC3339),
		Count:       len(merged),
		Papers:      merged,
	}
	if err := storage.SaveSnapshot(f.Config.SnapshotPath, result); err != nil {
		return 0, err
	}
	log.Info("Snapshot persistiert", zap.String("path", f.Config.SnapshotPath), zap.Int("count", result.Count))

	f.mirrorSnapshot()

	return len(merged), nil
}

// fetchAll fragt jedes konfigurierte Journal ab: Feed zuerst, API als
// Fallback. Zwischen den Journalen erzwingt der Limiter den
// konfigurierten Mindestabstand.
func (f *FetchService) fetchAll(ctx context.Context) []*models.Paper {
	var all []*models.Paper
	for _, journal := range f.Journals {
		if err := f.limiter.Wait(ctx); err != nil {
			f.Logger.Warn("Lauf abgebrochen", zap.Error(err))
			return all
		}

		log := f.Logger.With(zap.String("journal", journal.Name))
		found := false
		for _, provider := range f.Providers {
			if !provider.Supports(journal) {
				continue
			}
			papers, err := provider.Fetch(ctx, journal)
			if err != nil {
				log.Warn("Adapter-Fehler, fahre mit nächstem Adapter fort",
					zap.String("provider", provider.Name()), zap.Error(err))
				continue
			}
			if len(papers) == 0 {
				continue
			}
			log.Info("Journal erfolgreich abgefragt",
				zap.String("provider", provider.Name()), zap.Int("count", len(papers)))
			all = append(all, papers...)
			found = true
			break
		}
		if !found {
			log.Warn("Kein Adapter hat Paper geliefert.")
		}
	}
	return all
}

// recoverAbstracts versucht für eine begrenzte Zahl von Papern ohne
// brauchbaren Abstract die Rekonstruktion über die Landingpage. Die
// Obergrenze hält die Gesamtlaufzeit beschränkt; das Spacing zwischen
// den Versuchen übernimmt der Scraper selbst.
func (f *FetchService) recoverAbstracts(ctx context.Context, papers []*models.Paper) {
	if f.Scraper == nil {
		return
	}
	var candidates []*models.Paper
	for _, p := range papers {
		if needsAbstract(p) && p.URL != "" {
			candidates = append(candidates, p)
			if len(candidates) == f.Config.ScrapeMaxPerRun {
				break
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	f.Logger.Info("Versuche fehlende Abstracts zu rekonstruieren", zap.Int("candidates", len(candidates)))

	recovered := 0
	for _, p := range candidates {
		if abstract, ok := f.Scraper.FetchAbstract(ctx, p.URL); ok {
			p.Abstract = abstract
			recovered++
		}
	}
	f.Logger.Info("Abstract-Rekonstruktion abgeschlossen",
		zap.Int("recovered", recovered), zap.Int("attempted", len(candidates)))
}

// needsAbstract meldet, ob der Abstract fehlt, der Platzhalter ist oder
// zu kurz für eine sinnvolle Anzeige.
func needsAbstract(p *models.Paper) bool {
	return p.Abstract == "" || p.Abstract == models.NoAbstract || len(p.Abstract) < 100
}

// mirrorSnapshot lädt den geschriebenen Snapshot zusätzlich nach S3,
// falls konfiguriert. Fehler sind nicht fatal: die lokale Datei ist der
// maßgebliche Stand.
func (f *FetchService) mirrorSnapshot() {
	if f.S3Client == nil || f.Config.S3Bucket == "" {
		return
	}
	data, err := os.ReadFile(f.Config.SnapshotPath)
	if err != nil {
		f.Logger.Warn("Snapshot für S3-Mirror nicht lesbar", zap.Error(err))
		return
	}
	key := path.Join(f.Config.S3Prefix, "papers-data.json")
	link, err := storage.UploadFile(f.S3Client, f.Config.S3Bucket, key, data, f.Config)
	if err != nil {
		f.Logger.Warn("S3-Mirror fehlgeschlagen", zap.Error(err))
		return
	}
	f.Logger.Info("Snapshot nach S3 gespiegelt", zap.String("link", link))
}
