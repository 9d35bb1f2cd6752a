package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"paper-scope/config"
	"paper-scope/providers"
	"paper-scope/providers/crossref"
	"paper-scope/providers/rss"
	"paper-scope/services"
	"paper-scope/storage"
)

var (
	snapshotPapers prometheus.Gauge
	runsCounter    prometheus.Counter
)

func init() {
	snapshotPapers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snapshot_papers",
		Help: "Number of papers in the last persisted snapshot.",
	})
	runsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "Total number of completed pipeline runs.",
	})
	prometheus.MustRegister(snapshotPapers, runsCounter)
}

func main() {
	schedule := flag.Bool("schedule", false, "stay resident and run the pipeline on CRON_SCHEDULE")
	flag.Parse()

	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	journals, err := config.LoadJournals(cfg.JournalsFile)
	if err != nil {
		logging.Fatal("Journal config load error", zap.Error(err))
	}
	logging.Info("Journal configuration loaded", zap.Int("journals", len(journals)))

	// Setup Providers
	enabledProviderNames := strings.Split(cfg.EnabledProviders, ",")
	var enabledProviders []providers.Provider
	for _, name := range enabledProviderNames {
		switch strings.TrimSpace(name) {
		case "rss":
			enabledProviders = append(enabledProviders, rss.NewFetcher(cfg, logging))
		case "crossref":
			enabledProviders = append(enabledProviders, crossref.NewFetcher(cfg, logging))
		default:
			logging.Warn("Unknown provider in config", zap.String("provider_name", name))
		}
	}
	if len(enabledProviders) == 0 {
		logging.Fatal("No valid providers enabled. Check ENABLED_PROVIDERS in .env")
	}
	logging.Info("Active providers loaded", zap.Strings("providers", enabledProviderNames))

	// Optionales S3-Mirroring
	var s3Client *s3.Client
	if cfg.S3Bucket != "" {
		s3Client, err = storage.NewS3Client(cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
	}

	scraper := services.NewScraper(cfg, logging)
	fetchService := services.NewFetchService(cfg, logging, enabledProviders, scraper, journals, s3Client)

	if !*schedule {
		runBatch(fetchService, logging)
		return
	}

	// Scheduled mode: cron job plus metrics endpoint.
	runJob := func() {
		count, err := fetchService.Run(context.Background())
		if err != nil {
			logging.Error("Scheduled run failed", zap.Error(err))
			return
		}
		runsCounter.Inc()
		snapshotPapers.Set(float64(count))
		if count == 0 {
			logging.Warn("Scheduled run produced an empty snapshot")
		} else {
			logging.Info("Scheduled run completed", zap.Int("papers", count))
		}
	}

	logging.Info("Running initial fetch before entering schedule...")
	runJob()

	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc(cfg.CronSchedule, runJob); err != nil {
		logging.Fatal("Invalid cron schedule", zap.String("schedule", cfg.CronSchedule), zap.Error(err))
	}
	cronScheduler.Start()

	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logging.Info("Starting metrics server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// runBatch führt genau einen Lauf aus. Exit-Code-Vertrag des Batch-Jobs:
// 0 bei mindestens einem Paper im Ergebnis, 1 bei leerem Ergebnis oder
// fatalem Fehler.
func runBatch(fetchService *services.FetchService, logging *zap.Logger) {
	count, err := fetchService.Run(context.Background())
	if err != nil {
		logging.Error("Pipeline run failed", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
	if count == 0 {
		logging.Warn("No papers in final output, flagging for operator attention")
		logging.Sync()
		os.Exit(1)
	}
	logging.Info("Pipeline run completed", zap.Int("papers", count))
}
