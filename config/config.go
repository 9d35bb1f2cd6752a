package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	SnapshotPath string `envconfig:"SNAPSHOT_PATH" default:"papers-data.json"`
	JournalsFile string `envconfig:"JOURNALS_FILE"`

	// Retention: Papers älter als dieses Fenster (in Monaten) werden verworfen.
	RetentionMonths int `envconfig:"RETENTION_MONTHS" default:"6"`

	FeedMaxItems   int    `envconfig:"FEED_MAX_ITEMS" default:"100"`
	CrossrefRows   int    `envconfig:"CROSSREF_ROWS" default:"100"`
	CrossrefMailto string `envconfig:"CROSSREF_MAILTO" default:"research@example.com"`

	// Politeness: Mindestabstand zwischen Journal-Fetches bzw. Scrape-Versuchen.
	FetchDelay  time.Duration `envconfig:"FETCH_DELAY" default:"1s"`
	ScrapeDelay time.Duration `envconfig:"SCRAPE_DELAY" default:"2s"`

	ScrapeTimeout   time.Duration `envconfig:"SCRAPE_TIMEOUT" default:"15s"`
	ScrapeMaxPerRun int           `envconfig:"SCRAPE_MAX_PER_RUN" default:"30"`

	EnabledProviders string `envconfig:"ENABLED_PROVIDERS" default:"rss,crossref"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 6 * * *"`
	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`

	// Optionales S3-Mirroring des Snapshots; leer lassen, um es zu deaktivieren.
	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION"`
	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"snapshots"`
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
