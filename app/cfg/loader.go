package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Storage configuration
	BlobDriver  string `long:"blob-driver" env:"BLOB_DRIVER" default:"fs" choice:"fs" choice:"s3" choice:"memory" description:"Blob store backend"`
	DataDir     string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for the fs blob store"`
	DataKey     string `long:"data-key" env:"DATA_KEY" default:"dining_info.json" description:"Object key of the dining document"`
	S3Bucket    string `long:"s3-bucket" env:"S3_BUCKET" description:"Bucket for the s3 blob store"`
	S3Region    string `long:"s3-region" env:"S3_REGION" default:"us-west-1" description:"Region for the s3 blob store"`
	S3Endpoint  string `long:"s3-endpoint" env:"S3_ENDPOINT" description:"Custom S3 endpoint (e.g. MinIO)"`
	S3PathStyle bool   `long:"s3-path-style" env:"S3_PATH_STYLE" description:"Use path-style S3 addressing"`

	// Application configuration
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourcesFile    string `long:"sources-file" env:"SOURCES_FILE" description:"YAML file overriding the built-in source catalog (optional)"`
	ScrapeInterval int    `long:"scrape-interval" env:"SCRAPE_INTERVAL" default:"3600" description:"Seconds between collection runs"`
	Once           bool   `long:"once" env:"ONCE" description:"Run a single collection and exit"`
	HTTPTimeout    int    `long:"http-timeout" env:"HTTP_TIMEOUT" default:"30" description:"Timeout in seconds for upstream HTTP requests"`
	HTTPRetries    int    `long:"http-retries" env:"HTTP_RETRIES" default:"2" description:"Retry count for upstream HTTP requests"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"UCLA Dining Scraper/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"America/Los_Angeles" description:"Timezone for campus-local dates and hours"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		BlobDriver:     raw.BlobDriver,
		DataDir:        raw.DataDir,
		DataKey:        raw.DataKey,
		S3Bucket:       raw.S3Bucket,
		S3Region:       raw.S3Region,
		S3Endpoint:     raw.S3Endpoint,
		S3PathStyle:    raw.S3PathStyle,
		Port:           raw.Port,
		SourcesFile:    raw.SourcesFile,
		ScrapeInterval: raw.ScrapeInterval,
		Once:           raw.Once,
		HTTPTimeout:    raw.HTTPTimeout,
		HTTPRetries:    raw.HTTPRetries,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
