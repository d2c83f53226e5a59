package module

import (
	"time"

	"prospector/internal/platform/config"
)

// Options holds configuration settings for the scans module
type Options struct {
	BatchSize   int
	EnrichLimit int
	Concurrency int
	LeaseBatch  int
	Tick        time.Duration
	LeaseFor    time.Duration

	EnrichURL     string
	EnrichAPIKey  string
	EnrichTimeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("SCAN_")
	return Options{
		BatchSize:   sf.MayInt("BATCH_SIZE", 15),
		EnrichLimit: sf.MayInt("ENRICH_LIMIT", 10),
		Concurrency: sf.MayInt("CONCURRENCY", 4),
		LeaseBatch:  sf.MayInt("LEASE_BATCH", 8),
		Tick:        sf.MayDuration("TICK", time.Second),
		LeaseFor:    sf.MayDuration("LEASE", 5*time.Minute),

		EnrichURL:     sf.MayString("ENRICH_URL", ""),
		EnrichAPIKey:  sf.MayString("ENRICH_API_KEY", ""),
		EnrichTimeout: sf.MayDuration("ENRICH_TIMEOUT", 5*time.Second),
	}
}
