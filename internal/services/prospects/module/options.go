package module

import "prospector/internal/platform/config"

// Options holds configuration settings for the prospects module
type Options struct {
	HardLimit int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("CORE_PROSPECTS_")
	return Options{
		HardLimit: pf.MayInt("HARD_LIMIT", 200),
	}
}
