package module

import "prospector/internal/platform/config"

// Options holds configuration settings for the weights module
type Options struct {
	MaxRetries int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	wf := cfg.Prefix("CORE_WEIGHTS_")
	return Options{
		MaxRetries: wf.MayInt("CAS_RETRIES", 5),
	}
}
