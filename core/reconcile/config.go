package reconcile

import "time"

// Config is the match section of the application configuration.
type Config struct {
	// AcceptThreshold is the best score an outcome must exceed to produce an account.
	AcceptThreshold float64 `mapstructure:"accept_threshold" default:"0.5"`
	// AmbiguityCeiling is the best score at or below which a second candidate flags review.
	AmbiguityCeiling float64 `mapstructure:"ambiguity_ceiling" default:"0.9"`
	// Workers bounds concurrent resolutions. Zero uses GOMAXPROCS.
	Workers int `mapstructure:"workers" default:"0"`
	// CacheTTLSeconds is how long the server reuses a roster index. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// Policy returns the configured thresholds, or DefaultPolicy when none are set.
func (c Config) Policy() Policy {
	if c.AcceptThreshold == 0 && c.AmbiguityCeiling == 0 {
		return DefaultPolicy()
	}
	return Policy{
		AcceptThreshold:  c.AcceptThreshold,
		AmbiguityCeiling: c.AmbiguityCeiling,
	}
}

// CacheTTL returns the index cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
