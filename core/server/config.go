package server

import "strconv"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps upload size for the reconcile endpoint.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 16 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// Valid reports whether Port is a usable TCP port.
func (c Config) Valid() bool {
	p, err := strconv.Atoi(c.Port)
	return err == nil && p > 0 && p < 65536
}
