package storage

import (
	"strings"
	"time"
)

// Config is the storage section of the application configuration. All run inputs and
// outputs live in a single bucket.
type Config struct {
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the submission sheet, the registry export and all run outputs.
	Bucket string `mapstructure:"bucket" default:"elternaccounts"`
	// Region is only needed for providers that reject the default location.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, the TLS handshake and waiting for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns the transport timeout, falling back to 30s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// host strips any scheme, minio wants a bare host:port.
func (c Config) host() string {
	return strings.TrimPrefix(strings.TrimPrefix(c.Endpoint, "http://"), "https://")
}
