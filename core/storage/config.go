package storage

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the settings backup bucket.
type Config struct {
	// Enabled turns settings backups on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket to store backups in.
	Bucket string `mapstructure:"bucket" default:"terminal-settings"`
	// Prefix is prepended to every backup object name.
	Prefix string `mapstructure:"prefix" default:"backups"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// defaultTimeout applies when TimeoutSeconds is not positive.
const defaultTimeout = 30 * time.Second

// Timeout returns the connection timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that an enabled backup target is usable. A disabled
// configuration is always valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("backup endpoint is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("backup bucket is required")
	}
	return nil
}

// ObjectKey places name under prefix. Leading and trailing slashes of the
// prefix are ignored.
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// ListPrefix returns the listing prefix for objects stored under prefix.
func ListPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
