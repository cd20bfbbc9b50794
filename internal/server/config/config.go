// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the chronofeed server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - AuthPath: JSON credential file the identity directory is built from.
//   - StorePath: directory of the embedded content store.
//   - StoreCompression / StoreCompactionParallelism /
//     StorePointLookupCacheBytes / StoreSyncBatchBytes: engine tuning knobs,
//     never observable in query results.
//   - SecretKey: HMAC secret signing the session cookie (HS256). Do not use
//     the test default in prod.
//   - SessionValidityDuration: session cookie lifetime.
//   - PageSize: records per feed page served by default.
//   - MaxPageSize: hard clamp on a single page read.
//   - LogFile: rotating log file path; empty logs to stdout.
type Config struct {
	EndpointAddr               string
	AuthPath                   string
	StorePath                  string
	StoreCompression           string
	StoreCompactionParallelism int
	StorePointLookupCacheBytes int64
	StoreSyncBatchBytes        int
	SecretKey                  string
	SessionValidityDuration    time.Duration
	PageSize                   int
	MaxPageSize                int
	LogFile                    string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.AuthPath = "./users.json"
	c.StorePath = "./feed.db"
	c.StoreCompression = "snappy"
	c.StoreCompactionParallelism = 4
	c.StorePointLookupCacheBytes = 64 << 20
	c.StoreSyncBatchBytes = 1 << 20
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.PageSize = 10
	c.MaxPageSize = 100
	c.LogFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
