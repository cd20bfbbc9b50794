package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/chronofeed/internal/flagx"
	"github.com/dmitrijs2005/chronofeed/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr               string         `json:"endpoint_addr"`
	AuthPath                   string         `json:"auth_path"`
	StorePath                  string         `json:"store_path"`
	StoreCompression           string         `json:"store_compression"`
	StoreCompactionParallelism int            `json:"store_compaction_parallelism"`
	StorePointLookupCacheBytes int64          `json:"store_point_lookup_cache_bytes"`
	StoreSyncBatchBytes        int            `json:"store_sync_batch_bytes"`
	SecretKey                  string         `json:"secret_key"`
	SessionValidityDuration    timex.Duration `json:"session_validity_duration"`
	PageSize                   int            `json:"page_size"`
	MaxPageSize                int            `json:"max_page_size"`
	LogFile                    string         `json:"log_file"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics — a broken config file is a
// bootstrap-fatal condition.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.AuthPath = c.AuthPath
	config.StorePath = c.StorePath
	config.StoreCompression = c.StoreCompression
	config.StoreCompactionParallelism = c.StoreCompactionParallelism
	config.StorePointLookupCacheBytes = c.StorePointLookupCacheBytes
	config.StoreSyncBatchBytes = c.StoreSyncBatchBytes
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.PageSize = c.PageSize
	config.MaxPageSize = c.MaxPageSize
	config.LogFile = c.LogFile
}
