package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nostos-app/nostos/internal/flagx"
	"github.com/nostos-app/nostos/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify lifetimes either as
// strings like "24h" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	RPCEndpoint         string         `json:"rpc_endpoint"`
	ChainID             int64          `json:"chain_id"`
	ContractAddr        string         `json:"contract_addr"`
	KeystorePath        string         `json:"keystore_path"`
	CacheDBPath         string         `json:"cache_db_path"`
	BaseURL             string         `json:"base_url"`
	SignatureTTL        timex.Duration `json:"signature_ttl"`
	DecryptionTTL       timex.Duration `json:"decryption_ttl"`
	DecryptionCacheSize int            `json:"decryption_cache_size"`
	ScanRange           uint64         `json:"scan_range"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present with non-zero values override the defaults, so a
// partial config file is fine. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RPCEndpoint != "" {
		cfg.RPCEndpoint = jc.RPCEndpoint
	}
	if jc.ChainID != 0 {
		cfg.ChainID = jc.ChainID
	}
	if jc.ContractAddr != "" {
		cfg.ContractAddr = jc.ContractAddr
	}
	if jc.KeystorePath != "" {
		cfg.KeystorePath = jc.KeystorePath
	}
	if jc.CacheDBPath != "" {
		cfg.CacheDBPath = jc.CacheDBPath
	}
	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.SignatureTTL.Duration != 0 {
		cfg.SignatureTTL = time.Duration(jc.SignatureTTL.Duration)
	}
	if jc.DecryptionTTL.Duration != 0 {
		cfg.DecryptionTTL = time.Duration(jc.DecryptionTTL.Duration)
	}
	if jc.DecryptionCacheSize != 0 {
		cfg.DecryptionCacheSize = jc.DecryptionCacheSize
	}
	if jc.ScanRange != 0 {
		cfg.ScanRange = jc.ScanRange
	}
}
