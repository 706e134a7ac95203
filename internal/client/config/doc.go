// Package config loads runtime configuration for the Nostos CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-r string   JSON-RPC endpoint URL
//	-n int      chain id
//	-t string   Nostos contract address
//	-k string   keystore file path
//	-d string   local cache database path
//
// # JSON schema
//
// The JSON loader uses timex.Duration for lifetimes, so values can be either
// strings like "24h" or integer nanoseconds:
//
//	{
//	  "rpc_endpoint": "https://sepolia.base.org",
//	  "chain_id": 84532,
//	  "contract_addr": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
//	  "keystore_path": "keystore.json",
//	  "signature_ttl": "24h",
//	  "decryption_ttl": "1h"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the CLI
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
