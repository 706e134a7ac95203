package config

import (
	"time"

	"github.com/nostos-app/nostos/internal/client/cache"
	"github.com/nostos-app/nostos/internal/client/chain"
	"github.com/nostos-app/nostos/internal/client/repositories/signatures"
)

// Config holds runtime settings for the Nostos CLI.
//
// Fields:
//   - RPCEndpoint: URL of the Ethereum JSON-RPC endpoint.
//   - ChainID: numeric chain id the contract is deployed on.
//   - ContractAddr: hex address of the Nostos contract.
//   - KeystorePath: path to the go-ethereum keystore file for the wallet.
//   - CacheDBPath: path to the local SQLite cache database.
//   - BaseURL: base of the found-URLs printed on QR labels.
//   - SignatureTTL / DecryptionTTL: cache lifetimes.
//   - DecryptionCacheSize: capacity of the in-memory decryption cache.
//   - ScanRange: how many recent blocks event scans cover.
type Config struct {
	RPCEndpoint         string
	ChainID             int64
	ContractAddr        string
	KeystorePath        string
	CacheDBPath         string
	BaseURL             string
	SignatureTTL        time.Duration
	DecryptionTTL       time.Duration
	DecryptionCacheSize int
	ScanRange           uint64
}

// LoadDefaults populates c with sensible defaults (Base Sepolia testnet).
func (c *Config) LoadDefaults() {
	c.RPCEndpoint = "https://sepolia.base.org"
	c.ChainID = 84532
	c.ContractAddr = ""
	c.KeystorePath = ""
	c.CacheDBPath = "nostos.db"
	c.BaseURL = chain.DefaultBaseURL
	c.SignatureTTL = signatures.DefaultTTL
	c.DecryptionTTL = cache.DefaultTTL
	c.DecryptionCacheSize = cache.DefaultMaxEntries
	c.ScanRange = chain.DefaultScanRange
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
