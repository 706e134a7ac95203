package config

import (
	"flag"
	"os"

	"github.com/nostos-app/nostos/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   JSON-RPC endpoint URL (default from Config)
//	-n int      chain id (default from Config)
//	-t string   Nostos contract address
//	-k string   keystore file path
//	-d string   local cache database path
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-n", "-t", "-k", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RPCEndpoint, "r", cfg.RPCEndpoint, "JSON-RPC endpoint URL")
	fs.Int64Var(&cfg.ChainID, "n", cfg.ChainID, "chain id")
	fs.StringVar(&cfg.ContractAddr, "t", cfg.ContractAddr, "Nostos contract address")
	fs.StringVar(&cfg.KeystorePath, "k", cfg.KeystorePath, "keystore file path")
	fs.StringVar(&cfg.CacheDBPath, "d", cfg.CacheDBPath, "local cache database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
