package cli

import (
	"bufio"
	"context"
	"database/sql"
	"math/big"
	"os"
	"path/filepath"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/nostos-app/nostos/internal/client/cache"
	"github.com/nostos-app/nostos/internal/client/chain"
	"github.com/nostos-app/nostos/internal/client/config"
	"github.com/nostos-app/nostos/internal/client/repositories/activity"
	"github.com/nostos-app/nostos/internal/client/repositories/signatures"
	"github.com/nostos-app/nostos/internal/client/services"
	"github.com/nostos-app/nostos/internal/client/storage"
	"github.com/nostos-app/nostos/internal/filex"
	"github.com/nostos-app/nostos/internal/logging"
	"github.com/nostos-app/nostos/internal/timex"
	"github.com/nostos-app/nostos/internal/wallet"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	dec     *cache.DecryptionCache
	sigRepo signatures.Repository
	actRepo activity.Repository
	gateway *chain.Gateway
	signer  *wallet.LocalSigner
	enc     *services.EncryptionService
	items   *services.ItemService
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {

	dbPath := c.CacheDBPath
	if !filepath.IsAbs(dbPath) && filepath.Dir(dbPath) == "." {
		dir, err := filex.EnsureSubdDir("data")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, dbPath)
	}

	db, err := storage.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	if err := storage.Maintain(ctx, db, timex.RealClock{}, c.SignatureTTL); err != nil {
		log.Warn(ctx, "cache maintenance failed", "err", err)
	}

	gateway, err := chain.Dial(ctx, c.RPCEndpoint, ethcommon.HexToAddress(c.ContractAddr), big.NewInt(c.ChainID), c.ScanRange, log)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:  c,
		log:     log,
		db:      db,
		dec:     cache.NewWithOptions(c.DecryptionTTL, c.DecryptionCacheSize, timex.RealClock{}),
		sigRepo: signatures.NewSQLiteRepositoryWithClock(db, c.SignatureTTL, timex.RealClock{}),
		actRepo: activity.NewSQLiteRepository(db),
		gateway: gateway,
		reader:  bufio.NewReader(os.Stdin),
	}
	app.buildServices()
	return app, nil
}

// buildServices rebuilds the service graph for the current signer. Called
// on startup (locked, nil signer) and again after unlock and lock.
func (a *App) buildServices() {
	var signer wallet.Signer
	var txSigner chain.TxSigner
	if a.signer != nil {
		signer, txSigner = a.signer, a.signer
	}

	keys := services.NewKeyService(signer, a.sigRepo, a.log)
	a.enc = services.NewEncryptionService(keys, a.dec, a.log)
	a.items = services.NewItemService(a.gateway, a.enc, txSigner, a.actRepo, a.config.BaseURL, a.log)
}

func (a *App) isUnlocked() bool {
	return a.signer != nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}
