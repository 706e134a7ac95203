package services

import (
	"context"
	"encoding/hex"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostos-app/nostos/internal/client/cache"
	"github.com/nostos-app/nostos/internal/client/chain"
	"github.com/nostos-app/nostos/internal/client/models"
	"github.com/nostos-app/nostos/internal/wallet"
)

// fakeChainBackend covers the transaction path; contract reads are
// exercised by the chain package's own tests.
type fakeChainBackend struct {
	sent []*types.Transaction
}

func (f *fakeChainBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return nil, ethereum.NotFound
}

func (f *fakeChainBackend) BlockNumber(ctx context.Context) (uint64, error) { return 100, nil }

func (f *fakeChainBackend) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (f *fakeChainBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 0, nil
}

func (f *fakeChainBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeChainBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}

func (f *fakeChainBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.sent = append(f.sent, tx)
	return nil
}

type memActivityRepo struct {
	rows []models.Activity
}

func (r *memActivityRepo) Add(ctx context.Context, a *models.Activity) error {
	a.ID = "test-id"
	a.CreatedAt = time.Now()
	r.rows = append(r.rows, *a)
	return nil
}

func (r *memActivityRepo) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	out := make([]models.Activity, 0, limit)
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.rows[i])
	}
	return out, nil
}

func newTestItemService(t *testing.T) (*ItemService, *fakeChainBackend, *memActivityRepo, *wallet.LocalSigner) {
	t.Helper()
	signer, err := wallet.NewLocalSignerFromHex("4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d")
	require.NoError(t, err)

	backend := &fakeChainBackend{}
	gateway := chain.NewGateway(backend, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), big.NewInt(84532), 0, discardLogger())
	keys := NewKeyService(signer, newMemSigRepo(), discardLogger())
	enc := NewEncryptionService(keys, cache.New(), discardLogger())
	act := &memActivityRepo{}
	svc := NewItemService(gateway, enc, signer, act, "", discardLogger())
	return svc, backend, act, signer
}

func TestItemService_Register(t *testing.T) {
	svc, backend, act, _ := newTestItemService(t)
	ctx := context.Background()

	itemID, foundURL, txHash, err := svc.Register(ctx, testItemPayload(), chain.RegistrationFee)
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, itemID)
	assert.NotEqual(t, common.Hash{}, txHash)

	// The label URL must round-trip to the same item and a usable secret.
	parsedID, secret, err := chain.ParseFoundURL(foundURL)
	require.NoError(t, err)
	assert.Equal(t, itemID, parsedID)
	wantSecret, err := svc.enc.keys.QRSecret(ctx, itemID.Hex())
	require.NoError(t, err)
	assert.Equal(t, wantSecret, secret)

	require.Len(t, backend.sent, 1)
	assert.Equal(t, 0, backend.sent[0].Value().Cmp(chain.RegistrationFee))

	require.Len(t, act.rows, 1)
	assert.Equal(t, models.ActivityRegistered, act.rows[0].Kind)
	assert.Equal(t, itemID.Hex(), act.rows[0].ItemID)
}

func TestItemService_RegisterBlobDecryptsForOwner(t *testing.T) {
	svc, backend, _, _ := newTestItemService(t)
	ctx := context.Background()

	itemID, _, _, err := svc.Register(ctx, testItemPayload(), chain.RegistrationFee)
	require.NoError(t, err)

	// The blob stored on chain must open with the owner's derived key.
	tx := backend.sent[0]
	require.NotEmpty(t, tx.Data())
	payload, err := svc.enc.DecryptItem(ctx, extractRegisteredBlob(t, tx.Data()), itemID.Hex())
	require.NoError(t, err)
	assert.Equal(t, testItemPayload(), payload)
}

// extractRegisteredBlob pulls the dynamic bytes argument out of
// registerItem calldata: selector (4) + itemId (32) + offset (32) +
// length (32) + data.
func extractRegisteredBlob(t *testing.T, calldata []byte) string {
	t.Helper()
	require.Greater(t, len(calldata), 4+32+32+32)
	length := new(big.Int).SetBytes(calldata[4+64 : 4+96]).Int64()
	blob := calldata[4+96 : 4+96+int(length)]
	return hex.EncodeToString(blob)
}

func TestItemService_ClaimAndConfirm(t *testing.T) {
	svc, backend, act, _ := newTestItemService(t)
	ctx := context.Background()
	itemID := chain.GenerateItemID()

	secret, err := svc.enc.keys.QRSecret(ctx, itemID.Hex())
	require.NoError(t, err)

	contact := &models.ContactPayload{Name: "John Finder", Email: "john@example.com", Timestamp: 1700000100000}
	_, err = svc.Claim(ctx, itemID, secret, contact, chain.MinStake)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)
	assert.Equal(t, 0, backend.sent[0].Value().Cmp(chain.MinStake))

	_, err = svc.ConfirmReturn(ctx, itemID, 0)
	require.NoError(t, err)
	require.Len(t, backend.sent, 2)
	assert.Equal(t, int64(0), backend.sent[1].Value().Int64())

	require.Len(t, act.rows, 2)
	assert.Equal(t, models.ActivityClaimed, act.rows[0].Kind)
	assert.Equal(t, models.ActivityConfirmed, act.rows[1].Kind)
}

func TestItemService_ApproveAndRejectClaim(t *testing.T) {
	svc, backend, act, _ := newTestItemService(t)
	ctx := context.Background()
	itemID := chain.GenerateItemID()

	_, err := svc.ApproveClaim(ctx, itemID, 0)
	require.NoError(t, err)
	_, err = svc.RejectClaim(ctx, itemID, 1)
	require.NoError(t, err)

	require.Len(t, backend.sent, 2)
	assert.Equal(t, int64(0), backend.sent[0].Value().Int64())
	assert.Equal(t, int64(0), backend.sent[1].Value().Int64())

	require.Len(t, act.rows, 2)
	assert.Equal(t, models.ActivityApproved, act.rows[0].Kind)
	assert.Equal(t, models.ActivityRejected, act.rows[1].Kind)
	assert.Equal(t, "claim 1", act.rows[1].Details)
}

func TestItemService_History(t *testing.T) {
	svc, _, _, _ := newTestItemService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, _, err := svc.Register(ctx, testItemPayload(), chain.RegistrationFee)
		require.NoError(t, err)
	}

	rows, err := svc.History(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
