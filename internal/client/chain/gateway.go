// Package chain is the read/write gateway to the Nostos contract. It packs
// and unpacks ABI calls, sends signed transactions and scans recent event
// logs; all state lives on chain, so the gateway holds no item data of its
// own.
package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/nostos-app/nostos/internal/client/models"
	commonerr "github.com/nostos-app/nostos/internal/common"
	"github.com/nostos-app/nostos/internal/logging"
)

// DefaultScanRange bounds event scans to this many recent blocks.
const DefaultScanRange uint64 = 10_000

// Backend is the subset of the Ethereum client the gateway needs.
// *ethclient.Client satisfies it; tests substitute a fake.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// TxSigner signs transactions for one address. The wallet's LocalSigner
// satisfies it.
type TxSigner interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Gateway wraps a contract deployment on one chain.
type Gateway struct {
	backend   Backend
	contract  common.Address
	chainID   *big.Int
	scanRange uint64
	log       logging.Logger
}

// NewGateway builds a gateway over an existing backend.
func NewGateway(backend Backend, contract common.Address, chainID *big.Int, scanRange uint64, log logging.Logger) *Gateway {
	if scanRange == 0 {
		scanRange = DefaultScanRange
	}
	return &Gateway{backend: backend, contract: contract, chainID: chainID, scanRange: scanRange, log: log}
}

// Dial connects to an RPC endpoint and returns a gateway over it.
func Dial(ctx context.Context, rpcURL string, contract common.Address, chainID *big.Int, scanRange uint64, log logging.Logger) (*Gateway, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return NewGateway(client, contract, chainID, scanRange, log), nil
}

func (g *Gateway) call(ctx context.Context, method string, args ...any) ([]byte, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := g.backend.CallContract(ctx, ethereum.CallMsg{To: &g.contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	return raw, nil
}

// GetItem fetches one item record. A zero owner address means the item was
// never registered; that maps to ErrNotFound.
func (g *Gateway) GetItem(ctx context.Context, itemID common.Hash) (*models.Item, error) {
	raw, err := g.call(ctx, "getItem", itemID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Owner            common.Address
		Status           uint8
		RegistrationTime *big.Int
		LastActivity     *big.Int
		Stake            *big.Int
		EncryptedData    []byte
	}
	if err := contractABI.UnpackIntoInterface(&out, "getItem", raw); err != nil {
		return nil, fmt.Errorf("unpack getItem: %w", err)
	}
	if out.Owner == (common.Address{}) {
		return nil, commonerr.ErrNotFound
	}

	return &models.Item{
		ID:               itemID,
		Owner:            out.Owner,
		Status:           models.ItemStatus(out.Status),
		RegistrationTime: out.RegistrationTime,
		LastActivity:     out.LastActivity,
		Stake:            out.Stake,
		EncryptedData:    out.EncryptedData,
	}, nil
}

// GetClaims fetches every claim on an item via the count + index loop the
// contract exposes.
func (g *Gateway) GetClaims(ctx context.Context, itemID common.Hash) ([]models.Claim, error) {
	raw, err := g.call(ctx, "getClaimCount", itemID)
	if err != nil {
		return nil, err
	}
	var countOut struct{ Count *big.Int }
	if err := contractABI.UnpackIntoInterface(&countOut, "getClaimCount", raw); err != nil {
		return nil, fmt.Errorf("unpack getClaimCount: %w", err)
	}

	count := countOut.Count.Uint64()
	claims := make([]models.Claim, 0, count)
	for i := uint64(0); i < count; i++ {
		claim, err := g.GetClaim(ctx, itemID, i)
		if err != nil {
			return nil, err
		}
		claims = append(claims, *claim)
	}
	return claims, nil
}

// GetClaim fetches a single claim by index.
func (g *Gateway) GetClaim(ctx context.Context, itemID common.Hash, index uint64) (*models.Claim, error) {
	raw, err := g.call(ctx, "getClaim", itemID, new(big.Int).SetUint64(index))
	if err != nil {
		return nil, err
	}

	var out struct {
		Finder           common.Address
		Status           uint8
		Timestamp        *big.Int
		RevealDeadline   *big.Int
		EscrowAmount     *big.Int
		EncryptedContact []byte
	}
	if err := contractABI.UnpackIntoInterface(&out, "getClaim", raw); err != nil {
		return nil, fmt.Errorf("unpack getClaim: %w", err)
	}

	return &models.Claim{
		ItemID:           itemID,
		Index:            index,
		Finder:           out.Finder,
		Status:           models.ClaimStatus(out.Status),
		Timestamp:        out.Timestamp,
		RevealDeadline:   out.RevealDeadline,
		EscrowAmount:     out.EscrowAmount,
		EncryptedContact: out.EncryptedContact,
	}, nil
}

// GetUserItems lists the item ids registered by user.
func (g *Gateway) GetUserItems(ctx context.Context, user common.Address) ([]common.Hash, error) {
	return g.hashList(ctx, "getUserItems", user)
}

// GetFinderClaims lists the item ids the finder has claims on.
func (g *Gateway) GetFinderClaims(ctx context.Context, finder common.Address) ([]common.Hash, error) {
	return g.hashList(ctx, "getFinderClaims", finder)
}

func (g *Gateway) hashList(ctx context.Context, method string, addr common.Address) ([]common.Hash, error) {
	raw, err := g.call(ctx, method, addr)
	if err != nil {
		return nil, err
	}
	var out struct{ ItemIds [][32]byte }
	if err := contractABI.UnpackIntoInterface(&out, method, raw); err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	ids := make([]common.Hash, len(out.ItemIds))
	for i, id := range out.ItemIds {
		ids[i] = common.Hash(id)
	}
	return ids, nil
}

// GetUserStats unpacks the contract's 16-bit-packed per-user counters.
func (g *Gateway) GetUserStats(ctx context.Context, user common.Address) (*models.UserStats, error) {
	raw, err := g.call(ctx, "getUserStats", user)
	if err != nil {
		return nil, err
	}
	var out struct{ Packed *big.Int }
	if err := contractABI.UnpackIntoInterface(&out, "getUserStats", raw); err != nil {
		return nil, fmt.Errorf("unpack getUserStats: %w", err)
	}

	packed := out.Packed.Uint64()
	return &models.UserStats{
		TotalItems:    int(packed & 0xFFFF),
		ActiveItems:   int((packed >> 16) & 0xFFFF),
		ReturnedItems: int((packed >> 32) & 0xFFFF),
	}, nil
}

// GetRegistrationFee reads the current total registration fee.
func (g *Gateway) GetRegistrationFee(ctx context.Context) (*big.Int, error) {
	raw, err := g.call(ctx, "getRegistrationFee")
	if err != nil {
		return nil, err
	}
	var out struct{ Fee *big.Int }
	if err := contractABI.UnpackIntoInterface(&out, "getRegistrationFee", raw); err != nil {
		return nil, fmt.Errorf("unpack getRegistrationFee: %w", err)
	}
	return out.Fee, nil
}

// RegisterItem sends a registerItem transaction with the encrypted details
// blob and the registration payment.
func (g *Gateway) RegisterItem(ctx context.Context, signer TxSigner, itemID common.Hash, encryptedData []byte, value *big.Int) (common.Hash, error) {
	return g.send(ctx, signer, value, "registerItem", itemID, encryptedData)
}

// SubmitClaim sends a finder's claim with their encrypted contact blob and
// stake.
func (g *Gateway) SubmitClaim(ctx context.Context, signer TxSigner, itemID common.Hash, encryptedContact []byte, value *big.Int) (common.Hash, error) {
	return g.send(ctx, signer, value, "submitClaim", itemID, encryptedContact)
}

// RevealContactInfo pays to reveal a claim's contact details to the owner.
func (g *Gateway) RevealContactInfo(ctx context.Context, signer TxSigner, itemID common.Hash, claimIndex uint64, value *big.Int) (common.Hash, error) {
	return g.send(ctx, signer, value, "revealContactInfo", itemID, new(big.Int).SetUint64(claimIndex))
}

// ConfirmReturn confirms the item came back, releasing escrow to the finder.
func (g *Gateway) ConfirmReturn(ctx context.Context, signer TxSigner, itemID common.Hash, claimIndex uint64) (common.Hash, error) {
	return g.send(ctx, signer, nil, "confirmReturn", itemID, new(big.Int).SetUint64(claimIndex))
}

// ApproveClaim approves a pending claim.
func (g *Gateway) ApproveClaim(ctx context.Context, signer TxSigner, itemID common.Hash, claimIndex uint64) (common.Hash, error) {
	return g.send(ctx, signer, nil, "approveClaim", itemID, new(big.Int).SetUint64(claimIndex))
}

// RejectClaim rejects a pending claim.
func (g *Gateway) RejectClaim(ctx context.Context, signer TxSigner, itemID common.Hash, claimIndex uint64) (common.Hash, error) {
	return g.send(ctx, signer, nil, "rejectClaim", itemID, new(big.Int).SetUint64(claimIndex))
}

func (g *Gateway) send(ctx context.Context, signer TxSigner, value *big.Int, method string, args ...any) (common.Hash, error) {
	if signer == nil {
		return common.Hash{}, commonerr.ErrNoWalletConnected
	}
	if value == nil {
		value = new(big.Int)
	}

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack %s: %w", method, err)
	}

	from := signer.Address()
	nonce, err := g.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce: %w", err)
	}
	gasPrice, err := g.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas price: %w", err)
	}
	gas, err := g.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &g.contract,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas for %s: %w", method, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &g.contract,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := signer.SignTx(tx, g.chainID)
	if err != nil {
		return common.Hash{}, err
	}

	if err := g.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send %s: %w", method, err)
	}

	g.log.Info(ctx, "transaction sent", "method", method, "tx", signed.Hash().Hex())
	return signed.Hash(), nil
}
