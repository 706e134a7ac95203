package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nostos-app/nostos/internal/client/chain"
	"github.com/nostos-app/nostos/internal/client/models"
	"github.com/nostos-app/nostos/internal/client/repositories/activity"
	commonerr "github.com/nostos-app/nostos/internal/common"
	"github.com/nostos-app/nostos/internal/logging"
)

// DecryptedItem is an on-chain item joined with its decrypted details.
// Payload is nil when the blob could not be decrypted for the current
// wallet.
type DecryptedItem struct {
	Item    models.Item
	Payload *models.ItemPayload
}

// ItemService drives the end-to-end item flows: register, list, claim,
// reveal and confirm. It composes the contract gateway with the encryption
// layer and records each action in the local activity log.
type ItemService struct {
	gateway  *chain.Gateway
	enc      *EncryptionService
	signer   chain.TxSigner
	activity activity.Repository
	baseURL  string
	log      logging.Logger
}

func NewItemService(gateway *chain.Gateway, enc *EncryptionService, signer chain.TxSigner, act activity.Repository, baseURL string, log logging.Logger) *ItemService {
	if baseURL == "" {
		baseURL = chain.DefaultBaseURL
	}
	return &ItemService{gateway: gateway, enc: enc, signer: signer, activity: act, baseURL: baseURL, log: log}
}

// Register encrypts the item details, registers them on chain and returns
// the new item id, the found-URL for the QR label and the tx hash.
func (s *ItemService) Register(ctx context.Context, payload *models.ItemPayload, fee *big.Int) (common.Hash, string, common.Hash, error) {
	itemID := chain.GenerateItemID()

	blob, err := s.enc.EncryptItem(ctx, payload, itemID.Hex())
	if err != nil {
		return common.Hash{}, "", common.Hash{}, err
	}
	encrypted, err := hex.DecodeString(blob)
	if err != nil {
		return common.Hash{}, "", common.Hash{}, fmt.Errorf("encode payload: %w", err)
	}

	txHash, err := s.gateway.RegisterItem(ctx, s.signer, itemID, encrypted, fee)
	if err != nil {
		return common.Hash{}, "", common.Hash{}, err
	}

	secret, err := s.enc.keys.QRSecret(ctx, itemID.Hex())
	if err != nil {
		return common.Hash{}, "", common.Hash{}, err
	}
	foundURL := chain.BuildFoundURL(s.baseURL, itemID, secret)

	s.record(ctx, models.ActivityRegistered, itemID.Hex(), payload.Name)
	return itemID, foundURL, txHash, nil
}

// ListMine fetches the caller's items and bulk-decrypts their details with
// at most one signing prompt.
func (s *ItemService) ListMine(ctx context.Context) ([]DecryptedItem, error) {
	addr, err := s.enc.keys.Address()
	if err != nil {
		return nil, err
	}

	ids, err := s.gateway.GetUserItems(ctx, common.HexToAddress(addr))
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(ids))
	blobs := make([]EncryptedItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.gateway.GetItem(ctx, id)
		if err != nil {
			s.log.Warn(ctx, "skipping unreadable item", "item", id.Hex(), "err", err)
			continue
		}
		items = append(items, *item)
		blobs = append(blobs, EncryptedItem{ItemID: id.Hex(), Blob: hex.EncodeToString(item.EncryptedData)})
	}

	payloads, err := s.enc.BulkDecryptItems(ctx, blobs)
	if err != nil {
		return nil, err
	}

	out := make([]DecryptedItem, len(items))
	for i, item := range items {
		out[i] = DecryptedItem{Item: item, Payload: payloads[item.ID.Hex()]}
	}
	return out, nil
}

// Show fetches one item with its claims and decrypts the details when the
// caller owns it.
func (s *ItemService) Show(ctx context.Context, itemID common.Hash) (*DecryptedItem, []models.Claim, error) {
	item, err := s.gateway.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	claims, err := s.gateway.GetClaims(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}

	result := &DecryptedItem{Item: *item}
	if addr, err := s.enc.keys.Address(); err == nil && common.HexToAddress(addr) == item.Owner {
		payload, err := s.enc.DecryptItem(ctx, hex.EncodeToString(item.EncryptedData), itemID.Hex())
		if err != nil {
			s.log.Warn(ctx, "could not decrypt own item", "item", itemID.Hex(), "err", err)
		} else {
			result.Payload = payload
		}
	}
	return result, claims, nil
}

// Claim is the finder flow: encrypt contact details under the label's QR
// secret and submit the claim with the stake.
func (s *ItemService) Claim(ctx context.Context, itemID common.Hash, qrSecret []byte, contact *models.ContactPayload, stake *big.Int) (common.Hash, error) {
	blob, err := s.enc.EncryptContact(ctx, contact, itemID.Hex(), qrSecret)
	if err != nil {
		return common.Hash{}, err
	}
	encrypted, err := hex.DecodeString(blob)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode contact: %w", err)
	}

	txHash, err := s.gateway.SubmitClaim(ctx, s.signer, itemID, encrypted, stake)
	if err != nil {
		return common.Hash{}, err
	}

	s.record(ctx, models.ActivityClaimed, itemID.Hex(), contact.Name)
	return txHash, nil
}

// Reveal pays to reveal a claim and decrypts the finder's contact details.
func (s *ItemService) Reveal(ctx context.Context, itemID common.Hash, claimIndex uint64, value *big.Int) (*models.ContactPayload, common.Hash, error) {
	txHash, err := s.gateway.RevealContactInfo(ctx, s.signer, itemID, claimIndex, value)
	if err != nil {
		return nil, common.Hash{}, err
	}

	claim, err := s.gateway.GetClaim(ctx, itemID, claimIndex)
	if err != nil {
		return nil, txHash, err
	}

	contact, err := s.enc.DecryptContact(ctx, hex.EncodeToString(claim.EncryptedContact), claim.Finder.Hex(), itemID.Hex())
	if err != nil {
		return nil, txHash, err
	}

	s.record(ctx, models.ActivityRevealed, itemID.Hex(), claim.Finder.Hex())
	return contact, txHash, nil
}

// MyClaims lists the claims the connected wallet has submitted as a
// finder, across all items.
func (s *ItemService) MyClaims(ctx context.Context) ([]models.Claim, error) {
	if s.signer == nil {
		return nil, commonerr.ErrNoWalletConnected
	}
	addr := s.signer.Address()

	itemIDs, err := s.gateway.GetFinderClaims(ctx, addr)
	if err != nil {
		return nil, err
	}

	var mine []models.Claim
	for _, itemID := range itemIDs {
		claims, err := s.gateway.GetClaims(ctx, itemID)
		if err != nil {
			s.log.Warn(ctx, "could not load claims", "item", itemID.Hex(), "err", err)
			continue
		}
		for _, c := range claims {
			if c.Finder == addr {
				mine = append(mine, c)
			}
		}
	}
	return mine, nil
}

// DecryptClaimContact decrypts an already-revealed claim without paying
// again.
func (s *ItemService) DecryptClaimContact(ctx context.Context, itemID common.Hash, claimIndex uint64) (*models.ContactPayload, error) {
	claim, err := s.gateway.GetClaim(ctx, itemID, claimIndex)
	if err != nil {
		return nil, err
	}
	contact, err := s.enc.DecryptContact(ctx, hex.EncodeToString(claim.EncryptedContact), claim.Finder.Hex(), itemID.Hex())
	if err != nil {
		return nil, err
	}
	s.record(ctx, models.ActivityDecrypted, itemID.Hex(), claim.Finder.Hex())
	return contact, nil
}

// ConfirmReturn confirms the item came back and releases the escrow.
func (s *ItemService) ConfirmReturn(ctx context.Context, itemID common.Hash, claimIndex uint64) (common.Hash, error) {
	txHash, err := s.gateway.ConfirmReturn(ctx, s.signer, itemID, claimIndex)
	if err != nil {
		return common.Hash{}, err
	}
	s.record(ctx, models.ActivityConfirmed, itemID.Hex(), "")
	return txHash, nil
}

// ApproveClaim approves a pending claim without confirming a physical
// return, keeping the item claimable by the approved finder.
func (s *ItemService) ApproveClaim(ctx context.Context, itemID common.Hash, claimIndex uint64) (common.Hash, error) {
	txHash, err := s.gateway.ApproveClaim(ctx, s.signer, itemID, claimIndex)
	if err != nil {
		return common.Hash{}, err
	}
	s.record(ctx, models.ActivityApproved, itemID.Hex(), fmt.Sprintf("claim %d", claimIndex))
	return txHash, nil
}

// RejectClaim rejects a pending claim, returning the finder's stake.
func (s *ItemService) RejectClaim(ctx context.Context, itemID common.Hash, claimIndex uint64) (common.Hash, error) {
	txHash, err := s.gateway.RejectClaim(ctx, s.signer, itemID, claimIndex)
	if err != nil {
		return common.Hash{}, err
	}
	s.record(ctx, models.ActivityRejected, itemID.Hex(), fmt.Sprintf("claim %d", claimIndex))
	return txHash, nil
}

// History lists the most recent local activity entries.
func (s *ItemService) History(ctx context.Context, limit int) ([]models.Activity, error) {
	return s.activity.ListRecent(ctx, limit)
}

// record appends to the activity log; failures are logged, never fatal.
func (s *ItemService) record(ctx context.Context, kind models.ActivityKind, itemID, details string) {
	addr, err := s.enc.keys.Address()
	if err != nil {
		addr = ""
	}
	if err := s.activity.Add(ctx, &models.Activity{
		Kind:    kind,
		ItemID:  itemID,
		Address: addr,
		Details: details,
	}); err != nil {
		s.log.Warn(ctx, "failed to record activity", "kind", string(kind), "err", err)
	}
}
