package services

import (
	"context"
	"errors"

	"github.com/nostos-app/nostos/internal/client/cache"
	"github.com/nostos-app/nostos/internal/client/models"
	"github.com/nostos-app/nostos/internal/common"
	"github.com/nostos-app/nostos/internal/cryptox"
	"github.com/nostos-app/nostos/internal/logging"
)

// EncryptedItem pairs an on-chain item id with its encrypted details blob,
// the unit of work for bulk decryption.
type EncryptedItem struct {
	ItemID string
	Blob   string
}

// EncryptionService is the single entry point for turning payloads into
// blobs and back. It owns the decryption result cache; callers never touch
// keys directly.
type EncryptionService struct {
	keys *KeyService
	dec  *cache.DecryptionCache
	log  logging.Logger
}

func NewEncryptionService(keys *KeyService, dec *cache.DecryptionCache, log logging.Logger) *EncryptionService {
	return &EncryptionService{keys: keys, dec: dec, log: log}
}

// EncryptItem encrypts item details for itemID under the owner's derived
// item key and returns the hex blob destined for the contract.
func (s *EncryptionService) EncryptItem(ctx context.Context, payload *models.ItemPayload, itemID string) (string, error) {
	key, err := s.keys.PayloadKey(ctx, itemID, models.PurposeItem)
	if err != nil {
		return "", err
	}
	return cryptox.Seal(key, payload)
}

// DecryptItem decrypts an item blob, serving from the decryption result
// cache when possible. A cache hit involves no key derivation and no wallet
// interaction at all.
func (s *EncryptionService) DecryptItem(ctx context.Context, blob string, itemID string) (*models.ItemPayload, error) {
	addr, err := s.keys.Address()
	if err != nil {
		return nil, err
	}

	if p, ok := s.dec.Get(addr, itemID); ok {
		return &p, nil
	}

	key, err := s.keys.PayloadKey(ctx, itemID, models.PurposeItem)
	if err != nil {
		return nil, err
	}

	var payload models.ItemPayload
	if err := cryptox.Open(key, blob, &payload); err != nil {
		return nil, err
	}

	s.dec.Set(addr, itemID, payload)
	return &payload, nil
}

// EncryptContact encrypts a finder's contact details under the key derived
// from the item's QR secret, so only the owner (who can re-derive the
// secret) can read them.
func (s *EncryptionService) EncryptContact(ctx context.Context, payload *models.ContactPayload, itemID string, qrSecret []byte) (string, error) {
	key, err := ContactKeyFromSecret(qrSecret, itemID)
	if err != nil {
		return "", err
	}
	return cryptox.Seal(key, payload)
}

// DecryptContact decrypts a revealed contact blob as the item owner.
// finderAddr identifies whose claim is being read; it does not participate
// in key derivation.
func (s *EncryptionService) DecryptContact(ctx context.Context, blob string, finderAddr string, itemID string) (*models.ContactPayload, error) {
	key, err := s.keys.ContactKeyAsOwner(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var payload models.ContactPayload
	if err := cryptox.Open(key, blob, &payload); err != nil {
		s.log.Warn(ctx, "contact decryption failed", "item", itemID, "finder", finderAddr)
		return nil, err
	}
	return &payload, nil
}

// BulkDecryptItems decrypts a batch of item blobs with at most one wallet
// signing prompt for the whole batch. The result maps every requested item
// id; entries that could not be decrypted are nil, and one bad blob never
// fails the rest.
func (s *EncryptionService) BulkDecryptItems(ctx context.Context, items []EncryptedItem) (map[string]*models.ItemPayload, error) {
	addr, err := s.keys.Address()
	if err != nil {
		return nil, err
	}

	results := make(map[string]*models.ItemPayload, len(items))
	var misses []EncryptedItem
	for _, it := range items {
		if p, ok := s.dec.Get(addr, it.ItemID); ok {
			results[it.ItemID] = &p
			continue
		}
		misses = append(misses, it)
	}

	for _, it := range misses {
		key, err := s.keys.PayloadKey(ctx, it.ItemID, models.PurposeItem)
		if err != nil {
			// No wallet or a rejected prompt dooms every remaining miss;
			// report it instead of emitting a map of nils.
			return nil, err
		}

		var payload models.ItemPayload
		if err := cryptox.Open(key, it.Blob, &payload); err != nil {
			if !errors.Is(err, common.ErrDecryptionFailed) {
				return nil, err
			}
			s.log.Warn(ctx, "skipping undecryptable item", "item", it.ItemID)
			results[it.ItemID] = nil
			continue
		}

		s.dec.Set(addr, it.ItemID, payload)
		results[it.ItemID] = &payload
	}

	return results, nil
}

// ClearCaches drops both the decryption result cache and the cached
// signatures for the connected address, typically on lock or wallet switch.
func (s *EncryptionService) ClearCaches(ctx context.Context) error {
	addr, err := s.keys.Address()
	if err != nil {
		s.dec.ClearAll()
		return nil
	}
	s.dec.ClearForOwner(addr)
	return s.keys.ClearForCurrentAddress(ctx)
}
