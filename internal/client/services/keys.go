// Package services contains the application services of the Nostos client:
// key derivation over the wallet + signature cache, the encryption
// orchestrator, and the item service tying encryption to the contract
// gateway.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nostos-app/nostos/internal/client/models"
	"github.com/nostos-app/nostos/internal/client/repositories/signatures"
	"github.com/nostos-app/nostos/internal/common"
	"github.com/nostos-app/nostos/internal/cryptox"
	"github.com/nostos-app/nostos/internal/logging"
	"github.com/nostos-app/nostos/internal/wallet"
)

// masterScope is the reserved item-id slot under which the master signature
// is cached. It can never collide with a real item id (those are 0x hex).
const masterScope = "master"

// subSignatureSize matches the wallet signature length so sub-signatures and
// the master signature share one storage format and validation rule.
const subSignatureSize = 65

// keyMessage is the fixed, purpose-tagged derivation context for one item.
func keyMessage(purpose models.Purpose, itemID string) string {
	return fmt.Sprintf("Nostos %s decryption key for %s", purpose, strings.ToLower(itemID))
}

// masterMessage is the single text the wallet actually signs. It is
// deterministic per address, so the signature (and everything derived from
// it) is reproducible across sessions.
func masterMessage(address string) string {
	return fmt.Sprintf("Nostos decryption master key for %s", strings.ToLower(address))
}

func payloadKeyInfo(purpose models.Purpose, itemID string) string {
	return fmt.Sprintf("Nostos %s encryption key for %s", purpose, strings.ToLower(itemID))
}

func qrSecretInfo(itemID string) string {
	return fmt.Sprintf("Nostos qr secret for %s", strings.ToLower(itemID))
}

// KeyService turns wallet signatures into payload keys.
//
// Derivation chain: the wallet signs one deterministic master message per
// address; per-item sub-signatures are HKDF-expanded from the master with
// the purpose-tagged item message as context and cached in the signature
// repository; payload keys are HKDF over the sub-signature. The cache is
// always consulted before the wallet, so no valid cached entry ever causes
// a redundant signing prompt.
type KeyService struct {
	signer  wallet.Signer
	sigRepo signatures.Repository
	log     logging.Logger
}

// NewKeyService binds a signer (may be nil when no wallet is unlocked) to
// the signature cache.
func NewKeyService(signer wallet.Signer, sigRepo signatures.Repository, log logging.Logger) *KeyService {
	return &KeyService{signer: signer, sigRepo: sigRepo, log: log}
}

// Address returns the connected wallet address, or ErrNoWalletConnected.
func (s *KeyService) Address() (string, error) {
	if s.signer == nil {
		return "", common.ErrNoWalletConnected
	}
	return s.signer.Address().Hex(), nil
}

// PayloadKey returns the 32-byte AES key for (current address, itemID,
// purpose). At most one wallet signing call is made per cache TTL window,
// regardless of how many items or purposes are derived.
func (s *KeyService) PayloadKey(ctx context.Context, itemID string, purpose models.Purpose) ([]byte, error) {
	sub, err := s.subSignature(ctx, itemID, purpose)
	if err != nil {
		return nil, err
	}
	return cryptox.DeriveKey(sub, payloadKeyInfo(purpose, itemID))
}

// QRSecret returns the 32-byte secret embedded in the item's printed
// found-URL. The owner can always re-derive it from their wallet; a finder
// obtains it by scanning the label.
func (s *KeyService) QRSecret(ctx context.Context, itemID string) ([]byte, error) {
	sub, err := s.subSignature(ctx, itemID, models.PurposeContact)
	if err != nil {
		return nil, err
	}
	return cryptox.DeriveBytes(sub, qrSecretInfo(itemID), 32)
}

// ContactKeyFromSecret derives the contact payload key from a QR secret.
// This is the finder-side path: no wallet is involved.
func ContactKeyFromSecret(qrSecret []byte, itemID string) ([]byte, error) {
	return cryptox.DeriveKey(qrSecret, payloadKeyInfo(models.PurposeContact, itemID))
}

// ContactKeyAsOwner derives the same contact key from the owner's wallet
// signature chain, for decrypting a revealed claim.
func (s *KeyService) ContactKeyAsOwner(ctx context.Context, itemID string) ([]byte, error) {
	secret, err := s.QRSecret(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return ContactKeyFromSecret(secret, itemID)
}

// ClearForCurrentAddress drops cached signatures for the connected address.
func (s *KeyService) ClearForCurrentAddress(ctx context.Context) error {
	addr, err := s.Address()
	if err != nil {
		return err
	}
	return s.sigRepo.ClearForAddress(ctx, addr)
}

// subSignature returns the cached per-item sub-signature, deriving and
// caching it from the master signature on a miss.
func (s *KeyService) subSignature(ctx context.Context, itemID string, purpose models.Purpose) ([]byte, error) {
	addr, err := s.Address()
	if err != nil {
		return nil, err
	}

	cached, err := s.sigRepo.Get(ctx, addr, itemID, purpose)
	if err != nil {
		return nil, fmt.Errorf("signature cache: %w", err)
	}
	if cached != nil {
		return cached, nil
	}

	master, err := s.masterSignature(ctx, addr)
	if err != nil {
		return nil, err
	}

	sub, err := cryptox.DeriveBytes(master, keyMessage(purpose, itemID), subSignatureSize)
	if err != nil {
		return nil, err
	}

	if err := s.sigRepo.Set(ctx, addr, itemID, purpose, sub); err != nil {
		// A failed cache write costs a re-derivation later, nothing more.
		s.log.Warn(ctx, "failed to cache sub-signature", "item", itemID, "err", err)
	}
	return sub, nil
}

// masterSignature returns the cached master signature for addr, prompting
// the wallet on a miss. The cache check happens-before any signing attempt.
func (s *KeyService) masterSignature(ctx context.Context, addr string) ([]byte, error) {
	cached, err := s.sigRepo.Get(ctx, addr, masterScope, models.PurposeMaster)
	if err != nil {
		return nil, fmt.Errorf("signature cache: %w", err)
	}
	if cached != nil {
		return cached, nil
	}

	sig, err := s.signer.SignText(ctx, []byte(masterMessage(addr)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSigningRejected, err)
	}

	if err := s.sigRepo.Set(ctx, addr, masterScope, models.PurposeMaster, sig); err != nil {
		s.log.Warn(ctx, "failed to cache master signature", "err", err)
	}
	return sig, nil
}
