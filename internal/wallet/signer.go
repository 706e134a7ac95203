// Package wallet provides message signing for the Nostos client.
//
// Signer is the capability the encryption layer depends on: the ability to
// produce an Ethereum personal_sign signature over arbitrary text for one
// address. Key derivation relies on those signatures being deterministic,
// which holds for secp256k1 ECDSA with RFC 6979 nonces as implemented by
// go-ethereum and by every mainstream wallet.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs arbitrary text on behalf of a single address.
//
// SignText must implement personal_sign semantics: the EIP-191 prefix is
// applied to the text before hashing, and the returned signature is 65 bytes
// (r || s || v) with v in {27, 28}. The call may suspend on user interaction
// and must honor ctx cancellation where the backing implementation allows it.
type Signer interface {
	Address() common.Address
	SignText(ctx context.Context, text []byte) ([]byte, error)
}

// LocalSigner signs with an in-process secp256k1 private key. It backs the
// CLI, where the "wallet" is a local keystore file rather than a browser
// extension.
type LocalSigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewLocalSigner wraps an already-decrypted private key.
func NewLocalSigner(key *ecdsa.PrivateKey) *LocalSigner {
	return &LocalSigner{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
}

// NewLocalSignerFromHex parses a hex-encoded private key. Intended for tests
// and development setups.
func NewLocalSignerFromHex(hexKey string) (*LocalSigner, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return NewLocalSigner(key), nil
}

// NewLocalSignerFromKeystore decrypts a go-ethereum keystore file with the
// given passphrase.
func NewLocalSignerFromKeystore(path string, passphrase []byte) (*LocalSigner, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	key, err := keystore.DecryptKey(raw, string(passphrase))
	if err != nil {
		return nil, fmt.Errorf("decrypt keystore: %w", err)
	}
	return NewLocalSigner(key.PrivateKey), nil
}

// Address returns the address derived from the signer's public key.
func (s *LocalSigner) Address() common.Address {
	return s.addr
}

// SignText signs text with personal_sign semantics. The signature is
// deterministic for a given (key, text) pair.
func (s *LocalSigner) SignText(_ context.Context, text []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(text), s.key)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	// go-ethereum yields v in {0,1}; wallets report {27,28}.
	sig[64] += 27
	return sig, nil
}

// SignTx signs a transaction for the given chain id.
func (s *LocalSigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}
	return signed, nil
}
