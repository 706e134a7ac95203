// Package cryptox implements the symmetric payload codec and key derivation
// used by the Nostos client. Payloads are JSON-serialized, sealed with
// AES-256-GCM under a wallet-signature-derived key and carried as a single
// hex blob (12-byte nonce followed by ciphertext+tag), which is the only
// representation that crosses the contract boundary.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/nostos-app/nostos/internal/common"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes.
	NonceSize = 12
)

// DeriveBytes expands secret into n bytes of derived material using
// HKDF-SHA256. The info string binds the output to its context (purpose,
// item id) so two different uses of the same secret never share material.
// Wallet signatures serve as the root secret: they cannot be produced
// without the wallet's private key, and personal_sign signatures are
// deterministic, which is what makes the derivation repeatable.
func DeriveBytes(secret []byte, info string, n int) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("empty secret")
	}
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return out, nil
}

// DeriveKey derives a 32-byte AES key from secret bound to info.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	return DeriveBytes(secret, info, KeySize)
}

// Seal serializes payload to JSON and encrypts it with AES-GCM under key.
// A fresh random nonce is generated per call; reusing a nonce under the same
// key would break both confidentiality and authenticity, so the nonce is
// never supplied by the caller. The result is hex(nonce || ciphertext+tag).
func Seal(key []byte, payload any) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("invalid key length %d", len(key))
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := common.GenerateRandByteArray(NonceSize)
	blob := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(blob), nil
}

// Open decodes a hex blob produced by Seal, verifies and decrypts it, and
// unmarshals the plaintext JSON into v. Every failure mode (malformed hex,
// short blob, tag mismatch, JSON parse) is reported as the single sentinel
// common.ErrDecryptionFailed so callers cannot tell which stage failed;
// the wrapped detail remains available for local logging.
func Open(key []byte, blob string, v any) error {
	if len(key) != KeySize {
		return fmt.Errorf("%w: invalid key length %d", common.ErrDecryptionFailed, len(key))
	}

	raw, err := hex.DecodeString(blob)
	if err != nil {
		return fmt.Errorf("%w: hex decode: %v", common.ErrDecryptionFailed, err)
	}
	if len(raw) < NonceSize {
		return fmt.Errorf("%w: blob too short (%d bytes)", common.ErrDecryptionFailed, len(raw))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	nonce, ciphertext := raw[:NonceSize], raw[NonceSize:]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: auth: %v", common.ErrDecryptionFailed, err)
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", common.ErrDecryptionFailed, err)
	}
	return nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
