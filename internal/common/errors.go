// Package common defines shared constants and sentinel errors used across
// the Nostos client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Wallet errors. ErrNoWalletConnected means no signer is available for
	// the requested subject address; ErrSigningRejected means the user
	// declined the prompt or the wallet failed while signing. Neither is
	// retried automatically.
	ErrNoWalletConnected = errors.New("no wallet connected")
	ErrSigningRejected   = errors.New("signing rejected")

	// ErrDecryptionFailed covers every decrypt-side failure: malformed hex,
	// AEAD tag mismatch, JSON parse. The stage is logged locally but not
	// exposed, so callers cannot be used as a decryption oracle.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrCacheCorrupt marks a malformed persisted cache entry. Recovery is
	// to discard the entry, never to fail the operation.
	ErrCacheCorrupt = errors.New("cache entry corrupt")
)
