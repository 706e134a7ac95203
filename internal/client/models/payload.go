// Package models defines client-side data models for the Nostos CLI.
package models

// Purpose tags which payload type a derived key or cached signature is for.
// Item keys protect the owner's item description; contact keys protect a
// finder's contact details. The tag is part of every cache key and of the
// signed key-derivation message, so the two families can never collide.
type Purpose string

const (
	PurposeItem    Purpose = "item"
	PurposeContact Purpose = "contact"

	// PurposeMaster is not a payload purpose: it labels the cached master
	// signature the per-item sub-signatures are derived from.
	PurposeMaster Purpose = "master"
)

// ItemPayload is the owner's private item description. It is created at
// registration time, sealed client-side and submitted to the contract as an
// opaque blob; it never leaves the client in plaintext.
type ItemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Reward is a decimal string (e.g. "0.01"), never a float: amounts must
	// survive the round trip exactly.
	Reward    string `json:"reward"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ContactPayload is a finder's private contact details, sealed under the
// contact-purpose key at claim time and decrypted by the owner after paying
// to reveal it.
type ContactPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
