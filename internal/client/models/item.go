package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ItemStatus mirrors the contract's item state machine. The contract is
// authoritative; these values are decoded for display only.
type ItemStatus uint8

const (
	ItemActive ItemStatus = iota
	ItemHasClaims
	ItemReturned
	ItemAbandoned
)

func (s ItemStatus) String() string {
	switch s {
	case ItemActive:
		return "active"
	case ItemHasClaims:
		return "has claims"
	case ItemReturned:
		return "returned"
	case ItemAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// ClaimStatus mirrors the contract's claim state machine.
type ClaimStatus uint8

const (
	ClaimPending ClaimStatus = iota
	ClaimContactRevealed
	ClaimCompleted
	ClaimDisputed
)

func (s ClaimStatus) String() string {
	switch s {
	case ClaimPending:
		return "pending"
	case ClaimContactRevealed:
		return "contact revealed"
	case ClaimCompleted:
		return "completed"
	case ClaimDisputed:
		return "disputed"
	default:
		return "unknown"
	}
}

// Item is the on-chain item record as returned by the contract's getItem.
// EncryptedData is the hex payload blob produced by the encryption layer.
type Item struct {
	ID               common.Hash
	Owner            common.Address
	Status           ItemStatus
	RegistrationTime *big.Int
	LastActivity     *big.Int
	Stake            *big.Int
	EncryptedData    []byte
}

// Claim is one finder claim on an item.
type Claim struct {
	ItemID           common.Hash
	Index            uint64
	Finder           common.Address
	Status           ClaimStatus
	Timestamp        *big.Int
	RevealDeadline   *big.Int
	EscrowAmount     *big.Int
	EncryptedContact []byte
}

// UserStats is the unpacked view of the contract's packed per-user counters.
type UserStats struct {
	TotalItems    int
	ActiveItems   int
	ReturnedItems int
}
