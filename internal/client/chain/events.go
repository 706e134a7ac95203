package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ItemRegisteredEvent is one ItemRegistered log entry.
type ItemRegisteredEvent struct {
	ItemID        common.Hash
	Owner         common.Address
	Stake         *big.Int
	Timestamp     *big.Int
	EncryptedData []byte
}

// ClaimSubmittedEvent is one ClaimSubmitted log entry.
type ClaimSubmittedEvent struct {
	ItemID           common.Hash
	Finder           common.Address
	ClaimIndex       *big.Int
	Timestamp        *big.Int
	EncryptedContact []byte
}

// ContactRevealedEvent is one ContactRevealed log entry.
type ContactRevealedEvent struct {
	ItemID       common.Hash
	Owner        common.Address
	ClaimIndex   *big.Int
	EscrowAmount *big.Int
	Timestamp    *big.Int
}

// ItemReturnedEvent is one ItemReturned log entry.
type ItemReturnedEvent struct {
	ItemID       common.Hash
	Owner        common.Address
	Finder       common.Address
	RewardAmount *big.Int
	Timestamp    *big.Int
}

// recentLogs fetches contract logs over the configured recent block window.
// Full-history scans are deliberately avoided; public RPC endpoints reject
// them.
func (g *Gateway) recentLogs(ctx context.Context, topics [][]common.Hash) ([]types.Log, error) {
	head, err := g.backend.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}

	from := new(big.Int)
	if head > g.scanRange {
		from.SetUint64(head - g.scanRange)
	}
	return g.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: from,
		ToBlock:   new(big.Int).SetUint64(head),
		Addresses: []common.Address{g.contract},
		Topics:    topics,
	})
}

// ItemRegisteredEvents scans recent blocks for registrations, optionally
// filtered to one owner.
func (g *Gateway) ItemRegisteredEvents(ctx context.Context, owner *common.Address) ([]ItemRegisteredEvent, error) {
	topics := [][]common.Hash{{contractABI.Events["ItemRegistered"].ID}}
	if owner != nil {
		topics = append(topics, nil, []common.Hash{common.BytesToHash(owner.Bytes())})
	}

	logs, err := g.recentLogs(ctx, topics)
	if err != nil {
		return nil, err
	}

	events := make([]ItemRegisteredEvent, 0, len(logs))
	for _, l := range logs {
		if len(l.Topics) < 3 {
			continue
		}
		var data struct {
			Stake         *big.Int
			Timestamp     *big.Int
			EncryptedData []byte
		}
		if err := contractABI.UnpackIntoInterface(&data, "ItemRegistered", l.Data); err != nil {
			g.log.Warn(ctx, "skipping undecodable ItemRegistered log", "tx", l.TxHash.Hex(), "err", err)
			continue
		}
		events = append(events, ItemRegisteredEvent{
			ItemID:        l.Topics[1],
			Owner:         common.BytesToAddress(l.Topics[2].Bytes()),
			Stake:         data.Stake,
			Timestamp:     data.Timestamp,
			EncryptedData: data.EncryptedData,
		})
	}
	return events, nil
}

// ClaimSubmittedEvents scans recent blocks for claims, optionally filtered
// to one item.
func (g *Gateway) ClaimSubmittedEvents(ctx context.Context, itemID *common.Hash) ([]ClaimSubmittedEvent, error) {
	topics := [][]common.Hash{{contractABI.Events["ClaimSubmitted"].ID}}
	if itemID != nil {
		topics = append(topics, []common.Hash{*itemID})
	}

	logs, err := g.recentLogs(ctx, topics)
	if err != nil {
		return nil, err
	}

	events := make([]ClaimSubmittedEvent, 0, len(logs))
	for _, l := range logs {
		if len(l.Topics) < 4 {
			continue
		}
		var data struct {
			Timestamp        *big.Int
			EncryptedContact []byte
		}
		if err := contractABI.UnpackIntoInterface(&data, "ClaimSubmitted", l.Data); err != nil {
			g.log.Warn(ctx, "skipping undecodable ClaimSubmitted log", "tx", l.TxHash.Hex(), "err", err)
			continue
		}
		events = append(events, ClaimSubmittedEvent{
			ItemID:           l.Topics[1],
			Finder:           common.BytesToAddress(l.Topics[2].Bytes()),
			ClaimIndex:       l.Topics[3].Big(),
			Timestamp:        data.Timestamp,
			EncryptedContact: data.EncryptedContact,
		})
	}
	return events, nil
}

// ContactRevealedEvents scans recent blocks for reveals, optionally
// filtered to one item.
func (g *Gateway) ContactRevealedEvents(ctx context.Context, itemID *common.Hash) ([]ContactRevealedEvent, error) {
	topics := [][]common.Hash{{contractABI.Events["ContactRevealed"].ID}}
	if itemID != nil {
		topics = append(topics, []common.Hash{*itemID})
	}

	logs, err := g.recentLogs(ctx, topics)
	if err != nil {
		return nil, err
	}

	events := make([]ContactRevealedEvent, 0, len(logs))
	for _, l := range logs {
		if len(l.Topics) < 4 {
			continue
		}
		var data struct {
			EscrowAmount *big.Int
			Timestamp    *big.Int
		}
		if err := contractABI.UnpackIntoInterface(&data, "ContactRevealed", l.Data); err != nil {
			g.log.Warn(ctx, "skipping undecodable ContactRevealed log", "tx", l.TxHash.Hex(), "err", err)
			continue
		}
		events = append(events, ContactRevealedEvent{
			ItemID:       l.Topics[1],
			Owner:        common.BytesToAddress(l.Topics[2].Bytes()),
			ClaimIndex:   l.Topics[3].Big(),
			EscrowAmount: data.EscrowAmount,
			Timestamp:    data.Timestamp,
		})
	}
	return events, nil
}

// ItemReturnedEvents scans recent blocks for completed returns, optionally
// filtered to one owner.
func (g *Gateway) ItemReturnedEvents(ctx context.Context, owner *common.Address) ([]ItemReturnedEvent, error) {
	topics := [][]common.Hash{{contractABI.Events["ItemReturned"].ID}}
	if owner != nil {
		topics = append(topics, nil, []common.Hash{common.BytesToHash(owner.Bytes())})
	}

	logs, err := g.recentLogs(ctx, topics)
	if err != nil {
		return nil, err
	}

	events := make([]ItemReturnedEvent, 0, len(logs))
	for _, l := range logs {
		if len(l.Topics) < 4 {
			continue
		}
		var data struct {
			RewardAmount *big.Int
			Timestamp    *big.Int
		}
		if err := contractABI.UnpackIntoInterface(&data, "ItemReturned", l.Data); err != nil {
			g.log.Warn(ctx, "skipping undecodable ItemReturned log", "tx", l.TxHash.Hex(), "err", err)
			continue
		}
		events = append(events, ItemReturnedEvent{
			ItemID:       l.Topics[1],
			Owner:        common.BytesToAddress(l.Topics[2].Bytes()),
			Finder:       common.BytesToAddress(l.Topics[3].Bytes()),
			RewardAmount: data.RewardAmount,
			Timestamp:    data.Timestamp,
		})
	}
	return events, nil
}
