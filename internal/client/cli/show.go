package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/nostos-app/nostos/internal/client/models"
)

// parseItemID validates a 0x-prefixed 32-byte hex item id.
func parseItemID(s string) (ethcommon.Hash, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil || len(raw) != ethcommon.HashLength {
		return ethcommon.Hash{}, fmt.Errorf("invalid item id %q", s)
	}
	return ethcommon.BytesToHash(raw), nil
}

func parseClaimIndex(s string) (uint64, error) {
	idx, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid claim index %q", s)
	}
	return idx, nil
}

// Show prints one item with its claims, decrypting the details when the
// caller owns the item.
func (a *App) Show(ctx context.Context, args []string) error {

	if len(args) == 0 {
		fmt.Println("Usage: show <itemId>")
		return nil
	}
	itemID, err := parseItemID(args[0])
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	item, claims, err := a.items.Show(ctx, itemID)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Item:  ", item.Item.ID.Hex())
	fmt.Println("Owner: ", item.Item.Owner.Hex())
	fmt.Println("Status:", item.Item.Status)
	if item.Payload != nil {
		fmt.Println("Name:       ", item.Payload.Name)
		fmt.Println("Description:", item.Payload.Description)
		if item.Payload.Reward != "" {
			fmt.Println("Reward:     ", item.Payload.Reward, "ETH")
		}
		if item.Payload.Message != "" {
			fmt.Println("Message:    ", item.Payload.Message)
		}
	}

	if len(claims) == 0 {
		fmt.Println("No claims.")
		return nil
	}
	for _, c := range claims {
		fmt.Printf("Claim #%d  finder=%s  status=%s\n", c.Index, c.Finder.Hex(), c.Status)
		if item.Payload != nil && c.Status >= models.ClaimContactRevealed {
			contact, err := a.items.DecryptClaimContact(ctx, itemID, c.Index)
			if err != nil {
				continue
			}
			fmt.Printf("  contact: %s  %s  %s\n", contact.Name, contact.Email, contact.Phone)
		}
	}
	return nil
}
