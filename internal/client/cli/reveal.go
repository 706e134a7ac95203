package cli

import (
	"context"
	"fmt"

	"github.com/nostos-app/nostos/internal/client/chain"
)

// Reveal pays the reveal fee for a claim and prints the finder's decrypted
// contact details.
func (a *App) Reveal(ctx context.Context, args []string) error {

	if len(args) < 2 {
		fmt.Println("Usage: reveal <itemId> <claimIndex>")
		return nil
	}
	itemID, err := parseItemID(args[0])
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	claimIndex, err := parseClaimIndex(args[1])
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	contact, txHash, err := a.items.Reveal(ctx, itemID, claimIndex, chain.PlatformFee)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Transaction:", txHash.Hex())
	fmt.Println("Finder contact:")
	fmt.Println("  Name: ", contact.Name)
	fmt.Println("  Email:", contact.Email)
	if contact.Phone != "" {
		fmt.Println("  Phone:", contact.Phone)
	}
	if contact.Message != "" {
		fmt.Println("  Message:", contact.Message)
	}
	return nil
}
