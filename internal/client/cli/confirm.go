package cli

import (
	"context"
	"fmt"
)

// Confirm marks a claimed item as returned, releasing the escrow to the
// finder.
func (a *App) Confirm(ctx context.Context, args []string) error {

	if len(args) < 2 {
		fmt.Println("Usage: confirm <itemId> <claimIndex>")
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

	txHash, err := a.items.ConfirmReturn(ctx, itemID, claimIndex)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Return confirmed, transaction:", txHash.Hex())
	return nil
}
