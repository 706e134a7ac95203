package cli

import (
	"context"
	"fmt"
)

// Approve accepts a pending claim without yet confirming the return.
func (a *App) Approve(ctx context.Context, args []string) error {

	if len(args) < 2 {
		fmt.Println("Usage: approve <itemId> <claimIndex>")
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

	txHash, err := a.items.ApproveClaim(ctx, itemID, claimIndex)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Claim approved, transaction:", txHash.Hex())
	return nil
}

// Reject dismisses a pending claim and releases the finder's stake back.
func (a *App) Reject(ctx context.Context, args []string) error {

	if len(args) < 2 {
		fmt.Println("Usage: reject <itemId> <claimIndex>")
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

	txHash, err := a.items.RejectClaim(ctx, itemID, claimIndex)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Claim rejected, transaction:", txHash.Hex())
	return nil
}
