package cli

import (
	"context"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Events prints recent contract events from the scanned block window,
// filtered to the current wallet where the event indexes an owner.
func (a *App) Events(ctx context.Context) error {

	var owner *ethcommon.Address
	if a.signer != nil {
		addr := a.signer.Address()
		owner = &addr
	}

	registered, err := a.gateway.ItemRegisteredEvents(ctx, owner)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	for _, e := range registered {
		fmt.Printf("registered  item=%s  owner=%s  stake=%s\n",
			e.ItemID.Hex(), e.Owner.Hex(), e.Stake)
	}

	submitted, err := a.gateway.ClaimSubmittedEvents(ctx, nil)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	for _, e := range submitted {
		fmt.Printf("claimed     item=%s  finder=%s  claim=#%s\n",
			e.ItemID.Hex(), e.Finder.Hex(), e.ClaimIndex)
	}

	revealed, err := a.gateway.ContactRevealedEvents(ctx, nil)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	for _, e := range revealed {
		fmt.Printf("revealed    item=%s  owner=%s  claim=#%s\n",
			e.ItemID.Hex(), e.Owner.Hex(), e.ClaimIndex)
	}

	returned, err := a.gateway.ItemReturnedEvents(ctx, owner)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	for _, e := range returned {
		fmt.Printf("returned    item=%s  finder=%s  reward=%s\n",
			e.ItemID.Hex(), e.Finder.Hex(), e.RewardAmount)
	}

	total := len(registered) + len(submitted) + len(revealed) + len(returned)
	if total == 0 {
		fmt.Println("No recent events in the scanned block range.")
	}
	return nil
}
