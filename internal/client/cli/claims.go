package cli

import (
	"context"
	"fmt"
	"time"
)

// Claims lists the claims the current wallet has submitted as a finder.
func (a *App) Claims(ctx context.Context) error {

	claims, err := a.items.MyClaims(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if len(claims) == 0 {
		fmt.Println("No claims submitted.")
		return nil
	}
	for _, c := range claims {
		submitted := time.Unix(c.Timestamp.Int64(), 0).Format(time.DateOnly)
		fmt.Printf("%s  claim #%d  status=%s  submitted=%s\n",
			c.ItemID.Hex(), c.Index, c.Status, submitted)
	}
	return nil
}
