package cli

import (
	"context"
	"fmt"
)

const historyLimit = 20

// History prints the most recent local activity records.
func (a *App) History(ctx context.Context) error {

	rows, err := a.items.History(ctx, historyLimit)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%s  %-10s  %s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Kind, r.ItemID, r.Details)
	}
	return nil
}
