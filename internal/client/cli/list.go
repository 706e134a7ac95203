package cli

import (
	"context"
	"fmt"
	"time"
)

// List fetches and decrypts the caller's items with a single signing
// prompt, then renders them.
func (a *App) List(ctx context.Context) error {

	items, err := a.items.ListMine(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("No items registered.")
		return nil
	}

	for _, it := range items {
		name := "(undecryptable)"
		if it.Payload != nil {
			name = it.Payload.Name
		}
		registered := time.Unix(it.Item.RegistrationTime.Int64(), 0).Format("2006-01-02")
		fmt.Printf("%s  %-20s  %-12s  %s\n", it.Item.ID.Hex(), name, it.Item.Status, registered)
	}
	return nil
}
