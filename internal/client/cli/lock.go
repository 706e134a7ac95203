package cli

import (
	"context"
	"fmt"
)

// Lock forgets the wallet key and clears both the signature cache for the
// current address and the in-memory decrypted payloads.
func (a *App) Lock(ctx context.Context) error {

	if a.signer == nil {
		fmt.Println("Already locked.")
		return nil
	}

	if err := a.enc.ClearCaches(ctx); err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.signer = nil
	a.buildServices()
	fmt.Println("Locked.")
	return nil
}
