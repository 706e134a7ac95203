package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/nostos-app/nostos/internal/common"
	"github.com/nostos-app/nostos/internal/wallet"
)

// Unlock opens the wallet keystore and rebuilds the services around the
// decrypted key.
func (a *App) Unlock(ctx context.Context) error {

	path := a.config.KeystorePath
	if path == "" {
		var err error
		path, err = GetSimpleText(a.reader, "Keystore file path:", os.Stdout)
		if err != nil {
			fmt.Println(err.Error())
			return err
		}
	}

	passphrase, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	defer common.WipeByteArray(passphrase)

	signer, err := wallet.NewLocalSignerFromKeystore(path, passphrase)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.signer = signer
	a.buildServices()
	fmt.Println("Unlocked wallet", signer.Address().Hex())
	return nil
}
