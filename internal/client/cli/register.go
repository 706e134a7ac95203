package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nostos-app/nostos/internal/client/chain"
	"github.com/nostos-app/nostos/internal/client/models"
)

// Register prompts for item details, encrypts them, registers the item on
// chain and prints the found-URL for the QR label.
func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Item name:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	description, err := GetSimpleText(a.reader, "Description:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	reward, err := GetSimpleText(a.reader, "Reward (ETH, optional):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	message, err := GetMultiline(a.reader, "Message to the finder (optional):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	payload := &models.ItemPayload{
		Name:        name,
		Description: description,
		Reward:      reward,
		Message:     message,
		Timestamp:   time.Now().UnixMilli(),
	}

	fee, err := a.gateway.GetRegistrationFee(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not read registration fee, using default", "err", err)
		fee = chain.RegistrationFee
	}

	itemID, foundURL, txHash, err := a.items.Register(ctx, payload, fee)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Registered item", itemID.Hex())
	fmt.Println("Transaction:", txHash.Hex())
	fmt.Println("QR label URL:", foundURL)
	return nil
}
