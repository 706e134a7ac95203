package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nostos-app/nostos/internal/client/chain"
	"github.com/nostos-app/nostos/internal/client/models"
)

// Claim is the finder flow: parse the scanned label URL, prompt for contact
// details, encrypt them under the label's secret and submit the claim with
// the stake.
func (a *App) Claim(ctx context.Context, args []string) error {

	if len(args) == 0 {
		fmt.Println("Usage: claim <found-url>")
		return nil
	}
	itemID, qrSecret, err := chain.ParseFoundURL(args[0])
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	name, err := GetSimpleText(a.reader, "Your name:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	email, err := GetSimpleText(a.reader, "Email:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	phone, err := GetSimpleText(a.reader, "Phone (optional):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	message, err := GetMultiline(a.reader, "Message to the owner (optional):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	contact := &models.ContactPayload{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}

	txHash, err := a.items.Claim(ctx, itemID, qrSecret, contact, chain.MinStake)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Claim submitted for item", itemID.Hex())
	fmt.Println("Transaction:", txHash.Hex())
	return nil
}
