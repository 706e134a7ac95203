package chain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultBaseURL is where printed labels point when no custom base is
// configured.
const DefaultBaseURL = "https://nostos.app"

// GenerateItemID returns a fresh random 32-byte item id. Ids are chosen
// client-side; collisions are rejected by the contract on registration.
func GenerateItemID() common.Hash {
	var id common.Hash
	if _, err := rand.Read(id[:]); err != nil {
		panic(err)
	}
	return id
}

// BuildFoundURL renders the URL printed on an item's QR label. The path
// carries the item id without the 0x prefix; the key query parameter is the
// hex QR secret a finder needs to encrypt their contact details.
func BuildFoundURL(baseURL string, itemID common.Hash, qrSecret []byte) string {
	return fmt.Sprintf("%s/found/%s?key=%s",
		strings.TrimRight(baseURL, "/"),
		hex.EncodeToString(itemID[:]),
		hex.EncodeToString(qrSecret))
}

// ParseFoundURL extracts the item id and QR secret from a scanned label URL.
func ParseFoundURL(raw string) (common.Hash, []byte, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return common.Hash{}, nil, fmt.Errorf("parse found url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	idHex := parts[len(parts)-1]
	idBytes, err := hex.DecodeString(strings.TrimPrefix(idHex, "0x"))
	if err != nil || len(idBytes) != common.HashLength {
		return common.Hash{}, nil, fmt.Errorf("found url: invalid item id %q", idHex)
	}

	keyHex := u.Query().Get("key")
	if keyHex == "" {
		return common.Hash{}, nil, fmt.Errorf("found url: missing key parameter")
	}
	secret, err := hex.DecodeString(keyHex)
	if err != nil {
		return common.Hash{}, nil, fmt.Errorf("found url: invalid key parameter")
	}

	return common.BytesToHash(idBytes), secret, nil
}
