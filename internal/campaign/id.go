package campaign

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/osse101/LootVault_Go/internal/domain"
)

var alphabetSize = big.NewInt(int64(len(domain.CampaignIDAlphabet)))

// NewID returns a random campaign id.
func NewID() (string, error) {
	buf := make([]byte, domain.CampaignIDLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate campaign id: %w", err)
		}
		buf[i] = domain.CampaignIDAlphabet[n.Int64()]
	}
	return string(buf), nil
}
