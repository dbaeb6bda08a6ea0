package projects

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// publicIDPrefix is the user-facing project id namespace, e.g.
// furnish-48213-0917.
const publicIDPrefix = "furnish"

// NewPublicID generates a shareable project id. Uniqueness is enforced by
// the database; callers retry on collision.
func NewPublicID(prefix string) (string, error) {
	if prefix == "" {
		prefix = publicIDPrefix
	}

	major, err := randomInRange(10000, 99999)
	if err != nil {
		return "", err
	}
	minor, err := randomInRange(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d-%04d", prefix, major, minor), nil
}

func randomInRange(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, fmt.Errorf("generate public id: %w", err)
	}
	return min + n.Int64(), nil
}
