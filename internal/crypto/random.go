package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// randReader is the random source used for key and secret generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func randomSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(randomSource(), buf); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return buf, nil
}

// NewAuthSecret returns a fresh 16-byte subscription authentication secret.
func NewAuthSecret() ([]byte, error) {
	return RandomBytes(AuthSecretSize)
}

// NewMessageID returns a random identifier for correlating push messages.
func NewMessageID() string {
	return uuid.NewString()
}
