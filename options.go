package pushrelay

import (
	"github.com/pushrelay/client-go/storage"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	store         storage.Store
	trustedSender string
}

// Option configures the client.
type Option func(*clientConfig)

// WithStorage sets the persistence backend for subscription key
// material. Defaults to an in-memory store, which does not survive
// process restarts.
func WithStorage(store storage.Store) Option {
	return func(c *clientConfig) {
		c.store = store
	}
}

// WithTrustedSender pins the application server's VAPID public key (the
// base64url 65-byte uncompressed P-256 point). When set, every message
// opened through a subscription must carry a VAPID assertion that
// verifies against this key.
func WithTrustedSender(publicKey string) Option {
	return func(c *clientConfig) {
		c.trustedSender = publicKey
	}
}
