package pushrelay

import (
	"fmt"

	"github.com/pushrelay/client-go/events"
	"github.com/pushrelay/client-go/internal/crypto"
	"github.com/pushrelay/client-go/storage"
)

// Client manages push subscriptions: key generation, persistence, and
// the trust anchor for sender verification. It is safe for concurrent
// use; all per-message work happens on immutable subscription state.
type Client struct {
	store         storage.Store
	trustedSender string
}

// New creates a client. With no options it keeps key material in memory
// and accepts messages from any sender.
func New(opts ...Option) (*Client, error) {
	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.store == nil {
		cfg.store = storage.NewMemStore()
	}

	if cfg.trustedSender != "" {
		if err := validateSenderKey(cfg.trustedSender); err != nil {
			return nil, err
		}
	}

	return &Client{
		store:         cfg.store,
		trustedSender: cfg.trustedSender,
	}, nil
}

// validateSenderKey checks that a base64url sender key decodes to a
// 65-byte uncompressed point.
func validateSenderKey(publicKey string) error {
	raw, err := crypto.DecodeBase64(publicKey)
	if err != nil {
		return fmt.Errorf("%w: invalid encoding", ErrInvalidSenderKey)
	}
	if len(raw) != crypto.UncompressedPointSize || raw[0] != crypto.UncompressedPointTag {
		return fmt.Errorf("%w: not a %d-byte uncompressed point", ErrInvalidSenderKey, crypto.UncompressedPointSize)
	}
	return nil
}

// NewSubscription generates a fresh P-256 keypair and 16-byte auth
// secret for a push subscription reachable at endpoint.
func (c *Client) NewSubscription(endpoint string) (*Subscription, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrInvalidSubscription)
	}

	keypair, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, err
	}

	authSecret, err := crypto.NewAuthSecret()
	if err != nil {
		return nil, fmt.Errorf("generate auth secret: %w", err)
	}

	return &Subscription{
		endpoint:      endpoint,
		keypair:       keypair,
		authSecret:    authSecret,
		trustedSender: c.trustedSender,
		bus:           events.NewDispatcher[*DecryptedMessage](),
	}, nil
}
