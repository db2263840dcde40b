package pushrelay

import (
	"fmt"
	"time"

	"github.com/pushrelay/client-go/events"
	"github.com/pushrelay/client-go/internal/crypto"
)

// Subscription is one push subscription: the endpoint an application
// server delivers to, the P-256 keypair, and the auth secret. Its key
// material is immutable after construction, so all methods are safe to
// call concurrently.
type Subscription struct {
	endpoint      string
	keypair       *crypto.Keypair
	authSecret    []byte
	trustedSender string
	bus           events.Bus[*DecryptedMessage]
}

// SubscriptionKeys is the public key material handed to an application
// server when registering the subscription, in the browser PushManager
// wire form: unpadded base64url.
type SubscriptionKeys struct {
	// P256dh is the subscription's uncompressed public key (65 bytes decoded).
	P256dh string `json:"p256dh"`
	// Auth is the 16-byte authentication secret.
	Auth string `json:"auth"`
}

// Endpoint returns the push service delivery URL for this subscription.
func (s *Subscription) Endpoint() string {
	return s.endpoint
}

// Keys returns the subscription's public key material.
func (s *Subscription) Keys() SubscriptionKeys {
	return SubscriptionKeys{
		P256dh: s.keypair.PublicKeyB64(),
		Auth:   crypto.ToBase64URL(s.authSecret),
	}
}

// Decrypt recovers the plaintext of a raw aes128gcm record addressed to
// this subscription. The sender's public key is taken from the record's
// key id header.
func (s *Subscription) Decrypt(record []byte) ([]byte, error) {
	return crypto.Decrypt(s.keypair, s.authSecret, nil, record)
}

// OnMessage registers a listener invoked for every message successfully
// opened through this subscription. It returns an unsubscribe function.
func (s *Subscription) OnMessage(fn func(*DecryptedMessage)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Open verifies and decrypts an incoming message, then dispatches the
// result to OnMessage listeners.
//
// When the client pinned a trusted sender key, the message must carry a
// VAPID Authorization header that verifies against it; a missing or
// non-matching assertion fails with ErrUntrustedSender before any
// decryption is attempted.
func (s *Subscription) Open(msg *Message) (*DecryptedMessage, error) {
	if s.trustedSender != "" {
		if msg.Authorization == "" {
			return nil, fmt.Errorf("%w: missing authorization header", ErrUntrustedSender)
		}
		ok, err := crypto.VerifyVAPID(msg.Authorization, s.trustedSender)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: vapid assertion does not verify against pinned key", ErrUntrustedSender)
		}
	}

	var senderKey []byte
	if msg.SenderKey != "" {
		raw, err := crypto.DecodeBase64(msg.SenderKey)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid encoding", ErrInvalidSenderKey)
		}
		senderKey = raw
	}

	body, err := crypto.Decrypt(s.keypair, s.authSecret, senderKey, msg.Record)
	if err != nil {
		return nil, err
	}

	id := msg.ID
	if id == "" {
		id = crypto.NewMessageID()
	}
	receivedAt := msg.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	decrypted := &DecryptedMessage{
		ID:         id,
		Body:       body,
		ReceivedAt: receivedAt,
	}
	s.bus.Dispatch(decrypted)

	return decrypted, nil
}
