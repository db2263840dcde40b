package pushrelay

import (
	"errors"

	"github.com/pushrelay/client-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks. The crypto-layer sentinels are
// re-exported here so callers never need to reach into internal packages.
var (
	// ErrKeyGeneration is returned when the underlying provider cannot
	// produce a fresh subscription keypair.
	ErrKeyGeneration = crypto.ErrKeyGeneration

	// ErrKeyImport is returned when a persisted subscription record is
	// malformed. Callers recover by provisioning fresh keys.
	ErrKeyImport = crypto.ErrKeyImport

	// ErrMalformedEnvelope is returned when a push record's binary header
	// is truncated or inconsistent. The message must be rejected without
	// a decryption attempt.
	ErrMalformedEnvelope = crypto.ErrMalformedEnvelope

	// ErrAuthenticationFailed is returned when a record's GCM tag does
	// not verify. No plaintext is ever released alongside it.
	ErrAuthenticationFailed = crypto.ErrAuthenticationFailed

	// ErrMalformedToken is returned for structurally invalid VAPID input.
	ErrMalformedToken = crypto.ErrMalformedToken

	// ErrInvalidSubscription is returned when a subscription is missing
	// required material (endpoint, keys, or auth secret).
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrInvalidSenderKey is returned when a sender public key is not a
	// valid base64url-encoded uncompressed P-256 point.
	ErrInvalidSenderKey = errors.New("invalid sender key")

	// ErrUntrustedSender is returned by Subscription.Open when a pinned
	// trusted sender is configured and the message's VAPID assertion is
	// missing or does not verify against it.
	ErrUntrustedSender = errors.New("untrusted sender")
)
