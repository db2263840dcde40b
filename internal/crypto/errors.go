package crypto

import "errors"

var (
	// ErrKeyGeneration is returned when the underlying provider cannot
	// produce a fresh keypair.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeyImport is returned when a persisted key record is malformed:
	// wrong curve, malformed base64url, wrong field widths, or stored
	// coordinates that do not match the point derived from the scalar.
	ErrKeyImport = errors.New("invalid key record")

	// ErrMalformedEnvelope is returned when a push record is shorter than
	// its fixed header, truncates its declared key id, or carries less
	// ciphertext than an authentication tag.
	ErrMalformedEnvelope = errors.New("malformed content envelope")

	// ErrAuthenticationFailed is returned when the GCM tag does not
	// verify. No plaintext is ever released alongside it.
	ErrAuthenticationFailed = errors.New("message authentication failed")

	// ErrMalformedToken is returned for structurally invalid VAPID input:
	// wrong segment count, invalid base64url, an unsupported algorithm
	// claim, or a signature of the wrong length. A well-formed token that
	// simply does not verify is not an error.
	ErrMalformedToken = errors.New("malformed vapid token")

	// ErrInvalidPublicKey is returned when sender key bytes do not encode
	// a valid uncompressed P-256 point.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidSize is returned when some other input has an incorrect size.
	ErrInvalidSize = errors.New("invalid size")
)
