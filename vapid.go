package pushrelay

import (
	"github.com/pushrelay/client-go/internal/crypto"
)

// VerifyVAPID parses a `vapid t=<token>, k=<publicKey>` Authorization
// header and verifies the embedded signed token against trustedKey, the
// base64url 65-byte uncompressed P-256 public key the caller already
// trusts. The header's own k parameter is required to be well formed
// but is never what the signature is checked against.
//
// It returns false with a nil error for a well-formed token that does
// not verify (wrong key, tampered content, or expired exp claim), and
// ErrMalformedToken for structurally invalid input.
func VerifyVAPID(header, trustedKey string) (bool, error) {
	return crypto.VerifyVAPID(header, trustedKey)
}
