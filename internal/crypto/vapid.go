package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// vapidScheme is the authentication scheme prefix of RFC 8292 headers.
const vapidScheme = "vapid "

// tokenHeader is the decoded first segment of a VAPID token.
type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// tokenClaims is the decoded second segment. All claims are optional;
// their validation is a pass-through judgment on decoded values, not a
// cryptographic operation.
type tokenClaims struct {
	Aud string `json:"aud"`
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
}

// ParseVAPIDHeader splits an RFC 8292 Authorization header of the form
//
//	vapid t=<token>, k=<publicKey>
//
// into its token and key parameters. Both must be present.
func ParseVAPIDHeader(header string) (token, key string, err error) {
	if len(header) < len(vapidScheme) || !strings.EqualFold(header[:len(vapidScheme)], vapidScheme) {
		return "", "", fmt.Errorf("%w: missing vapid scheme", ErrMalformedToken)
	}

	for _, param := range strings.Split(header[len(vapidScheme):], ",") {
		param = strings.TrimSpace(param)
		switch {
		case strings.HasPrefix(param, "t="):
			token = param[len("t="):]
		case strings.HasPrefix(param, "k="):
			key = param[len("k="):]
		}
	}

	if token == "" || key == "" {
		return "", "", fmt.Errorf("%w: missing t or k parameter", ErrMalformedToken)
	}
	return token, key, nil
}

// VerifyVAPID parses a `vapid t=..., k=...` header and verifies the
// embedded token's signature against trustedKey, the base64url 65-byte
// uncompressed public key the caller already trusts. The header's own k
// parameter must be well formed but is deliberately not what the
// signature is checked against.
//
// It returns false with a nil error for a well-formed token that does
// not verify (or whose exp claim has passed), and ErrMalformedToken for
// structurally invalid input.
func VerifyVAPID(header, trustedKey string) (bool, error) {
	token, embeddedKey, err := ParseVAPIDHeader(header)
	if err != nil {
		return false, err
	}

	if _, err := parseVerifyKey(embeddedKey); err != nil {
		return false, err
	}

	publicKey, err := parseVerifyKey(trustedKey)
	if err != nil {
		return false, err
	}

	return verifyToken(token, publicKey)
}

// parseVerifyKey decodes a base64url uncompressed P-256 point into an
// ECDSA verification key.
func parseVerifyKey(b64 string) (*ecdsa.PublicKey, error) {
	raw, err := DecodeBase64(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid key encoding", ErrMalformedToken)
	}
	x, y := elliptic.Unmarshal(elliptic.P256(), raw)
	if x == nil {
		return nil, fmt.Errorf("%w: invalid public key point", ErrMalformedToken)
	}
	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
}

// verifyToken checks a three-segment signed token against publicKey.
// The signature is raw concatenated R||S over "header.payload", not DER.
func verifyToken(token string, publicKey *ecdsa.PublicKey) (bool, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return false, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(segments))
	}

	headerJSON, err := FromBase64URL(segments[0])
	if err != nil {
		return false, fmt.Errorf("%w: invalid header segment", ErrMalformedToken)
	}
	payloadJSON, err := FromBase64URL(segments[1])
	if err != nil {
		return false, fmt.Errorf("%w: invalid payload segment", ErrMalformedToken)
	}
	signature, err := FromBase64URL(segments[2])
	if err != nil {
		return false, fmt.Errorf("%w: invalid signature segment", ErrMalformedToken)
	}
	if len(signature) != SignatureSize {
		return false, fmt.Errorf("%w: signature is %d bytes, want %d", ErrMalformedToken, len(signature), SignatureSize)
	}

	var header tokenHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return false, fmt.Errorf("%w: invalid header json", ErrMalformedToken)
	}
	if header.Alg != "ES256" {
		return false, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedToken, header.Alg)
	}

	signingString := segments[0] + "." + segments[1]
	if err := jwt.SigningMethodES256.Verify(signingString, signature, publicKey); err != nil {
		return false, nil
	}

	var claims tokenClaims
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return false, fmt.Errorf("%w: invalid payload json", ErrMalformedToken)
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return false, nil
	}

	return true, nil
}
