// Package crypto implements the receive side of the Web Push message
// encryption and sender authentication schemes.
//
// # Algorithm Suite
//
// The package uses the algorithms mandated by the Web Push RFCs:
//
//   - ECDH over NIST P-256 (RFC 8291): key agreement between the
//     subscription keypair and the application server's per-message key.
//
//   - HKDF-SHA-256 (RFC 5869): two-stage key derivation turning the ECDH
//     secret plus the subscription auth secret into a content-encryption
//     key and nonce, bound to both public keys via the "WebPush: info"
//     context string.
//
//   - AES-128-GCM (RFC 8188 "aes128gcm" content coding): authenticated
//     decryption of the push record body.
//
//   - ECDSA P-256 / SHA-256 (RFC 8292 VAPID): verification of the signed
//     bearer token identifying the application server.
//
// # Security Model
//
// Decryption fails closed: a record whose GCM tag does not verify yields
// [ErrAuthenticationFailed] and never any plaintext. VAPID verification
// is performed against a caller-supplied trusted key, never against the
// key the header itself carries, so possession of a header cannot vouch
// for itself.
//
// # Key Derivation Pitfalls
//
// The HKDF chain is fully deterministic and unforgiving: the info
// strings carry an explicit trailing NUL, the "WebPush: info" material
// concatenates the receiver key before the sender key, and every output
// length is fixed (32-byte IKM, 16-byte key, 12-byte nonce). Getting any
// of these wrong derives a syntactically valid but useless key with no
// error until the GCM tag check. The known-answer tests in this package
// pin the exact bytes.
//
// # Key Management
//
// Use [GenerateKeypair] to create a subscription keypair and
// [Keypair.ExportRecord] / [ImportRecord] to round-trip it through the
// JWK-shaped persisted form. Import re-derives the public point from the
// stored scalar and rejects records whose stored coordinates disagree.
//
// Keep the private scalar secure. It should never be logged, transmitted
// in plaintext, or stored outside the persistence collaborator.
package crypto
