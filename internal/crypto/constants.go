package crypto

const (
	// UncompressedPointSize is the size of an uncompressed P-256 public
	// key: the 0x04 marker byte followed by the X and Y coordinates.
	UncompressedPointSize = 65
	// UncompressedPointTag is the leading byte of an uncompressed point.
	UncompressedPointTag = 0x04
	// CoordinateSize is the size of a big-endian P-256 coordinate in bytes.
	CoordinateSize = 32
	// ScalarSize is the size of a P-256 private scalar in bytes.
	ScalarSize = 32
	// ECDHSecretSize is the size of the ECDH shared secret (the X
	// coordinate of the shared point) in bytes.
	ECDHSecretSize = 32

	// AuthSecretSize is the size of the subscription auth secret in bytes.
	AuthSecretSize = 16
	// SaltSize is the size of the per-message salt in bytes.
	SaltSize = 16
	// IKMSize is the size of the intermediate key material produced by
	// the first HKDF stage in bytes.
	IKMSize = 32

	// AESKeySize is the size of an AES-128 content-encryption key in bytes.
	AESKeySize = 16
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// SignatureSize is the size of a raw R||S ECDSA P-256 signature in bytes.
	SignatureSize = 64
)

// HKDF info strings from RFC 8291 and RFC 8188. Each carries an
// explicit trailing NUL byte that is part of the derivation input.
var (
	webPushInfo              = []byte("WebPush: info\x00")
	contentEncryptionKeyInfo = []byte("Content-Encoding: aes128gcm\x00")
	nonceInfo                = []byte("Content-Encoding: nonce\x00")
)
