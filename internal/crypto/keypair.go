package crypto

import (
	"bytes"
	"crypto/ecdh"
	"fmt"
)

// Keypair is a P-256 keypair identifying one push subscription. The
// private handle stays opaque inside the struct; key material leaves it
// only through the explicit export methods. A Keypair is immutable once
// constructed.
type Keypair struct {
	private *ecdh.PrivateKey
	// uncompressed is the cached 0x04 || X || Y public key encoding.
	uncompressed []byte
}

// KeyRecord is the JWK-shaped persisted form of a keypair. All fields
// are unpadded base64url of fixed-width big-endian values.
type KeyRecord struct {
	// Kty is the JWK key type. MUST be "EC".
	Kty string `json:"kty"`
	// Crv is the curve name. MUST be "P-256".
	Crv string `json:"crv"`
	// X is the public point's X coordinate (32 bytes decoded).
	X string `json:"x"`
	// Y is the public point's Y coordinate (32 bytes decoded).
	Y string `json:"y"`
	// D is the private scalar (32 bytes decoded).
	D string `json:"d"`
}

// GenerateKeypair creates a new P-256 subscription keypair.
func GenerateKeypair() (*Keypair, error) {
	private, err := ecdh.P256().GenerateKey(randomSource())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return newKeypair(private), nil
}

func newKeypair(private *ecdh.PrivateKey) *Keypair {
	return &Keypair{
		private:      private,
		uncompressed: private.PublicKey().Bytes(),
	}
}

// PublicKeyBytes returns the canonical 65-byte uncompressed public key
// encoding: 0x04 || X (32 bytes BE) || Y (32 bytes BE).
func (k *Keypair) PublicKeyBytes() []byte {
	out := make([]byte, UncompressedPointSize)
	copy(out, k.uncompressed)
	return out
}

// PublicKeyB64 returns the uncompressed public key as unpadded base64url,
// the form exchanged with application servers ("p256dh").
func (k *Keypair) PublicKeyB64() string {
	return ToBase64URL(k.uncompressed)
}

// ECDH computes the shared secret with a peer's uncompressed public key:
// the X coordinate of the shared point, 32 bytes.
func (k *Keypair) ECDH(peerUncompressed []byte) ([]byte, error) {
	peer, err := ecdh.P256().NewPublicKey(peerUncompressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	secret, err := k.private.ECDH(peer)
	if err != nil {
		return nil, fmt.Errorf("ecdh: %w", err)
	}
	return secret, nil
}

// ExportRecord serializes the keypair into its persisted JWK-shaped form.
func (k *Keypair) ExportRecord() *KeyRecord {
	return &KeyRecord{
		Kty: "EC",
		Crv: "P-256",
		X:   ToBase64URL(k.uncompressed[1 : 1+CoordinateSize]),
		Y:   ToBase64URL(k.uncompressed[1+CoordinateSize:]),
		D:   ToBase64URL(k.private.Bytes()),
	}
}

// ImportRecord reconstructs a keypair from a persisted record. The
// public point is re-derived from the stored scalar; the record's x and
// y are then cross-checked against the derived point so that corrupted
// coordinates surface as ErrKeyImport instead of being silently trusted.
func ImportRecord(record *KeyRecord) (*Keypair, error) {
	if record.Kty != "EC" {
		return nil, fmt.Errorf("%w: unsupported key type %q", ErrKeyImport, record.Kty)
	}
	if record.Crv != "P-256" {
		return nil, fmt.Errorf("%w: unsupported curve %q", ErrKeyImport, record.Crv)
	}

	d, err := FromBase64URL(record.D)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid scalar encoding", ErrKeyImport)
	}
	if len(d) != ScalarSize {
		return nil, fmt.Errorf("%w: scalar is %d bytes, want %d", ErrKeyImport, len(d), ScalarSize)
	}

	private, err := ecdh.P256().NewPrivateKey(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyImport, err)
	}
	kp := newKeypair(private)

	x, err := FromBase64URL(record.X)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid x encoding", ErrKeyImport)
	}
	y, err := FromBase64URL(record.Y)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid y encoding", ErrKeyImport)
	}
	if len(x) != CoordinateSize || len(y) != CoordinateSize {
		return nil, fmt.Errorf("%w: coordinates are %d/%d bytes, want %d", ErrKeyImport, len(x), len(y), CoordinateSize)
	}
	if !bytes.Equal(x, kp.uncompressed[1:1+CoordinateSize]) ||
		!bytes.Equal(y, kp.uncompressed[1+CoordinateSize:]) {
		return nil, fmt.Errorf("%w: stored coordinates do not match point derived from scalar", ErrKeyImport)
	}

	return kp, nil
}
