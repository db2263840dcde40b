package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// SharedKeys is the per-message content-encryption key material derived
// for a single push record. It is never persisted; its lifetime is one
// decrypt operation.
type SharedKeys struct {
	// ContentEncryptionKey is the 16-byte AES-128-GCM key.
	ContentEncryptionKey []byte
	// Nonce is the 12-byte GCM nonce.
	Nonce []byte
}

// deriveKey runs one HKDF-SHA-256 extract+expand to the requested length.
func deriveKey(length int, secret, salt, info []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("hkdf expand: %w", err)
	}
	return key, nil
}

// DeriveSharedKeys runs the RFC 8291 two-stage HKDF chain.
//
// Stage 1 extracts with the auth secret as salt and the ECDH shared
// secret as input key material, then expands 32 bytes of IKM under
// "WebPush: info" || 0x00 || receiver key || sender key. The receiver
// key comes first; swapping the order derives a wrong key with no error.
//
// Stage 2 extracts with the message salt and expands the 16-byte
// content-encryption key and 12-byte nonce under their respective
// "Content-Encoding" info strings.
func DeriveSharedKeys(receiver *Keypair, authSecret, senderPublicKey, salt []byte) (*SharedKeys, error) {
	if len(authSecret) != AuthSecretSize {
		return nil, fmt.Errorf("%w: auth secret is %d bytes, want %d", ErrInvalidSize, len(authSecret), AuthSecretSize)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt is %d bytes, want %d", ErrInvalidSize, len(salt), SaltSize)
	}

	ecdhSecret, err := receiver.ECDH(senderPublicKey)
	if err != nil {
		return nil, err
	}

	keyInfo := make([]byte, 0, len(webPushInfo)+2*UncompressedPointSize)
	keyInfo = append(keyInfo, webPushInfo...)
	keyInfo = append(keyInfo, receiver.uncompressed...)
	keyInfo = append(keyInfo, senderPublicKey...)

	ikm, err := deriveKey(IKMSize, ecdhSecret, authSecret, keyInfo)
	if err != nil {
		return nil, err
	}

	contentEncryptionKey, err := deriveKey(AESKeySize, ikm, salt, contentEncryptionKeyInfo)
	if err != nil {
		return nil, err
	}

	nonce, err := deriveKey(AESNonceSize, ikm, salt, nonceInfo)
	if err != nil {
		return nil, err
	}

	return &SharedKeys{
		ContentEncryptionKey: contentEncryptionKey,
		Nonce:                nonce,
	}, nil
}
