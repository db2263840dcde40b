package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// DecryptAESGCM decrypts data using AES-128-GCM, treating the final 16
// bytes of ciphertext as the authentication tag. Any tag mismatch —
// wrong key, wrong nonce, or tampered ciphertext — returns
// ErrAuthenticationFailed with no partial plaintext, indistinguishable
// from any other decryption failure.
func DecryptAESGCM(key, nonce, ciphertext []byte) ([]byte, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}
	if len(nonce) != AESNonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), AESNonceSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
