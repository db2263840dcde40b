package pushrelay

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pushrelay/client-go/internal/crypto"
)

// sealRecordFor plays the application server against sub: it generates
// a per-message sender keypair, derives the shared keys, and seals an
// aes128gcm record carrying plaintext with the sender key in the
// record's key id.
func sealRecordFor(t *testing.T, sub *Subscription, plaintext []byte) []byte {
	t.Helper()

	sender, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}
	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		t.Fatalf("RandomBytes() error = %v", err)
	}

	keys, err := crypto.DeriveSharedKeys(sub.keypair, sub.authSecret, sender.PublicKeyBytes(), salt)
	if err != nil {
		t.Fatalf("DeriveSharedKeys() error = %v", err)
	}

	block, err := aes.NewCipher(keys.ContentEncryptionKey)
	if err != nil {
		t.Fatalf("aes.NewCipher() error = %v", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatalf("cipher.NewGCM() error = %v", err)
	}

	padded := append(append([]byte{}, plaintext...), 0x02)
	ciphertext := gcm.Seal(nil, keys.Nonce, padded, nil)

	senderKey := sender.PublicKeyBytes()
	record := make([]byte, 0, 21+len(senderKey)+len(ciphertext))
	record = append(record, salt...)
	record = binary.BigEndian.AppendUint32(record, 4096)
	record = append(record, byte(len(senderKey)))
	record = append(record, senderKey...)
	record = append(record, ciphertext...)
	return record
}

// mintVAPIDHeader signs a fresh VAPID assertion, returning the header
// and the signer's public key in base64url.
func mintVAPIDHeader(t *testing.T) (header, publicKey string) {
	t.Helper()

	private, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey() error = %v", err)
	}
	publicKeyBytes, err := uncompressedPublicKeyBytes(&private.PublicKey)
	if err != nil {
		t.Fatalf("PublicKey.Bytes() error = %v", err)
	}
	publicKey = crypto.ToBase64URL(publicKeyBytes)

	headerJSON, err := json.Marshal(map[string]string{"typ": "JWT", "alg": "ES256"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	payloadJSON, err := json.Marshal(map[string]any{
		"aud": "https://push.example.net",
		"exp": time.Now().Add(12 * time.Hour).Unix(),
		"sub": "mailto:ops@example.com",
	})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}

	signingString := crypto.ToBase64URL(headerJSON) + "." + crypto.ToBase64URL(payloadJSON)
	signature, err := jwt.SigningMethodES256.Sign(signingString, private)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	header = fmt.Sprintf("vapid t=%s.%s, k=%s", signingString, crypto.ToBase64URL(signature), publicKey)
	return header, publicKey
}

func newTestSubscription(t *testing.T, opts ...Option) *Subscription {
	t.Helper()

	client, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sub, err := client.NewSubscription("https://push.example.net/send/abc123")
	if err != nil {
		t.Fatalf("NewSubscription() error = %v", err)
	}
	return sub
}

// uncompressedPublicKeyBytes encodes pub as an uncompressed point, the
// format ecdsa.PublicKey.Bytes produces on newer Go versions.
func uncompressedPublicKeyBytes(pub *ecdsa.PublicKey) ([]byte, error) {
	key, err := pub.ECDH()
	if err != nil {
		return nil, err
	}
	return key.Bytes(), nil
}
