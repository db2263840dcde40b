package crypto

import (
	"fmt"
)

// SharedKeysForRecord parses the record header and derives the message
// keys for it. When the header carries a non-empty key id it is taken as
// the sender's uncompressed public key; otherwise senderPublicKey, the
// key supplied out of band by the caller, is used.
func SharedKeysForRecord(receiver *Keypair, authSecret, senderPublicKey, record []byte) (*SharedKeys, error) {
	envelope, err := ParseEnvelope(record)
	if err != nil {
		return nil, err
	}

	sender := envelope.KeyID
	if len(sender) == 0 {
		sender = senderPublicKey
	}

	return DeriveSharedKeys(receiver, authSecret, sender, envelope.Salt)
}

// Decrypt recovers the plaintext of a complete aes128gcm push record.
//
// The process:
//  1. Parse the envelope header for salt and sender key.
//  2. Derive the content-encryption key and nonce (two-stage HKDF).
//  3. Open the AES-128-GCM ciphertext.
//  4. Strip the RFC 8188 padding delimiter and trailing zero padding.
func Decrypt(receiver *Keypair, authSecret, senderPublicKey, record []byte) ([]byte, error) {
	envelope, err := ParseEnvelope(record)
	if err != nil {
		return nil, err
	}

	sender := envelope.KeyID
	if len(sender) == 0 {
		sender = senderPublicKey
	}

	keys, err := DeriveSharedKeys(receiver, authSecret, sender, envelope.Salt)
	if err != nil {
		return nil, err
	}

	padded, err := DecryptAESGCM(keys.ContentEncryptionKey, keys.Nonce, envelope.Ciphertext)
	if err != nil {
		return nil, err
	}

	return stripPadding(padded)
}

// stripPadding removes the RFC 8188 record padding: the plaintext is
// followed by a delimiter byte (0x02 for the final record, 0x01
// otherwise) and any number of zero bytes.
func stripPadding(padded []byte) ([]byte, error) {
	i := len(padded) - 1
	for i >= 0 && padded[i] == 0 {
		i--
	}
	if i < 0 || (padded[i] != 0x01 && padded[i] != 0x02) {
		return nil, fmt.Errorf("%w: missing padding delimiter", ErrMalformedEnvelope)
	}
	return padded[:i], nil
}
