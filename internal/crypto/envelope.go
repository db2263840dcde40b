package crypto

import (
	"encoding/binary"
	"fmt"
)

// envelopeHeaderSize is the fixed header floor before the variable key id:
// salt (16) || record size (4, BE uint32) || key id length (1).
const envelopeHeaderSize = SaltSize + 4 + 1

// Envelope is the parsed binary header of an aes128gcm push record. Its
// byte-slice fields are views into the record passed to ParseEnvelope.
type Envelope struct {
	// Salt is the 16-byte per-message salt.
	Salt []byte
	// RecordSize is the declared record size in bytes.
	RecordSize uint32
	// KeyID carries the sender's uncompressed public key for Web Push
	// records; empty when the sender key travels out of band. The parser
	// accepts any declared length.
	KeyID []byte
	// Ciphertext is the remainder of the record, including the trailing
	// 16-byte GCM tag.
	Ciphertext []byte
}

// ParseEnvelope parses the fixed binary header of an encrypted push record:
//
//	salt(16) || recordSize(4, BE) || keyIdLen(1) || keyId(keyIdLen) || ciphertext+tag
func ParseEnvelope(record []byte) (*Envelope, error) {
	if len(record) < envelopeHeaderSize {
		return nil, fmt.Errorf("%w: record is %d bytes, below the %d-byte header floor", ErrMalformedEnvelope, len(record), envelopeHeaderSize)
	}

	keyIDLen := int(record[envelopeHeaderSize-1])
	if len(record) < envelopeHeaderSize+keyIDLen {
		return nil, fmt.Errorf("%w: declared key id of %d bytes truncated", ErrMalformedEnvelope, keyIDLen)
	}

	ciphertext := record[envelopeHeaderSize+keyIDLen:]
	if len(ciphertext) < AESTagSize {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, shorter than the %d-byte tag", ErrMalformedEnvelope, len(ciphertext), AESTagSize)
	}

	return &Envelope{
		Salt:       record[:SaltSize],
		RecordSize: binary.BigEndian.Uint32(record[SaltSize : SaltSize+4]),
		KeyID:      record[envelopeHeaderSize : envelopeHeaderSize+keyIDLen],
		Ciphertext: ciphertext,
	}, nil
}
