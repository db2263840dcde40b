package pushrelay

import "time"

// Message is one encrypted push message as delivered by a push service.
type Message struct {
	// ID identifies the message; when empty, Open assigns a random one.
	ID string
	// Record is the raw aes128gcm request body.
	Record []byte
	// Authorization is the `vapid t=..., k=...` header, when present.
	Authorization string
	// SenderKey optionally carries the application server's public key
	// (base64url uncompressed point) for records whose header has no key
	// id. The record's own key id always wins when present.
	SenderKey string
	// ReceivedAt is when the push service delivered the message.
	ReceivedAt time.Time
}

// DecryptedMessage is the result of opening a Message.
type DecryptedMessage struct {
	// ID is the message identifier.
	ID string
	// Body is the recovered plaintext.
	Body []byte
	// ReceivedAt is when the message was received.
	ReceivedAt time.Time
}
