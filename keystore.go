package pushrelay

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pushrelay/client-go/events"
	"github.com/pushrelay/client-go/internal/crypto"
	"github.com/pushrelay/client-go/storage"
)

// subscriptionRecord is the JSON document persisted for one
// subscription. WARNING: it contains private key material - the
// storage backend is trusted with it.
type subscriptionRecord struct {
	// Endpoint is the push service delivery URL. Required.
	Endpoint string `json:"endpoint"`
	// AuthSecret is the 16-byte auth secret, base64url.
	AuthSecret string `json:"authSecret"`
	// Key is the subscription keypair in JWK-shaped form.
	Key *crypto.KeyRecord `json:"key"`
}

// validate checks the record's structure before any key import.
func (r *subscriptionRecord) validate() error {
	if r.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", ErrKeyImport)
	}
	if r.Key == nil {
		return fmt.Errorf("%w: key is required", ErrKeyImport)
	}
	authSecret, err := crypto.FromBase64URL(r.AuthSecret)
	if err != nil {
		return fmt.Errorf("%w: invalid auth secret encoding", ErrKeyImport)
	}
	if len(authSecret) != crypto.AuthSecretSize {
		return fmt.Errorf("%w: auth secret is %d bytes, want %d", ErrKeyImport, len(authSecret), crypto.AuthSecretSize)
	}
	return nil
}

// SaveSubscription serializes sub's key material and writes it to the
// client's store at location, overwriting any existing record.
func (c *Client) SaveSubscription(location string, sub *Subscription) error {
	if sub == nil || sub.keypair == nil {
		return fmt.Errorf("%w: no key material to persist", ErrInvalidSubscription)
	}

	record := subscriptionRecord{
		Endpoint:   sub.endpoint,
		AuthSecret: crypto.ToBase64URL(sub.authSecret),
		Key:        sub.keypair.ExportRecord(),
	}

	data, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("encode subscription record: %w", err)
	}

	if err := c.store.Put(location, data); err != nil {
		return fmt.Errorf("write subscription record: %w", err)
	}
	return nil
}

// LoadSubscription reads a persisted subscription from the client's
// store. Absence is not an error: when nothing is stored at location it
// returns (nil, nil). A present but malformed record fails with
// ErrKeyImport; the keypair's public point is re-derived from the
// stored scalar during import, so a corrupted record cannot smuggle in
// mismatched coordinates.
func (c *Client) LoadSubscription(location string) (*Subscription, error) {
	data, err := c.store.Get(location)
	if errors.Is(err, storage.ErrDataNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read subscription record: %w", err)
	}

	var record subscriptionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: invalid json", ErrKeyImport)
	}
	if err := record.validate(); err != nil {
		return nil, err
	}

	keypair, err := crypto.ImportRecord(record.Key)
	if err != nil {
		return nil, err
	}

	// validate() already proved the auth secret decodes.
	authSecret, _ := crypto.FromBase64URL(record.AuthSecret)

	return &Subscription{
		endpoint:      record.Endpoint,
		keypair:       keypair,
		authSecret:    authSecret,
		trustedSender: c.trustedSender,
		bus:           events.NewDispatcher[*DecryptedMessage](),
	}, nil
}
