// Command testhelper is the SDK side of the cross-implementation test
// harness: it generates subscriptions, decrypts records produced by
// other implementations, and verifies VAPID headers, speaking JSON on
// stdin/stdout so any driver can script it.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	pushrelay "github.com/pushrelay/client-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: testhelper <command> [args]")
	}

	stateDir := os.Getenv("PUSHRELAY_STATE_DIR")
	if stateDir == "" {
		stateDir = "."
	}
	store, err := newFileStore(stateDir)
	if err != nil {
		fatal("open state dir: %v", err)
	}

	opts := []pushrelay.Option{pushrelay.WithStorage(store)}
	if trusted := os.Getenv("PUSHRELAY_TRUSTED_SENDER"); trusted != "" {
		opts = append(opts, pushrelay.WithTrustedSender(trusted))
	}
	client, err := pushrelay.New(opts...)
	if err != nil {
		fatal("create client: %v", err)
	}

	switch os.Args[1] {
	case "generate":
		if len(os.Args) < 4 {
			fatal("usage: testhelper generate <location> <endpoint>")
		}
		err = generate(client, os.Stdout, os.Args[2], os.Args[3])
	case "decrypt":
		if len(os.Args) < 3 {
			fatal("usage: testhelper decrypt <location>")
		}
		err = decrypt(client, os.Stdin, os.Stdout, os.Args[2])
	case "verify-vapid":
		if len(os.Args) < 3 {
			fatal("usage: testhelper verify-vapid <publicKey>")
		}
		err = verifyVAPID(os.Stdin, os.Stdout, os.Args[2])
	default:
		fatal("unknown command: %s", os.Args[1])
	}
	if err != nil {
		fatal("%s: %v", os.Args[1], err)
	}
}

// generate creates a subscription, persists its key material under
// location, and prints the public registration keys.
func generate(client *pushrelay.Client, out io.Writer, location, endpoint string) error {
	sub, err := client.NewSubscription(endpoint)
	if err != nil {
		return err
	}
	if err := client.SaveSubscription(location, sub); err != nil {
		return err
	}

	keys := sub.Keys()
	return json.NewEncoder(out).Encode(map[string]string{
		"endpoint": sub.Endpoint(),
		"p256dh":   keys.P256dh,
		"auth":     keys.Auth,
	})
}

// decryptInput is the message document a driver pipes on stdin. Record
// is unpadded base64url of the raw aes128gcm body.
type decryptInput struct {
	ID            string `json:"id,omitempty"`
	Record        string `json:"record"`
	Authorization string `json:"authorization,omitempty"`
	SenderKey     string `json:"senderKey,omitempty"`
}

func decrypt(client *pushrelay.Client, in io.Reader, out io.Writer, location string) error {
	var input decryptInput
	if err := json.NewDecoder(in).Decode(&input); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	sub, err := client.LoadSubscription(location)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("no subscription stored at %q", location)
	}

	record, err := base64.RawURLEncoding.DecodeString(input.Record)
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	decrypted, err := sub.Open(&pushrelay.Message{
		ID:            input.ID,
		Record:        record,
		Authorization: input.Authorization,
		SenderKey:     input.SenderKey,
	})
	if err != nil {
		return err
	}

	return json.NewEncoder(out).Encode(map[string]string{
		"id":   decrypted.ID,
		"body": string(decrypted.Body),
	})
}

func verifyVAPID(in io.Reader, out io.Writer, publicKey string) error {
	header, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	valid, err := pushrelay.VerifyVAPID(strings.TrimSpace(string(header)), publicKey)
	if err != nil {
		return err
	}
	return json.NewEncoder(out).Encode(map[string]bool{"valid": valid})
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
