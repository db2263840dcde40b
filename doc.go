// Package pushrelay provides a Go client SDK for the user-agent side of
// the Web Push protocol: it owns subscription key material, decrypts
// incoming aes128gcm records (RFC 8291 / RFC 8188), and verifies VAPID
// sender identity (RFC 8292).
//
// Basic usage:
//
//	client, err := pushrelay.New(
//	    pushrelay.WithTrustedSender(serverVAPIDKey),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create a subscription and hand its keys to the application server.
//	sub, err := client.NewSubscription(endpoint)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("p256dh:", sub.Keys().P256dh)
//	fmt.Println("auth:", sub.Keys().Auth)
//
//	// Open an incoming message: VAPID verification, then decryption.
//	decrypted, err := sub.Open(&pushrelay.Message{
//	    Record:        body,
//	    Authorization: authHeader,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(decrypted.Body))
//
// Subscriptions persist through any [storage.Store] implementation via
// [Client.SaveSubscription] and [Client.LoadSubscription]; the private
// key travels as a JWK-shaped record and is re-validated on load.
package pushrelay
