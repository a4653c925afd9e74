package interfaces

// ISignatureVerifier authenticates provider notifications.
//
// Verify receives the raw body exactly as read from the wire and the signature
// header value. It returns nil only for an authentic, fresh notification.
type ISignatureVerifier interface {
	Verify(rawBody []byte, header string) error
}
