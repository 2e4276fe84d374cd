package model

// Receipt is a payment-proof file resolved from the blob store.
type Receipt struct {
	Data        []byte
	Filename    string
	ContentType string
}
