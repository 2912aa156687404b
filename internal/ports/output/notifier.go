package output

import "context"

// Message is an already-composed notification. Opaque to the dispatcher.
type Message struct {
	Subject string
	Body    string
}

// Notifier delivers one message to one contact address. Exactly one attempt
// per call: no retry, no backoff.
type Notifier interface {
	Send(ctx context.Context, contact string, msg Message) error
}
