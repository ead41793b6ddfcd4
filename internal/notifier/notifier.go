package notifier

import "context"

// Notifier delivers a rendered message to a recipient. Checkout uses it
// fire-and-forget: delivery failures are logged by the caller and never
// surface as checkout errors.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// Nop discards every notification. Used in tests and when no transport is
// configured.
type Nop struct{}

func (Nop) Notify(ctx context.Context, recipient, subject, body string) error {
	return nil
}
