package interfaces

import "context"

// Mailer delivers outbound mail. Fire-and-forget from the core's
// perspective: failures surface as a generic delivery error and are not
// retried.
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}
