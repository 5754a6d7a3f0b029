package reminder

import "context"

// Sender delivers a reminder to its owner over the external transport.
// Delivery is best-effort: a returned error means the single attempt failed
// and no retry will happen.
type Sender interface {
	SendReminder(ctx context.Context, r Reminder, late bool) error
}
