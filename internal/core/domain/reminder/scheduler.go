package reminder

import "context"

// Scheduler arms durable triggers for reminders. Arm persists a trigger
// record of its own before any in-memory timer exists, so a restart can
// rebuild the timer from storage.
type Scheduler interface {
	Arm(ctx context.Context, r Reminder) (TriggerID, error)
	Cancel(ctx context.Context, triggerID TriggerID) error
}
