package reminder

import (
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/user"
	"time"
)

type ID int64

// TriggerID is a weak back-reference to the scheduler's persisted trigger
// record. The scheduler owns the trigger; the reminder only remembers its id
// so cancellation can disarm it.
type TriggerID int64

type Reminder struct {
	ID        ID
	CreatedBy user.ID
	Body      string
	Fires     FireSpec
	Status    Status
	TriggerID c.Optional[TriggerID]
	CreatedAt time.Time
}

func (r *Reminder) Validate() error {
	if err := r.Fires.Validate(); err != nil {
		return err
	}
	if r.Status == StatusUnknown {
		return e.NewInvalidStateError("reminder status is not set")
	}
	if r.Status == StatusFired && r.Fires.IsRecurring() {
		return e.NewInvalidStateError("recurring reminders never reach the fired status")
	}
	return nil
}

// IsActive reports whether the reminder still has an occurrence ahead of it.
func (r *Reminder) IsActive() bool {
	return r.Status == StatusPending
}
