// Package trigger defines the scheduler's own persisted records. The trigger
// table is independent from the reminder table: the scheduler reloads it at
// startup to rebuild timers, and it never stores reminder content — only the
// fire spec and the reminder id to pass back to the delivery callback.
package trigger

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/reminder"
	"time"
)

var ErrTriggerDoesNotExist = errors.New("trigger does not exist")

type Trigger struct {
	ID         reminder.TriggerID
	ReminderID reminder.ID
	Fires      reminder.FireSpec
	CreatedAt  time.Time
}

type CreateInput struct {
	ReminderID reminder.ID
	Fires      reminder.FireSpec
	CreatedAt  time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Trigger, error)
	// ReadAll returns every persisted trigger ordered by id ascending.
	ReadAll(ctx context.Context) ([]Trigger, error)
	Delete(ctx context.Context, id reminder.TriggerID) error
}
