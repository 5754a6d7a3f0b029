package reminder

import (
	"context"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	CreatedBy user.ID
	Body      string
	Fires     FireSpec
	Status    Status
	CreatedAt time.Time
}

type ReadOptions struct {
	CreatedByEquals c.Optional[user.ID]
	StatusEquals    c.Optional[Status]
	Limit           c.Optional[uint]
}

type ReminderRepository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	// Lock takes a row lock; it only has an effect inside a transaction.
	Lock(ctx context.Context, id ID) error
	GetByID(ctx context.Context, id ID) (Reminder, error)
	// Read returns reminders matching the options ordered by id ascending.
	Read(ctx context.Context, options ReadOptions) ([]Reminder, error)
	SetTrigger(ctx context.Context, id ID, triggerID TriggerID) error
	SetStatus(ctx context.Context, id ID, status Status) error
	Delete(ctx context.Context, id ID) error
}
