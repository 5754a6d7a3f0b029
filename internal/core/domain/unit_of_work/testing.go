package uow

import (
	"context"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository     *user.FakeUserRepository
	ReminderRepository *reminder.FakeReminderRepository
	WasRollbackCalled  bool
	WasCommitCalled    bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	reminderRepository *reminder.FakeReminderRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:     userRepository,
		ReminderRepository: reminderRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Reminders() reminder.ReminderRepository {
	return c.ReminderRepository
}

type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginError error
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeUserRepository(),
			reminder.NewFakeReminderRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, u.BeginError
	}
	return u.Context, nil
}

func (u *FakeUnitOfWork) Users() *user.FakeUserRepository {
	return u.Context.UserRepository
}

func (u *FakeUnitOfWork) Reminders() *reminder.FakeReminderRepository {
	return u.Context.ReminderRepository
}
