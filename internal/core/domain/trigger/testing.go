package trigger

import (
	"context"
	"remindbot/internal/core/domain/reminder"
	"sync"
)

type FakeRepository struct {
	Triggers    []Trigger
	NextID      reminder.TriggerID
	CreateError error
	ReadError   error
	DeleteError error
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{NextID: 1}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (t Trigger, err error) {
	if r.CreateError != nil {
		return t, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t = Trigger{
		ID:         r.NextID,
		ReminderID: input.ReminderID,
		Fires:      input.Fires,
		CreatedAt:  input.CreatedAt,
	}
	r.NextID++
	r.Triggers = append(r.Triggers, t)
	return t, nil
}

func (r *FakeRepository) ReadAll(ctx context.Context) ([]Trigger, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	triggers := make([]Trigger, len(r.Triggers))
	copy(triggers, r.Triggers)
	return triggers, nil
}

func (r *FakeRepository) Delete(ctx context.Context, id reminder.TriggerID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Triggers {
		if t.ID == id {
			r.Triggers = append(r.Triggers[:ix], r.Triggers[ix+1:]...)
			return nil
		}
	}
	return ErrTriggerDoesNotExist
}
