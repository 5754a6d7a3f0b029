package reminder

import (
	"context"
	c "remindbot/internal/core/domain/common"
	"sync"
)

type FakeReminderRepository struct {
	Reminders   []Reminder
	NextID      ID
	CreateError error
	GetError    error
	ReadError   error
	ReadWith    []ReadOptions
	UpdateError error
	DeleteError error
	Deleted     []ID
	lock        sync.Mutex
}

func NewFakeReminderRepository() *FakeReminderRepository {
	return &FakeReminderRepository{NextID: 1}
}

func (r *FakeReminderRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem = Reminder{
		ID:        r.NextID,
		CreatedBy: input.CreatedBy,
		Body:      input.Body,
		Fires:     input.Fires,
		Status:    input.Status,
		CreatedAt: input.CreatedAt,
	}
	r.NextID++
	r.Reminders = append(r.Reminders, rem)
	return rem, nil
}

func (r *FakeReminderRepository) Lock(ctx context.Context, id ID) error {
	return nil
}

func (r *FakeReminderRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.GetError != nil {
		return rem, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Reminders {
		if existing.ID == id {
			return existing, nil
		}
	}
	return rem, ErrReminderDoesNotExist
}

func (r *FakeReminderRepository) Read(ctx context.Context, options ReadOptions) ([]Reminder, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ReadWith = append(r.ReadWith, options)
	reminders := make([]Reminder, 0, len(r.Reminders))
	for _, rem := range r.Reminders {
		if options.CreatedByEquals.IsPresent && rem.CreatedBy != options.CreatedByEquals.Value {
			continue
		}
		if options.StatusEquals.IsPresent && rem.Status != options.StatusEquals.Value {
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (r *FakeReminderRepository) SetTrigger(ctx context.Context, id ID, triggerID TriggerID) error {
	if r.UpdateError != nil {
		return r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, rem := range r.Reminders {
		if rem.ID == id {
			r.Reminders[ix].TriggerID = c.NewOptional(triggerID, true)
			return nil
		}
	}
	return ErrReminderDoesNotExist
}

func (r *FakeReminderRepository) SetStatus(ctx context.Context, id ID, status Status) error {
	if r.UpdateError != nil {
		return r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, rem := range r.Reminders {
		if rem.ID == id {
			r.Reminders[ix].Status = status
			return nil
		}
	}
	return ErrReminderDoesNotExist
}

func (r *FakeReminderRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, rem := range r.Reminders {
		if rem.ID == id {
			r.Reminders = append(r.Reminders[:ix], r.Reminders[ix+1:]...)
			r.Deleted = append(r.Deleted, id)
			return nil
		}
	}
	return ErrReminderDoesNotExist
}

type FakeScheduler struct {
	Armed         []Reminder
	Canceled      []TriggerID
	NextTriggerID TriggerID
	ArmError      error
	CancelError   error
	lock          sync.Mutex
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{NextTriggerID: 100}
}

func (s *FakeScheduler) Arm(ctx context.Context, r Reminder) (TriggerID, error) {
	if s.ArmError != nil {
		return 0, s.ArmError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Armed = append(s.Armed, r)
	id := s.NextTriggerID
	s.NextTriggerID++
	return id, nil
}

func (s *FakeScheduler) Cancel(ctx context.Context, triggerID TriggerID) error {
	if s.CancelError != nil {
		return s.CancelError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Canceled = append(s.Canceled, triggerID)
	return nil
}

type FakeSender struct {
	Sent      []Reminder
	SentLate  []bool
	SendError error
	lock      sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) SendReminder(ctx context.Context, r Reminder, late bool) error {
	if s.SendError != nil {
		return s.SendError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, r)
	s.SentLate = append(s.SentLate, late)
	return nil
}
