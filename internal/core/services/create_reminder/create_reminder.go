package createreminder

import (
	"context"
	"fmt"
	"remindbot/internal/core/domain/datetime"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	uow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	UserID user.ID
	Body   string
	Fires  reminder.FireSpec
}

func (i Input) Validate(now time.Time) error {
	if err := i.Fires.Validate(); err != nil {
		return err
	}
	if i.Fires.Kind() == reminder.KindOneShot && !i.Fires.At().After(now) {
		return datetime.ErrInvalidDate
	}
	return nil
}

func (i Input) RegisteredUserID() user.ID {
	return i.UserID
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("create-reminder::%d", i.UserID)
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log                logging.Logger
	unitOfWork         uow.UnitOfWork
	reminderRepository reminder.ReminderRepository
	scheduler          reminder.Scheduler
	now                func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	reminderRepository reminder.ReminderRepository,
	scheduler reminder.Scheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		unitOfWork:         unitOfWork,
		reminderRepository: reminderRepository,
		scheduler:          scheduler,
		now:                now,
	}
}

// Run persists the reminder first and arms the trigger second, so a trigger
// can never reference a reminder the store does not know about.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = input.Validate(s.now())
	if err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	createdReminder, err := uow.Reminders().Create(
		ctx,
		reminder.CreateInput{
			CreatedBy: input.UserID,
			Body:      input.Body,
			Fires:     input.Fires,
			Status:    reminder.StatusPending,
			CreatedAt: s.now(),
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	triggerID, err := s.scheduler.Arm(ctx, createdReminder)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input), logging.Entry("reminder", createdReminder))
		return result, err
	}
	if err := s.reminderRepository.SetTrigger(ctx, createdReminder.ID, triggerID); err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("reminderID", createdReminder.ID),
			logging.Entry("triggerID", triggerID),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminderID", createdReminder.ID),
		logging.Entry("userID", createdReminder.CreatedBy),
		logging.Entry("fires", createdReminder.Fires.String()),
		logging.Entry("triggerID", triggerID),
	)

	createdReminder.TriggerID.Value = triggerID
	createdReminder.TriggerID.IsPresent = true
	result.Reminder = createdReminder
	return result, nil
}
