package deletereminder

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/trigger"
	uow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
)

type Input struct {
	UserID     user.ID
	ReminderID reminder.ID
}

func (i Input) RegisteredUserID() user.ID {
	return i.UserID
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
	}
}

// Run deletes the caller's pending reminder and disarms its trigger.
// A reminder owned by somebody else is reported as non-existent.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	if err := uow.Reminders().Lock(ctx, input.ReminderID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	rem, err := uow.Reminders().GetByID(ctx, input.ReminderID)
	if err != nil {
		if !errors.Is(err, reminder.ErrReminderDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}
	if rem.CreatedBy != input.UserID || !rem.IsActive() {
		return result, reminder.ErrReminderDoesNotExist
	}

	if err := uow.Reminders().Delete(ctx, rem.ID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if rem.TriggerID.IsPresent {
		err := s.scheduler.Cancel(ctx, rem.TriggerID.Value)
		if err != nil && !errors.Is(err, trigger.ErrTriggerDoesNotExist) {
			s.log.Warning(
				ctx,
				"Reminder deleted but its trigger could not be disarmed.",
				logging.Entry("reminderID", rem.ID),
				logging.Entry("triggerID", rem.TriggerID.Value),
				logging.Entry("err", err),
			)
		}
	}

	s.log.Info(
		ctx,
		"Reminder successfully deleted.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("userID", rem.CreatedBy),
	)
	result.Reminder = rem
	return result, nil
}
