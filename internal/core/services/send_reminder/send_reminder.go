package sendreminder

import (
	"context"
	"errors"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	uow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/services"
)

type Input struct {
	TriggerID  reminder.TriggerID
	ReminderID reminder.ID
	// Late marks a one-shot whose instant elapsed while the process was down.
	Late bool
}

type Result struct {
	Delivered bool
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	sender     reminder.Sender
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	sender reminder.Sender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		sender:     sender,
	}
}

// Run delivers a fired reminder. The row lock is held across the send, so a
// concurrent delete cannot race a delivery of the same reminder. A reminder
// that is gone or no longer pending is skipped without error; the trigger
// simply outlived it.
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
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			s.log.Info(
				ctx,
				"Trigger fired for a missing reminder, skipping.",
				logging.Entry("triggerID", input.TriggerID),
				logging.Entry("reminderID", input.ReminderID),
			)
			return result, nil
		}
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if !rem.IsActive() {
		s.log.Info(
			ctx,
			"Trigger fired for an inactive reminder, skipping.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("status", rem.Status),
		)
		return result, nil
	}

	if sendErr := s.sender.SendReminder(ctx, rem, input.Late); sendErr != nil {
		logging.Error(
			ctx,
			s.log,
			sendErr,
			logging.Entry("reminderID", rem.ID),
			logging.Entry("userID", rem.CreatedBy),
		)
		if !rem.Fires.IsRecurring() {
			if err := uow.Reminders().SetStatus(ctx, rem.ID, reminder.StatusFired); err != nil {
				logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
				return result, err
			}
			if err := uow.Commit(ctx); err != nil {
				logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
				return result, err
			}
		}
		return result, nil
	}

	if !rem.Fires.IsRecurring() {
		if err := uow.Reminders().Delete(ctx, rem.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			return result, err
		}
		if err := uow.Commit(ctx); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			return result, err
		}
	}

	s.log.Info(
		ctx,
		"Reminder successfully delivered.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("userID", rem.CreatedBy),
		logging.Entry("late", input.Late),
	)
	result.Delivered = true
	return result, nil
}
