package services

import (
	"context"
	"remindbot/internal/app/deps"
	drl "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	createreminder "remindbot/internal/core/services/create_reminder"
	deletereminder "remindbot/internal/core/services/delete_reminder"
	listuserreminders "remindbot/internal/core/services/list_user_reminders"
	ratelimiting "remindbot/internal/core/services/rate_limiting"
	registeruser "remindbot/internal/core/services/register_user"
	"remindbot/internal/core/services/registration"
	sendreminder "remindbot/internal/core/services/send_reminder"
	"remindbot/internal/implementations/scheduler"
)

type Services struct {
	RegisterUser      services.Service[registeruser.Input, registeruser.Result]
	CreateReminder    services.Service[createreminder.Input, createreminder.Result]
	DeleteReminder    services.Service[deletereminder.Input, deletereminder.Result]
	ListUserReminders services.Service[listuserreminders.Input, listuserreminders.Result]
	SendReminder      services.Service[sendreminder.Input, sendreminder.Result]

	Scheduler *scheduler.DurableScheduler
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SendReminder = sendreminder.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.ReminderSender,
	)
	s.Scheduler = scheduler.New(
		deps.Logger,
		deps.TriggerRepository,
		func(ctx context.Context, triggerID reminder.TriggerID, reminderID reminder.ID, late bool) {
			s.SendReminder.Run(ctx, sendreminder.Input{
				TriggerID:  triggerID,
				ReminderID: reminderID,
				Late:       late,
			})
		},
		deps.Now,
		deps.Location,
	)

	s.RegisterUser = registeruser.New(
		deps.Logger,
		deps.UserRepository,
		deps.Now,
	)
	s.CreateReminder = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: deps.Config.CreateReminderLimitPerMinute},
		registration.WithRegistration(
			deps.UserRepository,
			createreminder.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.ReminderRepository,
				s.Scheduler,
				deps.Now,
			),
		),
	)
	s.DeleteReminder = registration.WithRegistration(
		deps.UserRepository,
		deletereminder.New(
			deps.Logger,
			deps.UnitOfWork,
			s.Scheduler,
		),
	)
	s.ListUserReminders = registration.WithRegistration(
		deps.UserRepository,
		listuserreminders.New(
			deps.Logger,
			deps.ReminderRepository,
		),
	)

	return s
}
