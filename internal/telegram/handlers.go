package telegram

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"remindbot/internal/core/domain/datetime"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	createreminder "remindbot/internal/core/services/create_reminder"
	deletereminder "remindbot/internal/core/services/delete_reminder"
	listuserreminders "remindbot/internal/core/services/list_user_reminders"
	registeruser "remindbot/internal/core/services/register_user"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type Handlers struct {
	log               logging.Logger
	registerUser      services.Service[registeruser.Input, registeruser.Result]
	createReminder    services.Service[createreminder.Input, createreminder.Result]
	deleteReminder    services.Service[deletereminder.Input, deletereminder.Result]
	listUserReminders services.Service[listuserreminders.Input, listuserreminders.Result]
	sessions          *sessionStore
	now               func() time.Time
}

func NewHandlers(
	log logging.Logger,
	registerUser services.Service[registeruser.Input, registeruser.Result],
	createReminder services.Service[createreminder.Input, createreminder.Result],
	deleteReminder services.Service[deletereminder.Input, deletereminder.Result],
	listUserReminders services.Service[listuserreminders.Input, listuserreminders.Result],
	now func() time.Time,
) *Handlers {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if registerUser == nil {
		panic(e.NewNilArgumentError("registerUser"))
	}
	if createReminder == nil {
		panic(e.NewNilArgumentError("createReminder"))
	}
	if deleteReminder == nil {
		panic(e.NewNilArgumentError("deleteReminder"))
	}
	if listUserReminders == nil {
		panic(e.NewNilArgumentError("listUserReminders"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handlers{
		log:               log,
		registerUser:      registerUser,
		createReminder:    createReminder,
		deleteReminder:    deleteReminder,
		listUserReminders: listUserReminders,
		sessions:          newSessionStore(),
		now:               now,
	}
}

// Advance feeds one incoming message into the chat's flow and returns the
// reply. Commands interrupt whatever flow was in progress.
func (h *Handlers) Advance(ctx context.Context, userID user.ID, text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		return h.handleCommand(ctx, userID, text)
	}

	session := h.sessions.get(userID)
	switch session.Step {
	case stepRegisterName:
		return h.handleRegisterName(userID, session, text)
	case stepRegisterPhone:
		return h.handleRegisterPhone(ctx, userID, session, text)
	case stepRemindAt:
		return h.handleRemindAt(session, text)
	case stepRemindBody:
		return h.handleRemindBody(ctx, userID, session, text)
	case stepDailyAt:
		return h.handleDailyAt(session, text)
	case stepDailyBody:
		return h.handleDailyBody(ctx, userID, session, text)
	case stepDeleteID:
		return h.handleDeleteID(ctx, userID, text)
	default:
		return helpText
	}
}

func (h *Handlers) handleCommand(ctx context.Context, userID user.ID, command string) string {
	h.sessions.reset(userID)
	switch command {
	case "/start":
		return "Hi there 👋\n\n" + helpText
	case "/register":
		h.sessions.get(userID).Step = stepRegisterName
		return "What's your name?"
	case "/remind":
		h.sessions.get(userID).Step = stepRemindAt
		return "When? Send the date and time as YYYY-MM-DD HH:MM."
	case "/daily":
		h.sessions.get(userID).Step = stepDailyAt
		return "At what time every day? Send it as HH:MM."
	case "/list":
		return h.handleList(ctx, userID)
	case "/delete":
		h.sessions.get(userID).Step = stepDeleteID
		return "Send the number of the reminder to delete (see /list)."
	case "/cancel":
		return "Canceled."
	default:
		return helpText
	}
}

func (h *Handlers) handleRegisterName(userID user.ID, session *session, text string) string {
	if err := validation.Validate(text, validation.Required, validation.Length(1, 100)); err != nil {
		return "Please send a name up to 100 characters long."
	}
	session.Name = text
	session.Step = stepRegisterPhone
	return "And your phone number?"
}

func (h *Handlers) handleRegisterPhone(
	ctx context.Context,
	userID user.ID,
	session *session,
	text string,
) string {
	if err := validation.Validate(text, validation.Required, validation.Match(phonePattern)); err != nil {
		return "That does not look like a phone number. Try again, digits only, e.g. +998901234567."
	}
	result, err := h.registerUser.Run(ctx, registeruser.Input{
		UserID:      userID,
		Name:        session.Name,
		PhoneNumber: text,
	})
	h.sessions.reset(userID)
	if err != nil {
		logging.Error(ctx, h.log, err, logging.Entry("userID", userID))
		return somethingWentWrong
	}
	return fmt.Sprintf("You are all set, %s. Try /remind or /daily.", result.User.Name)
}

func (h *Handlers) handleRemindAt(session *session, text string) string {
	at, err := datetime.ParseDateTime(text, h.now())
	if err != nil {
		return "I could not read that. Send a future date and time as YYYY-MM-DD HH:MM."
	}
	session.At = at
	session.Step = stepRemindBody
	return "What should I remind you about?"
}

func (h *Handlers) handleRemindBody(
	ctx context.Context,
	userID user.ID,
	session *session,
	text string,
) string {
	if err := validation.Validate(text, validation.Required, validation.Length(1, 1000)); err != nil {
		return "Please send a reminder text up to 1000 characters long."
	}
	at := session.At
	result, err := h.createReminder.Run(ctx, createreminder.Input{
		UserID: userID,
		Body:   text,
		Fires:  reminder.NewOneShot(at),
	})
	h.sessions.reset(userID)
	if err != nil {
		return h.describeCreateError(ctx, err)
	}
	return fmt.Sprintf(
		"Got it. I will remind you %s (#%d).",
		result.Reminder.Fires,
		result.Reminder.ID,
	)
}

func (h *Handlers) handleDailyAt(session *session, text string) string {
	tod, err := datetime.ParseTimeOfDay(text)
	if err != nil {
		return "I could not read that. Send a time as HH:MM, e.g. 09:30."
	}
	session.TimeOfDay = tod
	session.Step = stepDailyBody
	return "What should I remind you about?"
}

func (h *Handlers) handleDailyBody(
	ctx context.Context,
	userID user.ID,
	session *session,
	text string,
) string {
	if err := validation.Validate(text, validation.Required, validation.Length(1, 1000)); err != nil {
		return "Please send a reminder text up to 1000 characters long."
	}
	tod := session.TimeOfDay
	result, err := h.createReminder.Run(ctx, createreminder.Input{
		UserID: userID,
		Body:   text,
		Fires:  reminder.NewDaily(tod),
	})
	h.sessions.reset(userID)
	if err != nil {
		return h.describeCreateError(ctx, err)
	}
	return fmt.Sprintf(
		"Got it. I will remind you %s (#%d).",
		result.Reminder.Fires,
		result.Reminder.ID,
	)
}

func (h *Handlers) handleList(ctx context.Context, userID user.ID) string {
	result, err := h.listUserReminders.Run(ctx, listuserreminders.Input{UserID: userID})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return registerFirst
	}
	if err != nil {
		logging.Error(ctx, h.log, err, logging.Entry("userID", userID))
		return somethingWentWrong
	}
	return formatReminders(result.Reminders)
}

func (h *Handlers) handleDeleteID(ctx context.Context, userID user.ID, text string) string {
	id, err := strconv.ParseInt(strings.TrimPrefix(text, "#"), 10, 64)
	if err != nil {
		return "Send just the number of the reminder, e.g. 3."
	}
	_, err = h.deleteReminder.Run(ctx, deletereminder.Input{
		UserID:     userID,
		ReminderID: reminder.ID(id),
	})
	h.sessions.reset(userID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return registerFirst
	}
	if errors.Is(err, reminder.ErrReminderDoesNotExist) {
		return "You have no reminder with that number."
	}
	if err != nil {
		logging.Error(ctx, h.log, err, logging.Entry("userID", userID))
		return somethingWentWrong
	}
	return "Deleted."
}

const (
	registerFirst      = "Please /register first."
	somethingWentWrong = "Something went wrong, please try again later."
)

func (h *Handlers) describeCreateError(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, user.ErrUserDoesNotExist):
		return registerFirst
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		return "You are creating reminders too fast, please slow down."
	case errors.Is(err, datetime.ErrInvalidDate):
		return "The reminder time must be in the future."
	case errors.Is(err, reminder.ErrInvalidFireSpec):
		return "I could not understand when to remind you."
	default:
		logging.Error(ctx, h.log, err)
		return somethingWentWrong
	}
}
