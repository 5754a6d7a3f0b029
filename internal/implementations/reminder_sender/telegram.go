package remindersender

import (
	"context"
	"remindbot/internal/core/domain/bot"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/reminder"
)

type TelegramSender struct {
	messageSender bot.MessageSender
}

func NewTelegram(messageSender bot.MessageSender) *TelegramSender {
	if messageSender == nil {
		panic(e.NewNilArgumentError("messageSender"))
	}
	return &TelegramSender{messageSender: messageSender}
}

func (s *TelegramSender) SendReminder(ctx context.Context, rem reminder.Reminder, late bool) error {
	text := "⏰ Reminder:"
	if late {
		text = "⏰ Missed reminder (the service was down at its time):"
	}
	if rem.Body != "" {
		text += "\n—\n" + rem.Body
	}
	return s.messageSender.SendMessage(
		ctx,
		bot.Message{
			ChatID: int64(rem.CreatedBy),
			Text:   text,
		},
	)
}
