// Package telegram is the bot transport: it drives command flows over long
// polling and translates messages into service calls.
package telegram

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/user"
	"time"

	tele "gopkg.in/telebot.v4"
)

type Bot struct {
	log      logging.Logger
	bot      *tele.Bot
	handlers *Handlers
}

func NewBot(
	token string,
	pollerTimeout time.Duration,
	log logging.Logger,
	handlers *Handlers,
) (*Bot, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if handlers == nil {
		panic(e.NewNilArgumentError("handlers"))
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollerTimeout},
	})
	if err != nil {
		return nil, err
	}
	return &Bot{log: log, bot: b, handlers: handlers}, nil
}

// Start blocks until Stop is called.
func (b *Bot) Start() {
	b.bot.Handle(tele.OnText, b.onText)
	b.log.Info(context.Background(), "Telegram polling started.")
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
	b.log.Info(context.Background(), "Telegram polling stopped.")
}

func (b *Bot) onText(c tele.Context) error {
	m := c.Message()
	if m == nil || m.Sender == nil {
		return nil
	}
	reply := b.handlers.Advance(context.Background(), user.ID(m.Sender.ID), m.Text)
	if reply == "" {
		return nil
	}
	return c.Send(reply)
}
