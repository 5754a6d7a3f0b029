package bot

import "context"

type Message struct {
	ChatID int64
	Text   string
}

type MessageSender interface {
	SendMessage(ctx context.Context, m Message) error
}
