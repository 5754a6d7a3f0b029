package bot

import (
	"context"
	"sync"
)

type FakeMessageSender struct {
	Sent      []Message
	SendError error
	lock      sync.Mutex
}

func NewFakeMessageSender() *FakeMessageSender {
	return &FakeMessageSender{}
}

func (s *FakeMessageSender) SendMessage(ctx context.Context, m Message) error {
	if s.SendError != nil {
		return s.SendError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, m)
	return nil
}
