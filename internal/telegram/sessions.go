package telegram

import (
	"remindbot/internal/core/domain/datetime"
	"remindbot/internal/core/domain/user"
	"sync"
	"time"
)

// step is the position of a chat in a multi-message command flow.
type step struct {
	v string
}

var (
	stepIdle          = step{}
	stepRegisterName  = step{v: "register_name"}
	stepRegisterPhone = step{v: "register_phone"}
	stepRemindAt      = step{v: "remind_at"}
	stepRemindBody    = step{v: "remind_body"}
	stepDailyAt       = step{v: "daily_at"}
	stepDailyBody     = step{v: "daily_body"}
	stepDeleteID      = step{v: "delete_id"}
)

// session accumulates the answers of a flow until its final step submits
// them. Sessions are in-memory only: a restart simply drops half-finished
// flows.
type session struct {
	Step      step
	Name      string
	At        time.Time
	TimeOfDay datetime.TimeOfDay
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[user.ID]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[user.ID]*session)}
}

func (s *sessionStore) get(id user.ID) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing
	}
	created := &session{}
	s.sessions[id] = created
	return created
}

func (s *sessionStore) reset(id user.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
