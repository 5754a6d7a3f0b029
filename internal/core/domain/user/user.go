package user

import (
	"time"
)

// ID is the Telegram account identifier. It is assigned externally and is
// stable for the lifetime of the account, so it doubles as the chat ID for
// outgoing messages.
type ID int64

type User struct {
	ID          ID
	Name        string
	PhoneNumber string
	CreatedAt   time.Time
}
