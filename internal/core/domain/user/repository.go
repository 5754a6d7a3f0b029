package user

import (
	"context"
	"time"
)

type UpsertUserInput struct {
	ID          ID
	Name        string
	PhoneNumber string
	CreatedAt   time.Time
}

type UserRepository interface {
	// Upsert creates the user or overwrites the profile fields of an
	// existing one. CreatedAt of an existing record is preserved.
	Upsert(ctx context.Context, input UpsertUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
}
