package user

import (
	"context"
	"sync"
)

type FakeUserRepository struct {
	Users       []User
	UpsertError error
	GetError    error
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{}
}

func (r *FakeUserRepository) Upsert(ctx context.Context, input UpsertUserInput) (u User, err error) {
	if r.UpsertError != nil {
		return u, r.UpsertError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Users {
		if existing.ID == input.ID {
			r.Users[ix].Name = input.Name
			r.Users[ix].PhoneNumber = input.PhoneNumber
			return r.Users[ix], nil
		}
	}
	u = User{
		ID:          input.ID,
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		CreatedAt:   input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.GetError != nil {
		return u, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.ID == id {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}
