// Package registration gates scheduling operations behind the user table:
// an operation runs only for callers that completed /register.
package registration

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
)

type Input interface {
	RegisteredUserID() user.ID
}

type gatedService[T Input, S any] struct {
	userRepository user.UserRepository
	inner          services.Service[T, S]
}

func WithRegistration[T Input, S any](
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &gatedService[T, S]{
		userRepository: userRepository,
		inner:          inner,
	}
}

func (s *gatedService[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	if _, err = s.userRepository.GetByID(ctx, input.RegisteredUserID()); err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input)
}
