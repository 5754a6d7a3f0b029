package registeruser

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	UserID      user.ID
	Name        string
	PhoneNumber string
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		now:            now,
	}
}

// Run registers the user or, on re-registration, overwrites the profile
// fields of the existing record.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	registeredUser, err := s.userRepository.Upsert(
		ctx,
		user.UpsertUserInput{
			ID:          input.UserID,
			Name:        input.Name,
			PhoneNumber: input.PhoneNumber,
			CreatedAt:   s.now(),
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully registered.",
		logging.Entry("userID", registeredUser.ID),
	)
	result.User = registeredUser
	return result, nil
}
