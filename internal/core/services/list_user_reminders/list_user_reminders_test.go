package listuserreminders

import (
	"context"
	"remindbot/internal/core/domain/datetime"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID       = user.ID(42)
	OTHER_USER_ID = user.ID(777)
)

var Now = time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger             *logging.FakeLogger
	reminderRepository *reminder.FakeReminderRepository
	service            services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.reminderRepository = reminder.NewFakeReminderRepository()
	suite.service = New(suite.logger, suite.reminderRepository)
}

func TestListUserRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) create(createdBy user.ID, body string, status reminder.Status) reminder.Reminder {
	rem, err := s.reminderRepository.Create(
		context.Background(),
		reminder.CreateInput{
			CreatedBy: createdBy,
			Body:      body,
			Fires:     reminder.NewDaily(datetime.TimeOfDay{Hour: 9}),
			Status:    status,
			CreatedAt: Now,
		},
	)
	s.Require().Nil(err)
	return rem
}

func (s *testSuite) TestListsOnlyOwnPendingReminders() {
	mine := s.create(USER_ID, "water plants", reminder.StatusPending)
	s.create(OTHER_USER_ID, "not mine", reminder.StatusPending)
	s.create(USER_ID, "already fired", reminder.StatusFired)
	s.create(USER_ID, "canceled", reminder.StatusCanceled)

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Nil(err)
	s.Len(result.Reminders, 1)
	s.Equal(mine.ID, result.Reminders[0].ID)
	s.Equal("water plants", result.Reminders[0].Body)
}

func (s *testSuite) TestEmptyList() {
	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Nil(err)
	s.Len(result.Reminders, 0)
}

func (s *testSuite) TestRepositoryErrorPropagates() {
	s.reminderRepository.ReadError = context.DeadlineExceeded

	_, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.ErrorIs(err, context.DeadlineExceeded)
}
