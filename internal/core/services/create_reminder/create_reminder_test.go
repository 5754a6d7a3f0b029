package createreminder

import (
	"context"
	"remindbot/internal/core/domain/datetime"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	uow "remindbot/internal/core/domain/unit_of_work"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(42)

var Now = time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger             *logging.FakeLogger
	unitOfWork         *uow.FakeUnitOfWork
	reminderRepository *reminder.FakeReminderRepository
	scheduler          *reminder.FakeScheduler
	service            services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.reminderRepository = suite.unitOfWork.Reminders()
	suite.scheduler = reminder.NewFakeScheduler()
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		suite.reminderRepository,
		suite.scheduler,
		func() time.Time { return Now },
	)
}

func TestCreateReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreateOneShotSuccess() {
	at := Now.Add(time.Hour)

	result, err := s.service.Run(
		context.Background(),
		Input{UserID: USER_ID, Body: "call mom", Fires: reminder.NewOneShot(at)},
	)

	s.Nil(err)
	s.Equal(USER_ID, result.Reminder.CreatedBy)
	s.Equal("call mom", result.Reminder.Body)
	s.Equal(reminder.StatusPending, result.Reminder.Status)
	s.True(result.Reminder.TriggerID.IsPresent)
	s.Equal(reminder.TriggerID(100), result.Reminder.TriggerID.Value)
	s.True(s.unitOfWork.Context.WasCommitCalled)

	s.Len(s.scheduler.Armed, 1)
	s.Equal(result.Reminder.ID, s.scheduler.Armed[0].ID)

	stored, err := s.reminderRepository.GetByID(context.Background(), result.Reminder.ID)
	s.Nil(err)
	s.True(stored.TriggerID.IsPresent)
	s.Equal(reminder.TriggerID(100), stored.TriggerID.Value)
}

func (s *testSuite) TestCreateDailySuccess() {
	result, err := s.service.Run(
		context.Background(),
		Input{
			UserID: USER_ID,
			Body:   "take pills",
			Fires:  reminder.NewDaily(datetime.TimeOfDay{Hour: 9, Minute: 30}),
		},
	)

	s.Nil(err)
	s.True(result.Reminder.Fires.IsRecurring())
	s.Len(s.scheduler.Armed, 1)
}

func (s *testSuite) TestOneShotInPastRejected() {
	for _, at := range []time.Time{Now, Now.Add(-time.Minute)} {
		_, err := s.service.Run(
			context.Background(),
			Input{UserID: USER_ID, Body: "too late", Fires: reminder.NewOneShot(at)},
		)

		s.ErrorIs(err, datetime.ErrInvalidDate)
	}
	s.Len(s.reminderRepository.Reminders, 0)
	s.Len(s.scheduler.Armed, 0)
}

func (s *testSuite) TestInvalidFireSpecRejected() {
	_, err := s.service.Run(
		context.Background(),
		Input{UserID: USER_ID, Body: "broken", Fires: reminder.FireSpec{}},
	)

	s.ErrorIs(err, reminder.ErrInvalidFireSpec)
	s.Len(s.reminderRepository.Reminders, 0)
}

func (s *testSuite) TestCreateErrorRollsBack() {
	s.reminderRepository.CreateError = context.DeadlineExceeded

	_, err := s.service.Run(
		context.Background(),
		Input{UserID: USER_ID, Body: "x", Fires: reminder.NewOneShot(Now.Add(time.Hour))},
	)

	s.ErrorIs(err, context.DeadlineExceeded)
	s.True(s.unitOfWork.Context.WasRollbackCalled)
	s.False(s.unitOfWork.Context.WasCommitCalled)
	s.Len(s.scheduler.Armed, 0)
}

func (s *testSuite) TestArmErrorPropagates() {
	s.scheduler.ArmError = context.DeadlineExceeded

	_, err := s.service.Run(
		context.Background(),
		Input{UserID: USER_ID, Body: "x", Fires: reminder.NewOneShot(Now.Add(time.Hour))},
	)

	s.ErrorIs(err, context.DeadlineExceeded)
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Len(s.reminderRepository.Reminders, 1)
	s.False(s.reminderRepository.Reminders[0].TriggerID.IsPresent)
}

func (s *testSuite) TestRateLimitKeyIncludesUserID() {
	input := Input{UserID: USER_ID}
	s.Equal("create-reminder::42", input.GetRateLimitKey())
}
