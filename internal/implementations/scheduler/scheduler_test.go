package scheduler

import (
	"context"
	"remindbot/internal/core/domain/datetime"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/trigger"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const REMINDER_ID = reminder.ID(42)

type firedRecord struct {
	TriggerID  reminder.TriggerID
	ReminderID reminder.ID
	Late       bool
}

type testSuite struct {
	suite.Suite
	logger    *logging.FakeLogger
	triggers  *trigger.FakeRepository
	fired     chan firedRecord
	scheduler *DurableScheduler
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.triggers = trigger.NewFakeRepository()
	suite.fired = make(chan firedRecord, 10)
	suite.scheduler = New(
		suite.logger,
		suite.triggers,
		func(ctx context.Context, triggerID reminder.TriggerID, reminderID reminder.ID, late bool) {
			suite.fired <- firedRecord{TriggerID: triggerID, ReminderID: reminderID, Late: late}
		},
		time.Now,
		time.UTC,
	)
}

func (suite *testSuite) TearDownTest() {
	suite.scheduler.Stop()
}

func TestDurableScheduler(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) waitForFire() firedRecord {
	select {
	case record := <-s.fired:
		return record
	case <-time.After(time.Second):
		s.Require().FailNow("trigger did not fire in time")
		return firedRecord{}
	}
}

func (s *testSuite) assertNoFire(within time.Duration) {
	select {
	case <-s.fired:
		s.Require().FailNow("trigger fired unexpectedly")
	case <-time.After(within):
	}
}

func (s *testSuite) TestArmPersistsTrigger() {
	rem := reminder.Reminder{
		ID:    REMINDER_ID,
		Fires: reminder.NewOneShot(time.Now().Add(time.Hour)),
	}

	triggerID, err := s.scheduler.Arm(context.Background(), rem)

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.triggers.Triggers, 1)
	assert.Equal(triggerID, s.triggers.Triggers[0].ID)
	assert.Equal(REMINDER_ID, s.triggers.Triggers[0].ReminderID)
}

func (s *testSuite) TestOneShotFiresAndRetiresTrigger() {
	rem := reminder.Reminder{
		ID:    REMINDER_ID,
		Fires: reminder.NewOneShot(time.Now().Add(20 * time.Millisecond)),
	}

	triggerID, err := s.scheduler.Arm(context.Background(), rem)
	s.Require().Nil(err)

	record := s.waitForFire()
	s.Equal(triggerID, record.TriggerID)
	s.Equal(REMINDER_ID, record.ReminderID)
	s.False(record.Late)

	s.Require().Eventually(
		func() bool {
			all, err := s.triggers.ReadAll(context.Background())
			return err == nil && len(all) == 0
		},
		time.Second,
		10*time.Millisecond,
	)
}

func (s *testSuite) TestCancelDisarmsAndDeletes() {
	rem := reminder.Reminder{
		ID:    REMINDER_ID,
		Fires: reminder.NewOneShot(time.Now().Add(50 * time.Millisecond)),
	}
	triggerID, err := s.scheduler.Arm(context.Background(), rem)
	s.Require().Nil(err)

	err = s.scheduler.Cancel(context.Background(), triggerID)

	s.Require().Nil(err)
	s.Len(s.triggers.Triggers, 0)
	s.assertNoFire(150 * time.Millisecond)
}

func (s *testSuite) TestCancelUnknownTrigger() {
	err := s.scheduler.Cancel(context.Background(), reminder.TriggerID(12345))

	s.Require().ErrorIs(err, trigger.ErrTriggerDoesNotExist)
}

func (s *testSuite) TestStartRearmsPersistedTriggers() {
	_, err := s.triggers.Create(context.Background(), trigger.CreateInput{
		ReminderID: REMINDER_ID,
		Fires:      reminder.NewOneShot(time.Now().Add(20 * time.Millisecond)),
		CreatedAt:  time.Now(),
	})
	s.Require().Nil(err)

	s.Require().Nil(s.scheduler.Start(context.Background()))

	record := s.waitForFire()
	s.Equal(REMINDER_ID, record.ReminderID)
	s.False(record.Late)
}

func (s *testSuite) TestStartFiresElapsedOneShotLate() {
	created, err := s.triggers.Create(context.Background(), trigger.CreateInput{
		ReminderID: REMINDER_ID,
		Fires:      reminder.NewOneShot(time.Now().Add(-time.Hour)),
		CreatedAt:  time.Now().Add(-2 * time.Hour),
	})
	s.Require().Nil(err)

	s.Require().Nil(s.scheduler.Start(context.Background()))

	record := s.waitForFire()
	s.Equal(created.ID, record.TriggerID)
	s.True(record.Late)

	s.Require().Eventually(
		func() bool {
			all, err := s.triggers.ReadAll(context.Background())
			return err == nil && len(all) == 0
		},
		time.Second,
		10*time.Millisecond,
	)
}

func (s *testSuite) TestStartRearmsDailyTrigger() {
	_, err := s.triggers.Create(context.Background(), trigger.CreateInput{
		ReminderID: REMINDER_ID,
		Fires:      reminder.NewDaily(datetime.TimeOfDay{Hour: 9, Minute: 5}),
		CreatedAt:  time.Now(),
	})
	s.Require().Nil(err)

	s.Require().Nil(s.scheduler.Start(context.Background()))

	s.assertNoFire(50 * time.Millisecond)
	s.Len(s.triggers.Triggers, 1)
}

func (s *testSuite) TestStopThenStartRearmsDailyOnce() {
	_, err := s.triggers.Create(context.Background(), trigger.CreateInput{
		ReminderID: REMINDER_ID,
		Fires:      reminder.NewDaily(datetime.TimeOfDay{Hour: 9, Minute: 5}),
		CreatedAt:  time.Now(),
	})
	s.Require().Nil(err)

	s.Require().Nil(s.scheduler.Start(context.Background()))
	s.scheduler.Stop()
	s.Require().Nil(s.scheduler.Start(context.Background()))

	s.Len(s.scheduler.cron.Entries(), 1)
	s.Len(s.scheduler.entries, 1)
}

func (s *testSuite) TestArmLogsNextOccurrence() {
	now := time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)
	fixed := New(
		s.logger,
		s.triggers,
		func(ctx context.Context, triggerID reminder.TriggerID, reminderID reminder.ID, late bool) {},
		func() time.Time { return now },
		time.UTC,
	)
	defer fixed.Stop()

	_, err := fixed.Arm(context.Background(), reminder.Reminder{
		ID:    REMINDER_ID,
		Fires: reminder.NewDaily(datetime.TimeOfDay{Hour: 9, Minute: 30}),
	})
	s.Require().Nil(err)

	expected := time.Date(2023, time.June, 16, 9, 30, 0, 0, time.UTC)
	for _, record := range s.logger.Records() {
		if record.Msg != "Trigger armed." {
			continue
		}
		for _, entry := range record.Entries {
			if entry.Key == "nextFireAt" {
				s.True(expected.Equal(entry.Value.(time.Time)))
				return
			}
		}
	}
	s.Require().FailNow("no record of the armed trigger's next occurrence")
}

func (s *testSuite) TestStartTwiceFails() {
	s.Require().Nil(s.scheduler.Start(context.Background()))

	err := s.scheduler.Start(context.Background())

	s.Require().NotNil(err)
}

func (s *testSuite) TestPanicInFireIsRecovered() {
	panicking := New(
		s.logger,
		s.triggers,
		func(ctx context.Context, triggerID reminder.TriggerID, reminderID reminder.ID, late bool) {
			panic("boom")
		},
		time.Now,
		time.UTC,
	)
	defer panicking.Stop()

	_, err := panicking.Arm(context.Background(), reminder.Reminder{
		ID:    REMINDER_ID,
		Fires: reminder.NewOneShot(time.Now().Add(10 * time.Millisecond)),
	})
	s.Require().Nil(err)

	s.Require().Eventually(
		func() bool {
			for _, record := range s.logger.Records() {
				if record.Level == "error" {
					return true
				}
			}
			return false
		},
		time.Second,
		10*time.Millisecond,
	)
}
