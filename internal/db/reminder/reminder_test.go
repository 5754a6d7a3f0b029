package reminder

import (
	"context"
	"os"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/datetime"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/db"
	dbuser "remindbot/internal/db/user"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	USER_ID       = user.ID(123456789)
	OTHER_USER_ID = user.ID(987654321)
)

var NOW time.Time = time.Date(2023, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxReminderRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) SetupTest() {
	users := dbuser.NewPgxRepository(suite.pool)
	for _, id := range []user.ID{USER_ID, OTHER_USER_ID} {
		_, err := users.Upsert(context.Background(), user.UpsertUserInput{
			ID:        id,
			Name:      "Test",
			CreatedAt: NOW,
		})
		suite.Require().Nil(err)
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxReminderRepository(t *testing.T) {
	if os.Getenv("TEST_POSTGRESQL_URL") == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) create(createdBy user.ID, body string, fires reminder.FireSpec) reminder.Reminder {
	rem, err := suite.repo.Create(context.Background(), reminder.CreateInput{
		CreatedBy: createdBy,
		Body:      body,
		Fires:     fires,
		Status:    reminder.StatusPending,
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	return rem
}

func (suite *testSuite) TestCreateOneShot() {
	at := NOW.Add(time.Hour)

	rem := suite.create(USER_ID, "call mom", reminder.NewOneShot(at))

	assert := suite.Require()
	assert.NotZero(rem.ID)
	assert.Equal(USER_ID, rem.CreatedBy)
	assert.Equal("call mom", rem.Body)
	assert.Equal(reminder.KindOneShot, rem.Fires.Kind())
	assert.Equal(at, rem.Fires.At().UTC())
	assert.Equal(reminder.StatusPending, rem.Status)
	assert.False(rem.TriggerID.IsPresent)
}

func (suite *testSuite) TestCreateDaily() {
	rem := suite.create(
		USER_ID,
		"take pills",
		reminder.NewDaily(datetime.TimeOfDay{Hour: 9, Minute: 5}),
	)

	assert := suite.Require()
	assert.True(rem.Fires.IsRecurring())
	assert.Equal(datetime.TimeOfDay{Hour: 9, Minute: 5}, rem.Fires.TimeOfDay())
}

func (suite *testSuite) TestGetByID() {
	created := suite.create(USER_ID, "water plants", reminder.NewOneShot(NOW.Add(time.Hour)))

	rem, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, rem.ID)
	assert.Equal("water plants", rem.Body)
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), reminder.ID(12345))

	suite.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (suite *testSuite) TestReadFiltersAndOrders() {
	first := suite.create(USER_ID, "first", reminder.NewOneShot(NOW.Add(time.Hour)))
	second := suite.create(USER_ID, "second", reminder.NewDaily(datetime.TimeOfDay{Hour: 9}))
	suite.create(OTHER_USER_ID, "not mine", reminder.NewOneShot(NOW.Add(time.Hour)))
	canceled := suite.create(USER_ID, "canceled", reminder.NewOneShot(NOW.Add(time.Hour)))
	suite.Require().Nil(
		suite.repo.SetStatus(context.Background(), canceled.ID, reminder.StatusCanceled),
	)

	reminders, err := suite.repo.Read(context.Background(), reminder.ReadOptions{
		CreatedByEquals: c.NewOptional(USER_ID, true),
		StatusEquals:    c.NewOptional(reminder.StatusPending, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(reminders, 2)
	assert.Equal(first.ID, reminders[0].ID)
	assert.Equal(second.ID, reminders[1].ID)
}

func (suite *testSuite) TestReadLimit() {
	suite.create(USER_ID, "first", reminder.NewOneShot(NOW.Add(time.Hour)))
	suite.create(USER_ID, "second", reminder.NewOneShot(NOW.Add(time.Hour)))

	reminders, err := suite.repo.Read(context.Background(), reminder.ReadOptions{
		Limit: c.NewOptional(uint(1), true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(reminders, 1)
}

func (suite *testSuite) TestSetTrigger() {
	created := suite.create(USER_ID, "x", reminder.NewOneShot(NOW.Add(time.Hour)))

	err := suite.repo.SetTrigger(context.Background(), created.ID, reminder.TriggerID(77))

	assert := suite.Require()
	assert.Nil(err)
	rem, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.True(rem.TriggerID.IsPresent)
	assert.Equal(reminder.TriggerID(77), rem.TriggerID.Value)
}

func (suite *testSuite) TestSetStatusNotFound() {
	err := suite.repo.SetStatus(context.Background(), reminder.ID(12345), reminder.StatusFired)

	suite.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (suite *testSuite) TestDelete() {
	created := suite.create(USER_ID, "x", reminder.NewOneShot(NOW.Add(time.Hour)))

	err := suite.repo.Delete(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	_, err = suite.repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (suite *testSuite) TestDeleteNotFound() {
	err := suite.repo.Delete(context.Background(), reminder.ID(12345))

	suite.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)
}
