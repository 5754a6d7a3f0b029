package user

import (
	"context"
	"os"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(123456789)

var NOW time.Time = time.Date(2023, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	if os.Getenv("TEST_POSTGRESQL_URL") == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestUpsertCreates() {
	u, err := suite.repo.Upsert(context.Background(), user.UpsertUserInput{
		ID:          USER_ID,
		Name:        "Aziz",
		PhoneNumber: "+998901234567",
		CreatedAt:   NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, u.ID)
	assert.Equal("Aziz", u.Name)
	assert.Equal("+998901234567", u.PhoneNumber)
	assert.Equal(NOW, u.CreatedAt.UTC())
}

func (suite *testSuite) TestUpsertPreservesCreatedAt() {
	_, err := suite.repo.Upsert(context.Background(), user.UpsertUserInput{
		ID:        USER_ID,
		Name:      "Aziz",
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)

	u, err := suite.repo.Upsert(context.Background(), user.UpsertUserInput{
		ID:          USER_ID,
		Name:        "Aziz Karimov",
		PhoneNumber: "+998907654321",
		CreatedAt:   NOW.Add(time.Hour),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Aziz Karimov", u.Name)
	assert.Equal("+998907654321", u.PhoneNumber)
	assert.Equal(NOW, u.CreatedAt.UTC())
}

func (suite *testSuite) TestGetByIDSuccess() {
	_, err := suite.repo.Upsert(context.Background(), user.UpsertUserInput{
		ID:        USER_ID,
		Name:      "Aziz",
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)

	u, err := suite.repo.GetByID(context.Background(), USER_ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, u.ID)
	assert.Equal("Aziz", u.Name)
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), user.ID(987654321))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}
