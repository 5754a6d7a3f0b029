package user

import (
	"context"
	"errors"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/db"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

const upsertUser = `
INSERT INTO "user" (id, name, phone_number, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, phone_number = EXCLUDED.phone_number
RETURNING id, name, phone_number, created_at
`

func (r *PgxUserRepository) Upsert(ctx context.Context, input user.UpsertUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		upsertUser,
		int64(input.ID),
		input.Name,
		input.PhoneNumber,
		input.CreatedAt,
	)
	return scanUser(row)
}

const getUserByID = `
SELECT id, name, phone_number, created_at
FROM "user"
WHERE id = $1
`

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, getUserByID, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var id int64
	var createdAt time.Time
	if err := row.Scan(&id, &u.Name, &u.PhoneNumber, &createdAt); err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	u.CreatedAt = createdAt
	return u, nil
}
