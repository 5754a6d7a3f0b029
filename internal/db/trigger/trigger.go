package trigger

import (
	"context"
	"database/sql"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/trigger"
	"remindbot/internal/db"
	dbreminder "remindbot/internal/db/reminder"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxTriggerRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxTriggerRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxTriggerRepository{db: db}
}

const createTrigger = `
INSERT INTO trigger (reminder_id, fire_kind, fire_at, fire_time, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, reminder_id, fire_kind, fire_at, fire_time, created_at
`

func (r *PgxTriggerRepository) Create(ctx context.Context, input trigger.CreateInput) (t trigger.Trigger, err error) {
	var fireAt sql.NullTime
	var fireTime sql.NullString
	switch input.Fires.Kind() {
	case reminder.KindOneShot:
		fireAt = sql.NullTime{Time: input.Fires.At(), Valid: true}
	case reminder.KindDaily:
		fireTime = sql.NullString{String: input.Fires.TimeOfDay().String(), Valid: true}
	}
	row := r.db.QueryRow(
		ctx,
		createTrigger,
		int64(input.ReminderID),
		input.Fires.Kind().String(),
		fireAt,
		fireTime,
		input.CreatedAt,
	)
	return scanTrigger(row)
}

const readAllTriggers = `
SELECT id, reminder_id, fire_kind, fire_at, fire_time, created_at
FROM trigger
ORDER BY id ASC
`

func (r *PgxTriggerRepository) ReadAll(ctx context.Context) ([]trigger.Trigger, error) {
	rows, err := r.db.Query(ctx, readAllTriggers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	triggers := make([]trigger.Trigger, 0)
	for rows.Next() {
		t, err := scanTrigger(rows)
		if err != nil {
			return nil, err
		}
		triggers = append(triggers, t)
	}
	return triggers, rows.Err()
}

func (r *PgxTriggerRepository) Delete(ctx context.Context, id reminder.TriggerID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM trigger WHERE id = $1", int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return trigger.ErrTriggerDoesNotExist
	}
	return nil
}

func scanTrigger(row pgx.Row) (t trigger.Trigger, err error) {
	var (
		id         int64
		reminderID int64
		kind       string
		fireAt     sql.NullTime
		fireTime   sql.NullString
		createdAt  time.Time
	)
	if err := row.Scan(&id, &reminderID, &kind, &fireAt, &fireTime, &createdAt); err != nil {
		return t, err
	}
	t.ID = reminder.TriggerID(id)
	t.ReminderID = reminder.ID(reminderID)
	t.CreatedAt = createdAt
	t.Fires, err = dbreminder.DecodeFireSpec(kind, fireAt, fireTime)
	return t, err
}
