package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/datetime"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/db"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxReminderRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxReminderRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxReminderRepository{db: db}
}

const reminderColumns = "id, created_by, body, fire_kind, fire_at, fire_time, status, trigger_id, created_at"

const createReminder = `
INSERT INTO reminder (created_by, body, fire_kind, fire_at, fire_time, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + reminderColumns

func (r *PgxReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	fireAt, fireTime := encodeFireSpec(input.Fires)
	row := r.db.QueryRow(
		ctx,
		createReminder,
		int64(input.CreatedBy),
		input.Body,
		input.Fires.Kind().String(),
		fireAt,
		fireTime,
		input.Status.String(),
		input.CreatedAt,
	)
	return scanReminder(row)
}

func (r *PgxReminderRepository) Lock(ctx context.Context, id reminder.ID) error {
	var lockedID int64
	err := r.db.QueryRow(ctx, "SELECT id FROM reminder WHERE id = $1 FOR UPDATE", int64(id)).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

const getReminderByID = `
SELECT ` + reminderColumns + `
FROM reminder
WHERE id = $1
`

func (r *PgxReminderRepository) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	rem, err = scanReminder(r.db.QueryRow(ctx, getReminderByID, int64(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) Read(
	ctx context.Context,
	options reminder.ReadOptions,
) ([]reminder.Reminder, error) {
	query := strings.Builder{}
	query.WriteString("SELECT ")
	query.WriteString(reminderColumns)
	query.WriteString(" FROM reminder")

	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if options.CreatedByEquals.IsPresent {
		args = append(args, int64(options.CreatedByEquals.Value))
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if options.StatusEquals.IsPresent {
		args = append(args, options.StatusEquals.Value.String())
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY id ASC")
	if options.Limit.IsPresent {
		args = append(args, options.Limit.Value)
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) SetTrigger(
	ctx context.Context,
	id reminder.ID,
	triggerID reminder.TriggerID,
) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE reminder SET trigger_id = $1 WHERE id = $2",
		int64(triggerID),
		int64(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func (r *PgxReminderRepository) SetStatus(ctx context.Context, id reminder.ID, status reminder.Status) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE reminder SET status = $1 WHERE id = $2",
		status.String(),
		int64(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func (r *PgxReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM reminder WHERE id = $1", int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func encodeFireSpec(spec reminder.FireSpec) (fireAt sql.NullTime, fireTime sql.NullString) {
	switch spec.Kind() {
	case reminder.KindOneShot:
		fireAt = sql.NullTime{Time: spec.At(), Valid: true}
	case reminder.KindDaily:
		fireTime = sql.NullString{String: spec.TimeOfDay().String(), Valid: true}
	}
	return fireAt, fireTime
}

func DecodeFireSpec(kind string, fireAt sql.NullTime, fireTime sql.NullString) (reminder.FireSpec, error) {
	parsedKind, err := reminder.ParseKind(kind)
	if err != nil {
		return reminder.FireSpec{}, err
	}
	switch parsedKind {
	case reminder.KindOneShot:
		if !fireAt.Valid {
			return reminder.FireSpec{}, reminder.ErrInvalidFireSpec
		}
		return reminder.NewOneShot(fireAt.Time), nil
	default:
		if !fireTime.Valid {
			return reminder.FireSpec{}, reminder.ErrInvalidFireSpec
		}
		tod, err := datetime.ParseTimeOfDay(fireTime.String)
		if err != nil {
			return reminder.FireSpec{}, err
		}
		return reminder.NewDaily(tod), nil
	}
}

func scanReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var (
		id        int64
		createdBy int64
		kind      string
		fireAt    sql.NullTime
		fireTime  sql.NullString
		status    string
		triggerID sql.NullInt64
		createdAt time.Time
	)
	err = row.Scan(&id, &createdBy, &rem.Body, &kind, &fireAt, &fireTime, &status, &triggerID, &createdAt)
	if err != nil {
		return rem, err
	}
	rem.ID = reminder.ID(id)
	rem.CreatedBy = user.ID(createdBy)
	rem.CreatedAt = createdAt
	rem.Fires, err = DecodeFireSpec(kind, fireAt, fireTime)
	if err != nil {
		return rem, err
	}
	rem.Status, err = reminder.ParseStatus(status)
	if err != nil {
		return rem, err
	}
	rem.TriggerID = c.NewOptional(reminder.TriggerID(triggerID.Int64), triggerID.Valid)
	return rem, nil
}
