package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"fittrack-server/internal/interfaces"
	"fittrack-server/internal/schemas"
)

const activityColumns = `id, type, description, duration, date_time, location, user_id`

// ActivityRepository is the Postgres-backed implementation of ActivityRepo.
// Every query is scoped by the owner's user id.
type ActivityRepository struct {
	pool interfaces.PgxPoolIface
}

func NewActivityRepository(pool interfaces.PgxPoolIface) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) GetByID(ctx context.Context, id, ownerID int64) (*schemas.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE id = $1 AND user_id = $2`, activityColumns)
	return scanActivity(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *ActivityRepository) GetAll(ctx context.Context, ownerID int64) ([]schemas.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE user_id = $1 ORDER BY id`, activityColumns)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func (r *ActivityRepository) GetAllByType(ctx context.Context, ownerID int64, activityType schemas.ActivityType) ([]schemas.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE user_id = $1 AND type = $2 ORDER BY id`, activityColumns)

	rows, err := r.pool.Query(ctx, query, ownerID, activityType)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func (r *ActivityRepository) GetLastX(ctx context.Context, ownerID int64, amount int, activityType schemas.ActivityType) ([]schemas.Activity, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if activityType == "" {
		query := fmt.Sprintf(`SELECT %s FROM activities WHERE user_id = $1 ORDER BY id DESC LIMIT $2`, activityColumns)
		rows, err = r.pool.Query(ctx, query, ownerID, amount)
	} else {
		query := fmt.Sprintf(`SELECT %s FROM activities WHERE user_id = $1 AND type = $2 ORDER BY id DESC LIMIT $3`, activityColumns)
		rows, err = r.pool.Query(ctx, query, ownerID, activityType, amount)
	}
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func (r *ActivityRepository) Create(ctx context.Context, activity *schemas.Activity) (*schemas.Activity, error) {
	query := `INSERT INTO activities (type, description, duration, date_time, location, user_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		activity.Type, activity.Description, activity.Duration,
		activity.DateTime, activity.Location, activity.UserID).Scan(&id)
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}

	created := *activity
	created.ID = id
	return &created, nil
}

func (r *ActivityRepository) Update(ctx context.Context, id, ownerID int64, patch *schemas.ActivityPatch) (bool, error) {
	// Confirm the row exists and belongs to the caller before touching it,
	// so a missing row is distinguishable from a failed update.
	var existing int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM activities WHERE id = $1 AND user_id = $2`, id, ownerID).Scan(&existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}

	assignments := make([]string, 0, 5)
	args := make([]interface{}, 0, 7)

	addAssignment := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Type != nil {
		addAssignment("type", *patch.Type)
	}
	if patch.Description != nil {
		addAssignment("description", *patch.Description)
	}
	if patch.Duration != nil {
		addAssignment("duration", *patch.Duration)
	}
	if patch.DateTime != nil {
		addAssignment("date_time", *patch.DateTime)
	}
	if patch.Location != nil {
		addAssignment("location", *patch.Location)
	}

	if len(assignments) == 0 {
		return true, nil
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf(`UPDATE activities SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(assignments, ", "), len(args)-1, len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, ErrOperationFailed
	}
	return true, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, ErrOperationFailed
	}
	return true, nil
}

func scanActivity(row pgx.Row) (*schemas.Activity, error) {
	var (
		activity    schemas.Activity
		rawType     string
		description pgtype.Text
		dateTime    pgtype.Timestamptz
		location    pgtype.Text
	)

	err := row.Scan(&activity.ID, &rawType, &description, &activity.Duration, &dateTime, &location, &activity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	activity.Type = schemas.ActivityType(rawType)
	activity.DateTime = dateTime.Time
	if description.Valid {
		activity.Description = &description.String
	}
	if location.Valid {
		activity.Location = &location.String
	}
	return &activity, nil
}

func collectActivities(rows pgx.Rows) ([]schemas.Activity, error) {
	defer rows.Close()

	activities := make([]schemas.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}
