package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type timelogRepositoryImpl struct {
	db *database.DB
}

func NewTimelogRepository(db *database.DB) timelog.Repository {
	return &timelogRepositoryImpl{db: db}
}

const timelogColumns = `
	t.id, t.employee_id, t.log_date, t.time_in, t.time_out, t.break_start, t.break_end,
	t.status, t.break_duration_minutes, t.total_worked_hours,
	t.clock_in_photo, t.clock_out_photo,
	t.adjusted_time_in, t.adjusted_time_out, t.adjusted_break_minutes,
	t.adjustment_reason, t.adjusted_by_id, t.adjustment_date,
	t.created_at, t.updated_at,
	u.first_name || ' ' || u.last_name, u.username
`

func scanTimelog(row pgx.Row) (timelog.Timelog, error) {
	var t timelog.Timelog
	err := row.Scan(
		&t.ID,
		&t.EmployeeID,
		&t.LogDate,
		&t.TimeIn,
		&t.TimeOut,
		&t.BreakStart,
		&t.BreakEnd,
		&t.Status,
		&t.BreakDurationMinutes,
		&t.TotalWorkedHours,
		&t.ClockInPhoto,
		&t.ClockOutPhoto,
		&t.AdjustedTimeIn,
		&t.AdjustedTimeOut,
		&t.AdjustedBreakMinutes,
		&t.AdjustmentReason,
		&t.AdjustedByID,
		&t.AdjustmentDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.EmployeeName,
		&t.EmployeeUsername,
	)
	return t, err
}

// Create implements timelog.Repository.
func (r *timelogRepositoryImpl) Create(ctx context.Context, t timelog.Timelog) (timelog.Timelog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timelogs (
			employee_id, log_date, time_in, time_out, break_start, break_end,
			status, break_duration_minutes, total_worked_hours,
			clock_in_photo, clock_out_photo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	created := t
	err := q.QueryRow(ctx, query,
		t.EmployeeID,
		t.LogDate,
		t.TimeIn,
		t.TimeOut,
		t.BreakStart,
		t.BreakEnd,
		t.Status,
		t.BreakDurationMinutes,
		t.TotalWorkedHours,
		t.ClockInPhoto,
		t.ClockOutPhoto,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return timelog.Timelog{}, err
	}

	return created, nil
}

// GetByID implements timelog.Repository.
func (r *timelogRepositoryImpl) GetByID(ctx context.Context, id string) (timelog.Timelog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timelogColumns + `
		FROM timelogs t
		JOIN users u ON u.id = t.employee_id
		WHERE t.id = $1
	`

	found, err := scanTimelog(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.Timelog{}, timelog.ErrTimelogNotFound
		}
		return timelog.Timelog{}, err
	}

	return found, nil
}

// GetByEmployeeAndDate implements timelog.Repository.
func (r *timelogRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timelog.Timelog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timelogColumns + `
		FROM timelogs t
		JOIN users u ON u.id = t.employee_id
		WHERE t.employee_id = $1 AND t.log_date = $2
	`

	found, err := scanTimelog(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// GetActiveByEmployee implements timelog.Repository.
func (r *timelogRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID string) (*timelog.Timelog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timelogColumns + `
		FROM timelogs t
		JOIN users u ON u.id = t.employee_id
		WHERE t.employee_id = $1 AND t.status IN ('CLOCKED_IN', 'ON_BREAK')
		ORDER BY t.log_date DESC
		LIMIT 1
	`

	found, err := scanTimelog(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// Update implements timelog.Repository.
func (r *timelogRepositoryImpl) Update(ctx context.Context, t timelog.Timelog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timelogs
		SET time_in = $1, time_out = $2, break_start = $3, break_end = $4,
			status = $5, break_duration_minutes = $6, total_worked_hours = $7,
			clock_in_photo = $8, clock_out_photo = $9,
			adjusted_time_in = $10, adjusted_time_out = $11, adjusted_break_minutes = $12,
			adjustment_reason = $13, adjusted_by_id = $14, adjustment_date = $15,
			updated_at = NOW()
		WHERE id = $16
	`

	tag, err := q.Exec(ctx, query,
		t.TimeIn,
		t.TimeOut,
		t.BreakStart,
		t.BreakEnd,
		t.Status,
		t.BreakDurationMinutes,
		t.TotalWorkedHours,
		t.ClockInPhoto,
		t.ClockOutPhoto,
		t.AdjustedTimeIn,
		t.AdjustedTimeOut,
		t.AdjustedBreakMinutes,
		t.AdjustmentReason,
		t.AdjustedByID,
		t.AdjustmentDate,
		t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timelog.ErrTimelogNotFound
	}

	return nil
}

// ListByEmployee implements timelog.Repository.
func (r *timelogRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter timelog.Filter) ([]timelog.Timelog, int64, error) {
	scoped := filter
	scoped.Name = nil
	return r.list(ctx, scoped, &employeeID)
}

// Search implements timelog.Repository.
func (r *timelogRepositoryImpl) Search(ctx context.Context, filter timelog.Filter) ([]timelog.Timelog, int64, error) {
	return r.list(ctx, filter, nil)
}

func (r *timelogRepositoryImpl) list(ctx context.Context, filter timelog.Filter, employeeID *string) ([]timelog.Timelog, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if employeeID != nil {
		whereClause += fmt.Sprintf(" AND t.employee_id = $%d", argIndex)
		args = append(args, *employeeID)
		argIndex++
	}

	if filter.Name != nil && *filter.Name != "" {
		whereClause += fmt.Sprintf(" AND (u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.username ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+*filter.Name+"%")
		argIndex++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND t.log_date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND t.log_date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM timelogs t
		JOIN users u ON u.id = t.employee_id
	` + whereClause

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	// Sort columns come from a validated whitelist, never from raw input.
	orderColumn := map[string]string{
		"log_date":      "t.log_date",
		"employee_name": "u.first_name",
		"time_in":       "t.time_in",
		"time_out":      "t.time_out",
	}[filter.SortBy]
	if orderColumn == "" {
		orderColumn = "t.log_date"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	query := `
		SELECT ` + timelogColumns + `
		FROM timelogs t
		JOIN users u ON u.id = t.employee_id
	` + whereClause + fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", orderColumn, direction, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var timelogs []timelog.Timelog
	for rows.Next() {
		t, err := scanTimelog(rows)
		if err != nil {
			return nil, 0, err
		}
		timelogs = append(timelogs, t)
	}

	return timelogs, totalCount, rows.Err()
}

// Delete implements timelog.Repository.
func (r *timelogRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timelogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timelog.ErrTimelogNotFound
	}

	return nil
}

// LockEmployee implements timelog.Repository.
func (r *timelogRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	// Advisory lock scoped to the transaction; released on commit or rollback.
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID)
	return err
}
