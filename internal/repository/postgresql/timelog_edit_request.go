package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type editRequestRepositoryImpl struct {
	db *database.DB
}

func NewEditRequestRepository(db *database.DB) timelog.EditRequestRepository {
	return &editRequestRepositoryImpl{db: db}
}

const editRequestColumns = `
	e.id, e.timelog_id, e.employee_id, e.assigned_hr_id, e.reason,
	e.requested_time_in, e.requested_time_out, e.requested_break_minutes,
	e.status, e.hr_response, e.processed_by_id, e.processed_date, e.request_date,
	u.first_name || ' ' || u.last_name, t.log_date
`

func scanEditRequest(row pgx.Row) (timelog.EditRequest, error) {
	var req timelog.EditRequest
	err := row.Scan(
		&req.ID,
		&req.TimelogID,
		&req.EmployeeID,
		&req.AssignedHrID,
		&req.Reason,
		&req.RequestedTimeIn,
		&req.RequestedTimeOut,
		&req.RequestedBreakMinutes,
		&req.Status,
		&req.HrResponse,
		&req.ProcessedByID,
		&req.ProcessedDate,
		&req.RequestDate,
		&req.EmployeeName,
		&req.LogDate,
	)
	return req, err
}

// Create implements timelog.EditRequestRepository.
func (r *editRequestRepositoryImpl) Create(ctx context.Context, req timelog.EditRequest) (timelog.EditRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timelog_edit_requests (
			timelog_id, employee_id, assigned_hr_id, reason,
			requested_time_in, requested_time_out, requested_break_minutes, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, request_date
	`

	created := req
	err := q.QueryRow(ctx, query,
		req.TimelogID,
		req.EmployeeID,
		req.AssignedHrID,
		req.Reason,
		req.RequestedTimeIn,
		req.RequestedTimeOut,
		req.RequestedBreakMinutes,
		req.Status,
	).Scan(&created.ID, &created.RequestDate)
	if err != nil {
		return timelog.EditRequest{}, err
	}

	return created, nil
}

// GetByID implements timelog.EditRequestRepository.
func (r *editRequestRepositoryImpl) GetByID(ctx context.Context, id string) (timelog.EditRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + editRequestColumns + `
		FROM timelog_edit_requests e
		JOIN users u ON u.id = e.employee_id
		JOIN timelogs t ON t.id = e.timelog_id
		WHERE e.id = $1
	`

	found, err := scanEditRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.EditRequest{}, timelog.ErrEditRequestNotFound
		}
		return timelog.EditRequest{}, err
	}

	return found, nil
}

// Update implements timelog.EditRequestRepository.
func (r *editRequestRepositoryImpl) Update(ctx context.Context, req timelog.EditRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timelog_edit_requests
		SET status = $1, hr_response = $2, processed_by_id = $3, processed_date = $4
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		req.Status,
		req.HrResponse,
		req.ProcessedByID,
		req.ProcessedDate,
		req.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timelog.ErrEditRequestNotFound
	}

	return nil
}

// ListByEmployee implements timelog.EditRequestRepository.
func (r *editRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]timelog.EditRequest, error) {
	query := `
		SELECT ` + editRequestColumns + `
		FROM timelog_edit_requests e
		JOIN users u ON u.id = e.employee_id
		JOIN timelogs t ON t.id = e.timelog_id
		WHERE e.employee_id = $1
		ORDER BY e.request_date DESC
	`
	return r.listQuery(ctx, query, employeeID)
}

// ListByAssignedHr implements timelog.EditRequestRepository.
func (r *editRequestRepositoryImpl) ListByAssignedHr(ctx context.Context, hrID string) ([]timelog.EditRequest, error) {
	query := `
		SELECT ` + editRequestColumns + `
		FROM timelog_edit_requests e
		JOIN users u ON u.id = e.employee_id
		JOIN timelogs t ON t.id = e.timelog_id
		WHERE e.assigned_hr_id = $1
		ORDER BY e.request_date DESC
	`
	return r.listQuery(ctx, query, hrID)
}

// ListAll implements timelog.EditRequestRepository.
func (r *editRequestRepositoryImpl) ListAll(ctx context.Context) ([]timelog.EditRequest, error) {
	query := `
		SELECT ` + editRequestColumns + `
		FROM timelog_edit_requests e
		JOIN users u ON u.id = e.employee_id
		JOIN timelogs t ON t.id = e.timelog_id
		ORDER BY e.request_date DESC
	`
	return r.listQuery(ctx, query)
}

func (r *editRequestRepositoryImpl) listQuery(ctx context.Context, query string, args ...interface{}) ([]timelog.EditRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []timelog.EditRequest
	for rows.Next() {
		req, err := scanEditRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
