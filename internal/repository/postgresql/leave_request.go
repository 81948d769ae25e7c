package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.reason,
	l.status, l.approver_id, l.approver_comments, l.request_date, l.updated_at,
	u.first_name || ' ' || u.last_name
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.LeaveType,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Status,
		&req.ApproverID,
		&req.ApproverComments,
		&req.RequestDate,
		&req.UpdatedAt,
		&req.EmployeeName,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, request_date, updated_at
	`

	created := req
	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
	).Scan(&created.ID, &created.RequestDate, &created.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}

	return created, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.employee_id
		WHERE l.id = $1
	`

	found, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}

	return found, nil
}

// Update implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approver_id = $2, approver_comments = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, req.Status, req.ApproverID, req.ApproverComments, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.employee_id
		WHERE l.employee_id = $1
		ORDER BY l.request_date DESC
	`
	return r.listQuery(ctx, query, employeeID)
}

// ListByStatus implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.RequestStatus) ([]leave.Request, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.employee_id
		WHERE l.status = $1
		ORDER BY l.request_date DESC
	`
	return r.listQuery(ctx, query, status)
}

// ListAll implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.Request, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.employee_id
		ORDER BY l.request_date DESC
	`
	return r.listQuery(ctx, query)
}

func (r *leaveRequestRepositoryImpl) listQuery(ctx context.Context, query string, args ...interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// HasOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('PENDING', 'APPROVED')
			  AND start_date <= $2
			  AND end_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, end, start).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// LockEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	// Advisory lock scoped to the transaction; released on commit or rollback.
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID)
	return err
}
