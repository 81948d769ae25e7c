package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type, year, total_days, used_days, remaining_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	created := b
	err := q.QueryRow(ctx, query,
		b.EmployeeID,
		b.LeaveType,
		b.Year,
		b.TotalDays,
		b.UsedDays,
		b.RemainingDays,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return leave.Balance{}, err
	}

	return created, nil
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType leave.Type, year int) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year, total_days, used_days, remaining_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(
		&b.ID,
		&b.EmployeeID,
		&b.LeaveType,
		&b.Year,
		&b.TotalDays,
		&b.UsedDays,
		&b.RemainingDays,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &b, nil
}

// ListByEmployeeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year, total_days, used_days, remaining_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		err := rows.Scan(
			&b.ID,
			&b.EmployeeID,
			&b.LeaveType,
			&b.Year,
			&b.TotalDays,
			&b.UsedDays,
			&b.RemainingDays,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// Update implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Update(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET total_days = $1, used_days = $2, remaining_days = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, b.TotalDays, b.UsedDays, b.RemainingDays, b.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
