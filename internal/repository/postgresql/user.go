package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.username, u.password_hash, u.role, u.position_id, u.enabled,
	u.first_name, u.last_name, u.email, u.phone, u.address,
	u.created_at, u.updated_at, p.title
`

func scanUser(row pgx.Row) (user.User, error) {
	var found user.User
	err := row.Scan(
		&found.ID,
		&found.Username,
		&found.PasswordHash,
		&found.Role,
		&found.PositionID,
		&found.Enabled,
		&found.FirstName,
		&found.LastName,
		&found.Email,
		&found.Phone,
		&found.Address,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.PositionTitle,
	)
	return found, err
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			username, password_hash, role, position_id, enabled,
			first_name, last_name, email, phone, address
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, username, password_hash, role, position_id, enabled,
				  first_name, last_name, email, phone, address,
				  created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		u.Username,
		u.PasswordHash,
		u.Role,
		u.PositionID,
		u.Enabled,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		u.Address,
	).Scan(
		&created.ID,
		&created.Username,
		&created.PasswordHash,
		&created.Role,
		&created.PositionID,
		&created.Enabled,
		&created.FirstName,
		&created.LastName,
		&created.Email,
		&created.Phone,
		&created.Address,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN positions p ON p.id = u.position_id
		WHERE u.id = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// GetByUsername implements user.Repository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN positions p ON p.id = u.position_id
		WHERE u.username = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// GetByRole implements user.Repository.
func (r *userRepositoryImpl) GetByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN positions p ON p.id = u.position_id
		WHERE u.role = $1 AND u.enabled = true
		ORDER BY u.username
	`

	rows, err := q.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		found, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, found)
	}

	return users, rows.Err()
}

// GetByPositionTitles implements user.Repository.
func (r *userRepositoryImpl) GetByPositionTitles(ctx context.Context, titles []string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN positions p ON p.id = u.position_id
		WHERE p.title = ANY($1) AND u.enabled = true
		ORDER BY u.username
	`

	rows, err := q.Query(ctx, query, titles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		found, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, found)
	}

	return users, rows.Err()
}

// ListEnabled implements user.Repository.
func (r *userRepositoryImpl) ListEnabled(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN positions p ON p.id = u.position_id
		WHERE u.enabled = true
		ORDER BY u.username
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		found, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, found)
	}

	return users, rows.Err()
}

// List implements user.Repository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Name != nil && *filter.Name != "" {
		whereClause += fmt.Sprintf(" AND (u.first_name || ' ' || u.last_name) ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Name+"%")
		argIndex++
	}

	if filter.Role != nil && *filter.Role != "" {
		whereClause += fmt.Sprintf(" AND u.role = $%d", argIndex)
		args = append(args, *filter.Role)
		argIndex++
	}

	countQuery := `SELECT COUNT(*) FROM users u` + whereClause

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN positions p ON p.id = u.position_id
	` + whereClause + fmt.Sprintf(" ORDER BY u.username LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		found, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, found)
	}

	return users, totalCount, rows.Err()
}

// Update implements user.Repository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
			address = $5, position_id = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		u.Address,
		u.PositionID,
		u.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePassword implements user.Repository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetEnabled implements user.Repository.
func (r *userRepositoryImpl) SetEnabled(ctx context.Context, id string, enabled bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET enabled = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, enabled, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
