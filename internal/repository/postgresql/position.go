package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/position"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.Repository {
	return &positionRepositoryImpl{db: db}
}

// Create implements position.Repository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (title, description)
		VALUES ($1, $2)
		RETURNING id, title, description, created_at, updated_at
	`

	var created position.Position
	err := q.QueryRow(ctx, query, p.Title, p.Description).Scan(
		&created.ID,
		&created.Title,
		&created.Description,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return position.Position{}, err
	}

	return created, nil
}

// GetByID implements position.Repository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, description, created_at, updated_at
		FROM positions
		WHERE id = $1
	`

	var found position.Position
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Title,
		&found.Description,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, err
	}

	return found, nil
}

// GetByTitle implements position.Repository.
func (r *positionRepositoryImpl) GetByTitle(ctx context.Context, title string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, description, created_at, updated_at
		FROM positions
		WHERE title = $1
	`

	var found position.Position
	err := q.QueryRow(ctx, query, title).Scan(
		&found.ID,
		&found.Title,
		&found.Description,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, err
	}

	return found, nil
}

// List implements position.Repository.
func (r *positionRepositoryImpl) List(ctx context.Context) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, description, created_at, updated_at
		FROM positions
		ORDER BY title
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

// Update implements position.Repository.
func (r *positionRepositoryImpl) Update(ctx context.Context, p position.Position) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, p.Title, p.Description, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// Delete implements position.Repository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}
