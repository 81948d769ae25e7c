package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/job"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type jobPositionRepositoryImpl struct {
	db *database.DB
}

func NewJobPositionRepository(db *database.DB) job.PositionRepository {
	return &jobPositionRepositoryImpl{db: db}
}

const jobPositionColumns = `
	id, title, description, requirements, location, employment_type,
	active, posted_date, updated_at
`

func scanJobPosition(row pgx.Row) (job.Position, error) {
	var p job.Position
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Requirements,
		&p.Location,
		&p.EmploymentType,
		&p.Active,
		&p.PostedDate,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements job.PositionRepository.
func (r *jobPositionRepositoryImpl) Create(ctx context.Context, p job.Position) (job.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_positions (title, description, requirements, location, employment_type, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, posted_date, updated_at
	`

	created := p
	err := q.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.Requirements,
		p.Location,
		p.EmploymentType,
		p.Active,
	).Scan(&created.ID, &created.PostedDate, &created.UpdatedAt)
	if err != nil {
		return job.Position{}, err
	}

	return created, nil
}

// GetByID implements job.PositionRepository.
func (r *jobPositionRepositoryImpl) GetByID(ctx context.Context, id string) (job.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + jobPositionColumns + ` FROM job_positions WHERE id = $1`

	found, err := scanJobPosition(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Position{}, job.ErrPositionNotFound
		}
		return job.Position{}, err
	}

	return found, nil
}

// Update implements job.PositionRepository.
func (r *jobPositionRepositoryImpl) Update(ctx context.Context, p job.Position) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE job_positions
		SET title = $1, description = $2, requirements = $3, location = $4,
			employment_type = $5, active = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		p.Title,
		p.Description,
		p.Requirements,
		p.Location,
		p.EmploymentType,
		p.Active,
		p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrPositionNotFound
	}

	return nil
}

// ListActive implements job.PositionRepository.
func (r *jobPositionRepositoryImpl) ListActive(ctx context.Context) ([]job.Position, error) {
	query := `SELECT ` + jobPositionColumns + ` FROM job_positions WHERE active = true ORDER BY posted_date DESC`
	return r.listQuery(ctx, query)
}

// ListAll implements job.PositionRepository.
func (r *jobPositionRepositoryImpl) ListAll(ctx context.Context) ([]job.Position, error) {
	query := `SELECT ` + jobPositionColumns + ` FROM job_positions ORDER BY posted_date DESC`
	return r.listQuery(ctx, query)
}

func (r *jobPositionRepositoryImpl) listQuery(ctx context.Context, query string, args ...interface{}) ([]job.Position, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []job.Position
	for rows.Next() {
		p, err := scanJobPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}
