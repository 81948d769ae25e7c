package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/job"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type jobApplicationRepositoryImpl struct {
	db *database.DB
}

func NewJobApplicationRepository(db *database.DB) job.ApplicationRepository {
	return &jobApplicationRepositoryImpl{db: db}
}

// Resume bytes stay out of every query except GetResume.
const jobApplicationColumns = `
	a.id, a.job_position_id, a.first_name, a.last_name, a.email, a.phone,
	a.resume_file_name, a.status, a.review_notes, a.applied_date, a.updated_at,
	p.title
`

func scanJobApplication(row pgx.Row) (job.Application, error) {
	var a job.Application
	err := row.Scan(
		&a.ID,
		&a.JobPositionID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.ResumeFileName,
		&a.Status,
		&a.ReviewNotes,
		&a.AppliedDate,
		&a.UpdatedAt,
		&a.PositionTitle,
	)
	return a, err
}

// Create implements job.ApplicationRepository.
func (r *jobApplicationRepositoryImpl) Create(ctx context.Context, a job.Application) (job.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_applications (
			job_position_id, first_name, last_name, email, phone,
			resume_file_name, resume, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, applied_date, updated_at
	`

	created := a
	err := q.QueryRow(ctx, query,
		a.JobPositionID,
		a.FirstName,
		a.LastName,
		a.Email,
		a.Phone,
		a.ResumeFileName,
		a.Resume,
		a.Status,
	).Scan(&created.ID, &created.AppliedDate, &created.UpdatedAt)
	if err != nil {
		return job.Application{}, err
	}

	created.Resume = nil
	return created, nil
}

// GetByID implements job.ApplicationRepository.
func (r *jobApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (job.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + jobApplicationColumns + `
		FROM job_applications a
		JOIN job_positions p ON p.id = a.job_position_id
		WHERE a.id = $1
	`

	found, err := scanJobApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Application{}, job.ErrApplicationNotFound
		}
		return job.Application{}, err
	}

	return found, nil
}

// GetResume implements job.ApplicationRepository.
func (r *jobApplicationRepositoryImpl) GetResume(ctx context.Context, id string) ([]byte, string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT resume, resume_file_name FROM job_applications WHERE id = $1`

	var resume []byte
	var fileName *string
	err := q.QueryRow(ctx, query, id).Scan(&resume, &fileName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", job.ErrApplicationNotFound
		}
		return nil, "", err
	}

	name := "resume"
	if fileName != nil {
		name = *fileName
	}

	return resume, name, nil
}

// Update implements job.ApplicationRepository.
func (r *jobApplicationRepositoryImpl) Update(ctx context.Context, a job.Application) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE job_applications
		SET status = $1, review_notes = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, a.Status, a.ReviewNotes, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrApplicationNotFound
	}

	return nil
}

// ListByPosition implements job.ApplicationRepository.
func (r *jobApplicationRepositoryImpl) ListByPosition(ctx context.Context, positionID string) ([]job.Application, error) {
	query := `
		SELECT ` + jobApplicationColumns + `
		FROM job_applications a
		JOIN job_positions p ON p.id = a.job_position_id
		WHERE a.job_position_id = $1
		ORDER BY a.applied_date DESC
	`
	return r.listQuery(ctx, query, positionID)
}

// ListAll implements job.ApplicationRepository.
func (r *jobApplicationRepositoryImpl) ListAll(ctx context.Context) ([]job.Application, error) {
	query := `
		SELECT ` + jobApplicationColumns + `
		FROM job_applications a
		JOIN job_positions p ON p.id = a.job_position_id
		ORDER BY a.applied_date DESC
	`
	return r.listQuery(ctx, query)
}

func (r *jobApplicationRepositoryImpl) listQuery(ctx context.Context, query string, args ...interface{}) ([]job.Application, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []job.Application
	for rows.Next() {
		a, err := scanJobApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}

	return applications, rows.Err()
}
