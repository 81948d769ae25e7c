package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/announcement"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.Repository {
	return &announcementRepositoryImpl{db: db}
}

const announcementColumns = `
	a.id, a.title, a.content, a.priority, a.active, a.created_by_id,
	a.created_at, a.updated_at, u.first_name || ' ' || u.last_name
`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Priority,
		&a.Active,
		&a.CreatedByID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.CreatedByName,
	)
	return a, err
}

// Create implements announcement.Repository.
func (r *announcementRepositoryImpl) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO announcements (title, content, priority, active, created_by_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	created := a
	err := q.QueryRow(ctx, query,
		a.Title,
		a.Content,
		a.Priority,
		a.Active,
		a.CreatedByID,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return announcement.Announcement{}, err
	}

	return created, nil
}

// GetByID implements announcement.Repository.
func (r *announcementRepositoryImpl) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + announcementColumns + `
		FROM announcements a
		JOIN users u ON u.id = a.created_by_id
		WHERE a.id = $1
	`

	found, err := scanAnnouncement(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, err
	}

	return found, nil
}

// Update implements announcement.Repository.
func (r *announcementRepositoryImpl) Update(ctx context.Context, a announcement.Announcement) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE announcements
		SET title = $1, content = $2, priority = $3, active = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, a.Title, a.Content, a.Priority, a.Active, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}

// ListActive implements announcement.Repository.
func (r *announcementRepositoryImpl) ListActive(ctx context.Context) ([]announcement.Announcement, error) {
	query := `
		SELECT ` + announcementColumns + `
		FROM announcements a
		JOIN users u ON u.id = a.created_by_id
		WHERE a.active = true
		ORDER BY a.created_at DESC
	`
	return r.listQuery(ctx, query)
}

// ListAll implements announcement.Repository.
func (r *announcementRepositoryImpl) ListAll(ctx context.Context) ([]announcement.Announcement, error) {
	query := `
		SELECT ` + announcementColumns + `
		FROM announcements a
		JOIN users u ON u.id = a.created_by_id
		ORDER BY a.created_at DESC
	`
	return r.listQuery(ctx, query)
}

func (r *announcementRepositoryImpl) listQuery(ctx context.Context, query string, args ...interface{}) ([]announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}

	return announcements, rows.Err()
}

// Delete implements announcement.Repository.
func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}
