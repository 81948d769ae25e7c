package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.Repository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, related_entity_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		n.ID,
		n.RecipientID,
		n.SenderID,
		n.Type,
		n.Title,
		n.Message,
		n.RelatedEntityID,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

// CreateBatch implements notification.Repository. All rows go in a single
// multi-values insert.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*9)

	for i, n := range notifications {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*9+1, i*9+2, i*9+3, i*9+4, i*9+5, i*9+6, i*9+7, i*9+8, i*9+9))
		valueArgs = append(valueArgs,
			n.ID,
			n.RecipientID,
			n.SenderID,
			n.Type,
			n.Title,
			n.Message,
			n.RelatedEntityID,
			n.IsRead,
			n.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, related_entity_id, is_read, created_at)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	_, err := q.Exec(ctx, query, valueArgs...)
	return err
}

// GetByUserID implements notification.Repository.
func (r *notificationRepositoryImpl) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ` WHERE recipient_id = $1`
	if unreadOnly {
		whereClause += ` AND is_read = false`
	}

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM notifications` + whereClause
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, recipient_id, sender_id, type, title, message, related_entity_id,
			   is_read, read_at, created_at
		FROM notifications
	` + whereClause + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.SenderID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.RelatedEntityID,
			&n.IsRead,
			&n.ReadAt,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, &n)
	}

	return notifications, totalCount, rows.Err()
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepositoryImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	if err := q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// MarkAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE id = ANY($1) AND recipient_id = $2 AND is_read = false
	`

	_, err := q.Exec(ctx, query, ids, userID)
	return err
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE recipient_id = $1 AND is_read = false
	`

	_, err := q.Exec(ctx, query, userID)
	return err
}

// Delete implements notification.Repository.
func (r *notificationRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}
