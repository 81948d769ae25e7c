package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type passwordResetTokenRepositoryImpl struct {
	db *database.DB
}

func NewPasswordResetTokenRepository(db *database.DB) auth.PasswordResetTokenRepository {
	return &passwordResetTokenRepositoryImpl{db: db}
}

// Create implements auth.PasswordResetTokenRepository.
func (r *passwordResetTokenRepositoryImpl) Create(ctx context.Context, t auth.PasswordResetToken) (auth.PasswordResetToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO password_reset_tokens (user_id, token, expiry_date, used)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	created := t
	err := q.QueryRow(ctx, query, t.UserID, t.Token, t.ExpiryDate, t.Used).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return auth.PasswordResetToken{}, err
	}

	return created, nil
}

// GetByToken implements auth.PasswordResetTokenRepository.
func (r *passwordResetTokenRepositoryImpl) GetByToken(ctx context.Context, token string) (auth.PasswordResetToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token, expiry_date, used, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`

	var found auth.PasswordResetToken
	err := q.QueryRow(ctx, query, token).Scan(
		&found.ID,
		&found.UserID,
		&found.Token,
		&found.ExpiryDate,
		&found.Used,
		&found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.PasswordResetToken{}, auth.ErrInvalidToken
		}
		return auth.PasswordResetToken{}, err
	}

	return found, nil
}

// MarkUsed implements auth.PasswordResetTokenRepository.
func (r *passwordResetTokenRepositoryImpl) MarkUsed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE password_reset_tokens SET used = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrInvalidToken
	}

	return nil
}

// InvalidateForUser implements auth.PasswordResetTokenRepository.
func (r *passwordResetTokenRepositoryImpl) InvalidateForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE password_reset_tokens SET used = true WHERE user_id = $1 AND used = false`, userID)
	return err
}

// DeleteExpired implements auth.PasswordResetTokenRepository.
func (r *passwordResetTokenRepositoryImpl) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expiry_date < $1`, cutoff)
	return err
}
