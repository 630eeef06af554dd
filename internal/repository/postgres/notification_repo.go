package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
)

type NotificationRepo struct{ db repository.DB }

func NewNotificationRepo(db repository.DB) *NotificationRepo { return &NotificationRepo{db: db} }

const notificationCols = `id, user_id, title, message, type, is_read, created_at, data`

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.Data)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) list(ctx context.Context, sql string, args ...any) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return r.list(ctx, `
		SELECT `+notificationCols+` FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *NotificationRepo) ListUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	return r.list(ctx, `
		SELECT `+notificationCols+` FROM notifications
		WHERE user_id = $1 AND is_read = false
		ORDER BY created_at DESC
	`, userID)
}

func (r *NotificationRepo) Get(ctx context.Context, id string) (*models.Notification, error) {
	n, err := scanNotification(r.db.QueryRow(ctx, `
		SELECT `+notificationCols+` FROM notifications WHERE id = $1
	`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return n, err
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	n.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at, data)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, n.ID, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt, n.Data)
	return mapPgError(err)
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	n, err := scanNotification(r.db.QueryRow(ctx, `
		UPDATE notifications SET is_read = true
		WHERE id = $1
		RETURNING `+notificationCols+`
	`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return n, err
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = true
		WHERE user_id = $1 AND is_read = false
	`, userID)
	return err
}

func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
