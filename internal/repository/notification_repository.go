package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Exists(ctx context.Context, action, contentType string, objectID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM push_notification_records
			WHERE action = $1 AND content_type = $2 AND object_id = $3
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, action, contentType, objectID); err != nil {
		return false, wrap("check notification record", err)
	}
	return exists, nil
}

func (r *notificationRepository) Create(ctx context.Context, record *models.PushNotificationRecord) error {
	query := `
		INSERT INTO push_notification_records
			(action, message, device_id, sender_id, receiver_id, content_type, object_id)
		VALUES
			(:action, :message, :device_id, :sender_id, :receiver_id, :content_type, :object_id)
	`
	_, err := r.db.NamedExecContext(ctx, query, record)
	return wrap("create notification record", err)
}
