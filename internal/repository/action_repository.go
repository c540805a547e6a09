package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
)

type actionRepository struct {
	db *sqlx.DB
}

func NewActionRepository(db *sqlx.DB) ActionRepository {
	return &actionRepository{db: db}
}

func (r *actionRepository) Record(ctx context.Context, action *models.UserAction) error {
	query := `
		INSERT INTO user_actions (user_id, action, content_type, object_id)
		VALUES ($1, $2, $3, $4)
		RETURNING action_id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, action.UserID, action.Action, action.ContentType, action.ObjectID)
	if err := row.Scan(&action.ActionID, &action.CreatedAt); err != nil {
		return wrap("record action", err)
	}
	return nil
}

func (r *actionRepository) Exists(ctx context.Context, userID, action, contentType string, objectID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_actions
			WHERE user_id = $1 AND action = $2 AND content_type = $3 AND object_id = $4
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, userID, action, contentType, objectID); err != nil {
		return false, wrap("check action", err)
	}
	return exists, nil
}
