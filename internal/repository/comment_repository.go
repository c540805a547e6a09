package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `comment_id, photo_id, user_id, parent_id, comment, votes, mentions, created_at, modified_at`

func (r *commentRepository) ListByPhoto(ctx context.Context, photoID int64) ([]models.PhotoComment, error) {
	comments := []models.PhotoComment{}
	query := `SELECT ` + commentColumns + ` FROM photo_comments WHERE photo_id = $1 ORDER BY created_at DESC, comment_id DESC`
	if err := r.db.SelectContext(ctx, &comments, query, photoID); err != nil {
		return nil, wrap("list comments", err)
	}
	return comments, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID int64) ([]models.PhotoComment, error) {
	comments := []models.PhotoComment{}
	query := `SELECT ` + commentColumns + ` FROM photo_comments WHERE parent_id = $1 ORDER BY created_at DESC, comment_id DESC`
	if err := r.db.SelectContext(ctx, &comments, query, parentID); err != nil {
		return nil, wrap("list replies", err)
	}
	return comments, nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.PhotoComment, error) {
	var comment models.PhotoComment
	query := `SELECT ` + commentColumns + ` FROM photo_comments WHERE comment_id = $1`
	if err := r.db.GetContext(ctx, &comment, query, commentID); err != nil {
		return nil, wrap("get comment", err)
	}
	return &comment, nil
}

// FindOrCreate reuses an identical comment by the same user on the same parent.
// It fills comment from the stored row and reports whether one was created.
func (r *commentRepository) FindOrCreate(ctx context.Context, comment *models.PhotoComment) (bool, error) {
	find := `
		SELECT ` + commentColumns + ` FROM photo_comments
		WHERE user_id = $1 AND photo_id = $2 AND comment = $3 AND parent_id IS NOT DISTINCT FROM $4
		ORDER BY comment_id LIMIT 1
	`
	var existing models.PhotoComment
	err := r.db.GetContext(ctx, &existing, find, comment.UserID, comment.PhotoID, comment.Comment, comment.ParentID)
	if err == nil {
		*comment = existing
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, wrap("find comment", err)
	}

	if comment.Mentions == nil {
		comment.Mentions = []string{}
	}

	insert := `
		INSERT INTO photo_comments (photo_id, user_id, parent_id, comment, mentions)
		VALUES (:photo_id, :user_id, :parent_id, :comment, :mentions)
		RETURNING comment_id, votes, created_at, modified_at
	`
	rows, err := r.db.NamedQueryContext(ctx, insert, comment)
	if err != nil {
		return false, wrap("create comment", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&comment.CommentID, &comment.Votes, &comment.CreatedAt, &comment.ModifiedAt); err != nil {
			return false, wrap("scan comment", err)
		}
	}
	return true, wrap("create comment", rows.Err())
}
