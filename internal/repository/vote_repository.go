package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
)

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Upsert records the user's latest vote direction on a photo.
func (r *voteRepository) Upsert(ctx context.Context, vote *models.PhotoVote) error {
	query := `
		INSERT INTO photo_votes (photo_id, user_id, upvote)
		VALUES ($1, $2, $3)
		ON CONFLICT (photo_id, user_id) DO UPDATE SET upvote = EXCLUDED.upvote, modified_at = NOW()
		RETURNING created_at, modified_at
	`
	row := r.db.QueryRowxContext(ctx, query, vote.PhotoID, vote.UserID, vote.Upvote)
	if err := row.Scan(&vote.CreatedAt, &vote.ModifiedAt); err != nil {
		return wrap("upsert vote", err)
	}
	return nil
}
