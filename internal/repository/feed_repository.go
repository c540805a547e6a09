package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
)

type feedRepository struct {
	db *sqlx.DB
}

func NewFeedRepository(db *sqlx.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) ListPublic(ctx context.Context) ([]models.PhotoFeed, error) {
	feeds := []models.PhotoFeed{}
	query := `SELECT feed_id, name, public, photo_limit FROM photo_feeds WHERE public ORDER BY feed_id`
	if err := r.db.SelectContext(ctx, &feeds, query); err != nil {
		return nil, wrap("list feeds", err)
	}
	return feeds, nil
}

func (r *feedRepository) GetByID(ctx context.Context, feedID int64) (*models.PhotoFeed, error) {
	var feed models.PhotoFeed
	query := `SELECT feed_id, name, public, photo_limit FROM photo_feeds WHERE feed_id = $1`
	if err := r.db.GetContext(ctx, &feed, query, feedID); err != nil {
		return nil, wrap("get feed", err)
	}
	return &feed, nil
}

// GetOrCreate matches the feed name case-insensitively.
func (r *feedRepository) GetOrCreate(ctx context.Context, name string, public bool) (*models.PhotoFeed, error) {
	var feed models.PhotoFeed
	query := `
		INSERT INTO photo_feeds (name, public) VALUES ($1, $2)
		ON CONFLICT ((LOWER(name))) DO UPDATE SET name = photo_feeds.name
		RETURNING feed_id, name, public, photo_limit
	`
	if err := r.db.GetContext(ctx, &feed, query, name, public); err != nil {
		return nil, wrap("get or create feed", err)
	}
	return &feed, nil
}

// Photos lists the public photos of a feed by votes.
func (r *feedRepository) Photos(ctx context.Context, feedID int64, limit, offset int) ([]models.Photo, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM photos p
		JOIN photo_feed_photos fp ON fp.photo_id = p.photo_id
		WHERE fp.feed_id = $1 AND p.public
	`
	if err := r.db.GetContext(ctx, &total, countQuery, feedID); err != nil {
		return nil, 0, wrap("count feed photos", err)
	}

	photos := []models.Photo{}
	query := `
		SELECT p.photo_id, p.user_id, p.image_url, p.object_name, p.caption, p.location,
			p.public, p.votes, p.created_at, p.curated_at
		FROM photos p
		JOIN photo_feed_photos fp ON fp.photo_id = p.photo_id
		WHERE fp.feed_id = $1 AND p.public
		ORDER BY p.votes DESC, p.photo_id DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &photos, query, feedID, limit, offset); err != nil {
		return nil, 0, wrap("list feed photos", err)
	}
	return photos, total, nil
}
