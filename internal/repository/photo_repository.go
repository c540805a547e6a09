package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"photofeed/internal/models"
)

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

const photoColumns = `photo_id, user_id, image_url, object_name, caption, location, public, votes, created_at, curated_at`

// relation tables keyed by photo_id
const (
	categoriesTable = "photo_categories"
	tagsTable       = "photo_tags"
	feedsTable      = "photo_feed_photos"
)

// Save inserts a new photo or updates an existing one together with its
// category, tag and feed sets. A failed insert leaves PhotoID at zero.
func (r *photoRepository) Save(ctx context.Context, photo *models.Photo) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap("begin photo save", err)
	}
	defer tx.Rollback()

	if photo.PhotoID == 0 {
		query := `
			INSERT INTO photos (user_id, image_url, object_name, caption, location, public)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING photo_id, votes, created_at
		`
		err = tx.QueryRowxContext(ctx, query,
			photo.UserID, photo.ImageURL, photo.ObjectName, photo.Caption, photo.Location, photo.Public,
		).Scan(&photo.PhotoID, &photo.Votes, &photo.CreatedAt)
		if err != nil {
			photo.PhotoID = 0
			return wrap("insert photo", err)
		}
		defer func() {
			if err != nil {
				photo.PhotoID = 0
			}
		}()
	} else {
		query := `UPDATE photos SET caption = $1, location = $2, public = $3 WHERE photo_id = $4`
		res, err := tx.ExecContext(ctx, query, photo.Caption, photo.Location, photo.Public, photo.PhotoID)
		if err != nil {
			return wrap("update photo", err)
		}
		if err := expectRows("update photo", res); err != nil {
			return err
		}
	}

	if photo.Categories != nil {
		if err := replaceSet(ctx, tx, categoriesTable, "classification_id", photo.PhotoID, photo.Categories); err != nil {
			return err
		}
	}
	if photo.Tags != nil {
		if err := replaceSet(ctx, tx, tagsTable, "classification_id", photo.PhotoID, photo.Tags); err != nil {
			return err
		}
	}
	if photo.Feeds != nil {
		if err := replaceSet(ctx, tx, feedsTable, "feed_id", photo.PhotoID, photo.Feeds); err != nil {
			return err
		}
	}

	return wrap("commit photo save", tx.Commit())
}

// replaceSet swaps the photo's rows in a join table for ids.
func replaceSet(ctx context.Context, tx *sqlx.Tx, table, column string, photoID int64, ids []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE photo_id = $1`, photoID); err != nil {
		return wrap("clear "+table, err)
	}
	if len(ids) == 0 {
		return nil
	}

	query := `INSERT INTO ` + table + ` (photo_id, ` + column + `) SELECT $1, UNNEST($2::bigint[]) ON CONFLICT DO NOTHING`
	if _, err := tx.ExecContext(ctx, query, photoID, pq.Array(ids)); err != nil {
		return wrap("fill "+table, err)
	}
	return nil
}

func (r *photoRepository) GetByID(ctx context.Context, photoID int64) (*models.Photo, error) {
	return r.get(ctx, `SELECT `+photoColumns+` FROM photos WHERE photo_id = $1`, photoID)
}

func (r *photoRepository) GetPublicByID(ctx context.Context, photoID int64) (*models.Photo, error) {
	return r.get(ctx, `SELECT `+photoColumns+` FROM photos WHERE photo_id = $1 AND public`, photoID)
}

func (r *photoRepository) get(ctx context.Context, query string, photoID int64) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.GetContext(ctx, &photo, query, photoID); err != nil {
		return nil, wrap("get photo", err)
	}

	var err error
	if photo.Categories, err = r.relationIDs(ctx, categoriesTable, "classification_id", photoID); err != nil {
		return nil, err
	}
	if photo.Tags, err = r.relationIDs(ctx, tagsTable, "classification_id", photoID); err != nil {
		return nil, err
	}
	if photo.Feeds, err = r.relationIDs(ctx, feedsTable, "feed_id", photoID); err != nil {
		return nil, err
	}

	return &photo, nil
}

func (r *photoRepository) relationIDs(ctx context.Context, table, column string, photoID int64) ([]int64, error) {
	ids := []int64{}
	query := `SELECT ` + column + ` FROM ` + table + ` WHERE photo_id = $1 ORDER BY ` + column
	if err := r.db.SelectContext(ctx, &ids, query, photoID); err != nil {
		return nil, wrap("load "+table, err)
	}
	return ids, nil
}

func (r *photoRepository) SetPublic(ctx context.Context, photoID int64, public bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE photos SET public = $1 WHERE photo_id = $2`, public, photoID)
	if err != nil {
		return wrap("set photo visibility", err)
	}
	return expectRows("set photo visibility", res)
}

// AddVotes shifts the vote count by delta, never below zero, and returns the new count.
func (r *photoRepository) AddVotes(ctx context.Context, photoID int64, delta int) (int, error) {
	var votes int
	query := `UPDATE photos SET votes = GREATEST(votes + $1, 0) WHERE photo_id = $2 RETURNING votes`
	if err := r.db.GetContext(ctx, &votes, query, delta, photoID); err != nil {
		return 0, wrap("add votes", err)
	}
	return votes, nil
}

// StampCurated sets curated_at once, only while the photo belongs to the named feed.
// It reports whether this call set the stamp.
func (r *photoRepository) StampCurated(ctx context.Context, photoID int64, feedName string, now time.Time) (bool, error) {
	query := `
		UPDATE photos SET curated_at = $1
		WHERE photo_id = $2
		AND curated_at IS NULL
		AND EXISTS (
			SELECT 1 FROM photo_feed_photos fp
			JOIN photo_feeds f ON f.feed_id = fp.feed_id
			WHERE fp.photo_id = photos.photo_id AND LOWER(f.name) = LOWER($3)
		)
	`

	res, err := r.db.ExecContext(ctx, query, now, photoID, feedName)
	if err != nil {
		return false, wrap("stamp curated", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap("stamp curated: rows affected", err)
	}
	return n == 1, nil
}
