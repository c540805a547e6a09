package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
)

type classificationRepository struct {
	db *sqlx.DB
}

func NewClassificationRepository(db *sqlx.DB) ClassificationRepository {
	return &classificationRepository{db: db}
}

// joinTable returns the photo relation for a classification type.
func joinTable(classificationType string) string {
	if classificationType == models.ClassificationTag {
		return tagsTable
	}
	return categoriesTable
}

// List returns public classifications, optionally of one type, most used first.
func (r *classificationRepository) List(ctx context.Context, classificationType string) ([]models.PhotoClassification, error) {
	out := []models.PhotoClassification{}
	query := `
		SELECT c.classification_id, c.name, c.classification_type, c.public,
			(SELECT COUNT(*) FROM photo_categories pc WHERE pc.classification_id = c.classification_id) +
			(SELECT COUNT(*) FROM photo_tags pt WHERE pt.classification_id = c.classification_id) AS photo_count
		FROM photo_classifications c
		WHERE c.public AND ($1 = '' OR c.classification_type = $1)
		ORDER BY photo_count DESC, c.name
	`
	if err := r.db.SelectContext(ctx, &out, query, classificationType); err != nil {
		return nil, wrap("list classifications", err)
	}
	return out, nil
}

func (r *classificationRepository) GetByID(ctx context.Context, classificationID int64) (*models.PhotoClassification, error) {
	var c models.PhotoClassification
	query := `
		SELECT classification_id, name, classification_type, public, 0 AS photo_count
		FROM photo_classifications WHERE classification_id = $1
	`
	if err := r.db.GetContext(ctx, &c, query, classificationID); err != nil {
		return nil, wrap("get classification", err)
	}
	return &c, nil
}

// CreateOrUpdate matches on name case-insensitively within a type.
// It fills c from the stored row and reports whether a row was created.
func (r *classificationRepository) CreateOrUpdate(ctx context.Context, c *models.PhotoClassification) (bool, error) {
	var created bool
	query := `
		INSERT INTO photo_classifications (name, classification_type, public)
		VALUES ($1, $2, $3)
		ON CONFLICT ((LOWER(name)), classification_type) DO UPDATE SET public = EXCLUDED.public
		RETURNING classification_id, name, (xmax = 0) AS created
	`
	row := r.db.QueryRowxContext(ctx, query, c.Name, c.ClassificationType, c.Public)
	if err := row.Scan(&c.ClassificationID, &c.Name, &created); err != nil {
		return false, wrap("create or update classification", err)
	}
	return created, nil
}

// Photos lists public photos of a classification, newest first or by votes.
// A limit of zero or less returns every photo.
func (r *classificationRepository) Photos(ctx context.Context, classificationID int64, classificationType string, byVotes bool, limit int) ([]models.Photo, error) {
	order := "p.created_at DESC, p.photo_id DESC"
	if byVotes {
		order = "p.votes DESC, p.photo_id DESC"
	}

	photos := []models.Photo{}
	query := `
		SELECT p.photo_id, p.user_id, p.image_url, p.object_name, p.caption, p.location,
			p.public, p.votes, p.created_at, p.curated_at
		FROM photos p
		JOIN ` + joinTable(classificationType) + ` j ON j.photo_id = p.photo_id
		WHERE j.classification_id = $1 AND p.public
		ORDER BY ` + order + `
		LIMIT $2
	`

	var rowLimit any
	if limit > 0 {
		rowLimit = limit
	}

	if err := r.db.SelectContext(ctx, &photos, query, classificationID, rowLimit); err != nil {
		return nil, wrap("list classification photos", err)
	}
	return photos, nil
}
