package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
	"photofeed/internal/ranking"
)

type rankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) RankingRepository {
	return &rankingRepository{db: db}
}

const (
	engagementActions = `(SELECT COUNT(DISTINCT ua.action_id) FROM user_actions ua
		WHERE ua.content_type = 'photo' AND ua.object_id = p.photo_id
		AND ua.action IN ('photo_click', 'photo_imp'))`

	distinctComments = `(SELECT COUNT(DISTINCT pc.comment_id) FROM photo_comments pc
		WHERE pc.photo_id = p.photo_id)`

	hasCategory = `EXISTS (SELECT 1 FROM photo_categories c WHERE c.photo_id = p.photo_id)`

	inFeed = `EXISTS (SELECT 1 FROM photo_feed_photos fp
		JOIN photo_feeds f ON f.feed_id = fp.feed_id
		WHERE fp.photo_id = p.photo_id AND LOWER(f.name) = LOWER(%s))`
)

// rankOrder is the ORDER BY applied to the ranked subquery per page.
func rankOrder(page ranking.Page) string {
	switch page {
	case ranking.PageAll, ranking.PageWeekly:
		return fmt.Sprintf("actions + %d * comments DESC, created_at DESC, photo_id DESC", ranking.CommentWeight)
	case ranking.PagePopular:
		return "actions DESC, created_at DESC, photo_id DESC"
	case ranking.PagePicks:
		return "curated_at DESC, photo_id DESC"
	default:
		return "votes DESC, created_at DESC, photo_id DESC"
	}
}

// rankFilter builds the WHERE clause and its positional args.
func rankFilter(q RankQuery) (string, []any) {
	conds := []string{"p.public"}
	var args []any

	if q.Page == ranking.PagePicks {
		args = append(args, q.PicksFeed)
		conds = append(conds, "p.curated_at IS NOT NULL", fmt.Sprintf(inFeed, fmt.Sprintf("$%d", len(args))))
	} else {
		conds = append(conds, hasCategory)
	}

	if q.Cutoff != nil {
		args = append(args, *q.Cutoff)
		conds = append(conds, fmt.Sprintf("p.created_at >= $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// TopPhotos returns one page of the ranked view and the total number of matching photos.
func (r *rankingRepository) TopPhotos(ctx context.Context, q RankQuery) ([]models.RankedPhoto, int, error) {
	where, args := rankFilter(q)

	var total int
	countQuery := `SELECT COUNT(*) FROM photos p WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, wrap("count ranked photos", err)
	}

	photos := []models.RankedPhoto{}
	if total == 0 || q.Limit <= 0 {
		return photos, total, nil
	}

	query := fmt.Sprintf(`
		SELECT * FROM (
			SELECT p.photo_id, p.user_id, p.image_url, p.object_name, p.caption, p.location,
				p.public, p.votes, p.created_at, p.curated_at,
				%s AS actions,
				%s AS comments
			FROM photos p
			WHERE %s
		) ranked
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, engagementActions, distinctComments, where, rankOrder(q.Page), len(args)+1, len(args)+2)

	pageArgs := append(append([]any{}, args...), q.Limit, q.Offset)
	if err := r.db.SelectContext(ctx, &photos, query, pageArgs...); err != nil {
		return nil, 0, wrap("select ranked photos", err)
	}

	return photos, total, nil
}
