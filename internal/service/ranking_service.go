package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"photofeed/internal/metrics"
	"photofeed/internal/models"
	"photofeed/internal/ranking"
	"photofeed/internal/repository"
)

// TopQuery is a request for one page of a ranked view.
type TopQuery struct {
	DisplayPage string
	Paging      ranking.Paging
	Width       int
	Height      int
}

// RankedPage is one page of ranked photos.
type RankedPage struct {
	Count   int
	Paging  ranking.Paging
	HasNext bool
	Results []models.RankedPhoto
}

type RankingService interface {
	Top(ctx context.Context, q TopQuery) (*RankedPage, error)
}

type rankingService struct {
	rankingRepo repository.RankingRepository
	picksFeed   string
	now         Clock
}

func NewRankingService(rankingRepo repository.RankingRepository, picksFeed string, now Clock) RankingService {
	return &rankingService{
		rankingRepo: rankingRepo,
		picksFeed:   picksFeed,
		now:         now,
	}
}

func (s *rankingService) Top(ctx context.Context, q TopQuery) (*RankedPage, error) {
	page, err := ranking.ParsePage(q.DisplayPage)
	if err != nil {
		return nil, err
	}

	limit := q.Paging.Size
	capRows := 0
	if page == ranking.PageTop {
		capRows = ranking.TopLimit
		limit, _ = q.Paging.Clamp(capRows)
	}

	start := time.Now()
	rows, total, err := s.rankingRepo.TopPhotos(ctx, repository.RankQuery{
		Page:      page,
		Cutoff:    page.Cutoff(s.now()),
		PicksFeed: s.picksFeed,
		Limit:     limit,
		Offset:    q.Paging.Offset(),
	})
	metrics.RankingQueryDuration.WithLabelValues(string(page)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if capRows > 0 && total > capRows {
		total = capRows
	}

	for i := range rows {
		if page.Scored() {
			score := ranking.Score(rows[i].Actions, rows[i].Comments)
			rows[i].Score = &score
		}
		if q.Width > 0 && q.Height > 0 {
			rows[i].Render = &models.Render{
				URL:    renderURL(rows[i].ImageURL, q.Width, q.Height),
				Width:  q.Width,
				Height: q.Height,
			}
		}
	}

	return &RankedPage{
		Count:   total,
		Paging:  q.Paging,
		HasNext: q.Paging.HasNext(total),
		Results: rows,
	}, nil
}

// renderURL names a sized variant of an image.
func renderURL(imageURL string, width, height int) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	v := u.Query()
	v.Set("w", strconv.Itoa(width))
	v.Set("h", strconv.Itoa(height))
	u.RawQuery = v.Encode()
	return u.String()
}
