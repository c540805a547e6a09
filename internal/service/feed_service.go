package service

import (
	"context"

	"photofeed/internal/models"
	"photofeed/internal/ranking"
	"photofeed/internal/repository"
)

type FeedService interface {
	List(ctx context.Context) ([]models.PhotoFeed, error)
	Photos(ctx context.Context, feedID int64, paging ranking.Paging) ([]models.Photo, int, error)
}

type feedService struct {
	feedRepo repository.FeedRepository
}

func NewFeedService(feedRepo repository.FeedRepository) FeedService {
	return &feedService{feedRepo: feedRepo}
}

func (s *feedService) List(ctx context.Context) ([]models.PhotoFeed, error) {
	return s.feedRepo.ListPublic(ctx)
}

func (s *feedService) Photos(ctx context.Context, feedID int64, paging ranking.Paging) ([]models.Photo, int, error) {
	feed, err := s.feedRepo.GetByID(ctx, feedID)
	if err != nil {
		return nil, 0, err
	}

	limit := paging.Size
	if feed.PhotoLimit != nil {
		limit, _ = paging.Clamp(*feed.PhotoLimit)
	}

	photos, total, err := s.feedRepo.Photos(ctx, feedID, limit, paging.Offset())
	if err != nil {
		return nil, 0, err
	}

	if feed.PhotoLimit != nil && total > *feed.PhotoLimit {
		total = *feed.PhotoLimit
	}

	return photos, total, nil
}
