package service

import (
	"context"
	"fmt"

	"photofeed/internal/logging"
	"photofeed/internal/metrics"
	"photofeed/internal/models"
	"photofeed/internal/notify"
	"photofeed/internal/repository"
)

// CurationService runs after every photo save.
type CurationService interface {
	// AfterSave stamps the photo the first time it is seen in the curated
	// feed and notifies the owner. It reports whether this call stamped it.
	AfterSave(ctx context.Context, photo *models.Photo) (bool, error)
}

type curationService struct {
	photoRepo  repository.PhotoRepository
	userRepo   repository.UserRepository
	recordRepo repository.NotificationRepository
	notifier   Notifier
	feedName   string
	now        Clock
}

func NewCurationService(
	photoRepo repository.PhotoRepository,
	userRepo repository.UserRepository,
	recordRepo repository.NotificationRepository,
	notifier Notifier,
	feedName string,
	now Clock,
) CurationService {
	return &curationService{
		photoRepo:  photoRepo,
		userRepo:   userRepo,
		recordRepo: recordRepo,
		notifier:   notifier,
		feedName:   feedName,
		now:        now,
	}
}

type curationHookKey struct{}

func (s *curationService) AfterSave(ctx context.Context, photo *models.Photo) (bool, error) {
	if ctx.Value(curationHookKey{}) != nil {
		return false, nil
	}
	ctx = context.WithValue(ctx, curationHookKey{}, true)

	if photo.CuratedAt != nil {
		return false, nil
	}

	now := s.now()
	stamped, err := s.photoRepo.StampCurated(ctx, photo.PhotoID, s.feedName, now)
	if err != nil {
		return false, fmt.Errorf("stamp photo %d: %w", photo.PhotoID, err)
	}
	if !stamped {
		return false, nil
	}

	photo.CuratedAt = &now
	metrics.CuratedStamps.Inc()
	logging.Ctx(ctx).Info().Int64("photo_id", photo.PhotoID).Str("feed", s.feedName).Msg("photo curated")

	if photo.UserID == nil {
		return true, nil
	}

	// the stamp is already committed, so a failed notification only gets logged
	if err := s.notifyOwner(ctx, photo); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("photo_id", photo.PhotoID).Msg("curation notification failed")
	}

	return true, nil
}

func (s *curationService) notifyOwner(ctx context.Context, photo *models.Photo) error {
	sent, err := s.recordRepo.Exists(ctx, models.NotifyCuratedPick, models.ContentTypePhoto, photo.PhotoID)
	if err != nil {
		return err
	}
	if sent {
		return nil
	}

	owner, err := s.userRepo.GetUserByID(ctx, *photo.UserID)
	if err != nil {
		return fmt.Errorf("load owner: %w", err)
	}

	s.notifier.Enqueue(notify.Message{
		Action:      models.NotifyCuratedPick,
		Text:        fmt.Sprintf("Your artwork has been featured in the %s gallery, %s!", s.feedName, owner.Username),
		ReceiverID:  owner.UserID,
		ContentType: models.ContentTypePhoto,
		ObjectID:    photo.PhotoID,
	})

	return nil
}
