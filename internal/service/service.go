package service

import (
	"context"
	"time"

	"photofeed/internal/config"
	"photofeed/internal/notify"
	"photofeed/internal/repository"
	"photofeed/internal/storage"
)

// Clock returns the current time.
type Clock func() time.Time

// Notifier accepts notifications for asynchronous delivery.
type Notifier interface {
	Enqueue(msg notify.Message) bool
}

// CodeStore keeps one-time codes.
type CodeStore interface {
	Set(ctx context.Context, code, email string) error
	Get(ctx context.Context, code string) (string, error)
	Delete(ctx context.Context, code string) error
}

type Service struct {
	User           UserService
	Auth           AuthService
	Photo          PhotoService
	Curation       CurationService
	Ranking        RankingService
	Comment        CommentService
	Feed           FeedService
	Classification ClassificationService
	Action         ActionService
	Device         DeviceService
	Reset          ResetService
	Health         HealthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, notifier Notifier, codes CodeStore, mailer Mailer) *Service {
	now := Clock(time.Now)
	curation := NewCurationService(rep.Photo, rep.User, rep.Notification, notifier, cfg.PicksFeedName, now)

	return &Service{
		User:           NewUserService(rep.User),
		Auth:           NewAuthService(rep.User, cfg),
		Photo:          NewPhotoService(rep, storage, curation, notifier),
		Curation:       curation,
		Ranking:        NewRankingService(rep.Ranking, cfg.PicksFeedName, now),
		Comment:        NewCommentService(rep.Photo, rep.Comment, rep.User, notifier),
		Feed:           NewFeedService(rep.Feed),
		Classification: NewClassificationService(rep.Classification),
		Action:         NewActionService(rep.Photo, rep.Action),
		Device:         NewDeviceService(rep.Device),
		Reset:          NewResetService(rep.User, codes, mailer),
		Health:         NewHealthService(rep.Health),
	}
}
