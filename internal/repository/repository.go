package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
	"photofeed/internal/ranking"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByUsernames(ctx context.Context, usernames []string) ([]models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, email, password string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PhotoRepository interface {
	// Save inserts the photo when PhotoID is zero, otherwise updates it.
	// Non-nil relation slices replace the stored sets.
	Save(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, photoID int64) (*models.Photo, error)
	GetPublicByID(ctx context.Context, photoID int64) (*models.Photo, error)
	SetPublic(ctx context.Context, photoID int64, public bool) error
	AddVotes(ctx context.Context, photoID int64, delta int) (int, error)
	StampCurated(ctx context.Context, photoID int64, feedName string, now time.Time) (bool, error)
}

type RankingRepository interface {
	TopPhotos(ctx context.Context, q RankQuery) ([]models.RankedPhoto, int, error)
}

// RankQuery describes one page of a ranked view.
type RankQuery struct {
	Page      ranking.Page
	Cutoff    *time.Time
	PicksFeed string
	Limit     int
	Offset    int
}

type FeedRepository interface {
	ListPublic(ctx context.Context) ([]models.PhotoFeed, error)
	GetByID(ctx context.Context, feedID int64) (*models.PhotoFeed, error)
	GetOrCreate(ctx context.Context, name string, public bool) (*models.PhotoFeed, error)
	Photos(ctx context.Context, feedID int64, limit, offset int) ([]models.Photo, int, error)
}

type ClassificationRepository interface {
	List(ctx context.Context, classificationType string) ([]models.PhotoClassification, error)
	GetByID(ctx context.Context, classificationID int64) (*models.PhotoClassification, error)
	CreateOrUpdate(ctx context.Context, c *models.PhotoClassification) (bool, error)
	Photos(ctx context.Context, classificationID int64, classificationType string, byVotes bool, limit int) ([]models.Photo, error)
}

type CommentRepository interface {
	ListByPhoto(ctx context.Context, photoID int64) ([]models.PhotoComment, error)
	ListReplies(ctx context.Context, parentID int64) ([]models.PhotoComment, error)
	GetByID(ctx context.Context, commentID int64) (*models.PhotoComment, error)
	FindOrCreate(ctx context.Context, comment *models.PhotoComment) (bool, error)
}

type VoteRepository interface {
	Upsert(ctx context.Context, vote *models.PhotoVote) error
}

type ActionRepository interface {
	Record(ctx context.Context, action *models.UserAction) error
	Exists(ctx context.Context, userID, action, contentType string, objectID int64) (bool, error)
}

type DeviceRepository interface {
	Register(ctx context.Context, device *models.Device) error
	ListActiveByUser(ctx context.Context, userID string) ([]models.Device, error)
}

type NotificationRepository interface {
	Exists(ctx context.Context, action, contentType string, objectID int64) (bool, error)
	Create(ctx context.Context, record *models.PushNotificationRecord) error
}

type HealthRepository interface {
	Ping(ctx context.Context) error
	CountTables(ctx context.Context) (int, error)
}

type Repository struct {
	User           UserRepository
	Photo          PhotoRepository
	Ranking        RankingRepository
	Feed           FeedRepository
	Classification ClassificationRepository
	Comment        CommentRepository
	Vote           VoteRepository
	Action         ActionRepository
	Device         DeviceRepository
	Notification   NotificationRepository
	Health         HealthRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:           NewUserRepository(db),
		Photo:          NewPhotoRepository(db),
		Ranking:        NewRankingRepository(db),
		Feed:           NewFeedRepository(db),
		Classification: NewClassificationRepository(db),
		Comment:        NewCommentRepository(db),
		Vote:           NewVoteRepository(db),
		Action:         NewActionRepository(db),
		Device:         NewDeviceRepository(db),
		Notification:   NewNotificationRepository(db),
		Health:         NewHealthRepository(db),
	}
}
