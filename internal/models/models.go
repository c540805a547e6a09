package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	Username               string    `json:"username" db:"username"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	Role                   string    `json:"role" db:"role"`
	IsSuperuser            bool      `json:"isSuperuser" db:"is_superuser"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
}

// Principal is the caller identity carried in the request context.
type Principal struct {
	UserID    string
	Email     string
	Role      string
	Superuser bool
}

type Photo struct {
	PhotoID    int64      `json:"id" db:"photo_id"`
	UserID     *string    `json:"user" db:"user_id"`
	ImageURL   string     `json:"image" db:"image_url"`
	ObjectName string     `json:"-" db:"object_name"`
	Caption    string     `json:"caption" db:"caption"`
	Location   string     `json:"location" db:"location"`
	Public     bool       `json:"public" db:"public"`
	Votes      int        `json:"votes" db:"votes"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	CuratedAt  *time.Time `json:"curatedAt" db:"curated_at"`

	Categories []int64 `json:"category" db:"-"`
	Tags       []int64 `json:"tag" db:"-"`
	Feeds      []int64 `json:"photoFeed" db:"-"`
}

// RankedPhoto is a photo with its query-time engagement tallies.
type RankedPhoto struct {
	Photo
	Actions  int64   `json:"actions" db:"actions"`
	Comments int64   `json:"comments" db:"comments"`
	Score    *int64  `json:"score,omitempty" db:"-"`
	Render   *Render `json:"render,omitempty" db:"-"`
}

// Render names a requested display variant of a photo.
type Render struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type PhotoFeed struct {
	FeedID     int64  `json:"id" db:"feed_id"`
	Name       string `json:"name" db:"name"`
	Public     bool   `json:"public" db:"public"`
	PhotoLimit *int   `json:"photoLimit" db:"photo_limit"`
}

const (
	ClassificationCategory = "category"
	ClassificationTag      = "tag"
)

type PhotoClassification struct {
	ClassificationID   int64  `json:"id" db:"classification_id"`
	Name               string `json:"name" db:"name"`
	ClassificationType string `json:"classificationType" db:"classification_type"`
	Public             bool   `json:"public" db:"public"`
	PhotoCount         int    `json:"photoCount" db:"photo_count"`
}

type PhotoComment struct {
	CommentID  int64          `json:"id" db:"comment_id"`
	PhotoID    int64          `json:"photo" db:"photo_id"`
	UserID     string         `json:"user" db:"user_id"`
	ParentID   *int64         `json:"parent" db:"parent_id"`
	Comment    string         `json:"comment" db:"comment"`
	Votes      int            `json:"votes" db:"votes"`
	Mentions   pq.StringArray `json:"mentions" db:"mentions"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
	ModifiedAt time.Time      `json:"modifiedAt" db:"modified_at"`
}

type PhotoVote struct {
	PhotoID    int64     `json:"photo" db:"photo_id"`
	UserID     string    `json:"user" db:"user_id"`
	Upvote     bool      `json:"upvote" db:"upvote"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt time.Time `json:"modifiedAt" db:"modified_at"`
}

const (
	ActionPhotoClick = "photo_click"
	ActionPhotoImp   = "photo_imp"
	ActionPhotoFlag  = "photo_flag"

	ContentTypePhoto   = "photo"
	ContentTypeComment = "photo_comment"
)

type UserAction struct {
	ActionID    int64     `json:"id" db:"action_id"`
	UserID      string    `json:"user" db:"user_id"`
	Action      string    `json:"action" db:"action"`
	ContentType string    `json:"contentType" db:"content_type"`
	ObjectID    int64     `json:"objectId" db:"object_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Device struct {
	DeviceID       int64     `json:"id" db:"device_id"`
	UserID         string    `json:"user" db:"user_id"`
	RegistrationID string    `json:"registrationId" db:"registration_id"`
	Type           string    `json:"type" db:"type"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Push notification record actions.
const (
	NotifyCuratedPick = "A"
	NotifyComment     = "C"
	NotifyMention     = "T"
	NotifyUpvote      = "U"
)

type PushNotificationRecord struct {
	RecordID    int64     `json:"id" db:"record_id"`
	Action      string    `json:"action" db:"action"`
	Message     string    `json:"message" db:"message"`
	DeviceID    *int64    `json:"device" db:"device_id"`
	SenderID    *string   `json:"sender" db:"sender_id"`
	ReceiverID  *string   `json:"receiver" db:"receiver_id"`
	Viewed      bool      `json:"viewed" db:"viewed"`
	ContentType string    `json:"contentType" db:"content_type"`
	ObjectID    int64     `json:"objectId" db:"object_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
