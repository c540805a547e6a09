package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"photofeed/internal/logging"
	"photofeed/internal/models"
	"photofeed/internal/notify"
	"photofeed/internal/repository"
	"photofeed/internal/storage"
)

const (
	VoteIncrement = "increment"
	VoteDecrement = "decrement"
)

type CreatePhotoRequest struct {
	OwnerID    string
	FileName   string
	File       io.Reader
	Size       int64
	Caption    string
	Location   string
	Categories []string
	Tags       []string
}

// PatchPhotoRequest carries the admin editable fields. Nil means unchanged.
type PatchPhotoRequest struct {
	Caption    *string  `json:"caption"`
	Location   *string  `json:"location"`
	Public     *bool    `json:"public"`
	Categories *[]int64 `json:"category"`
	Tags       *[]int64 `json:"tag"`
	Feeds      *[]int64 `json:"photoFeed"`
}

type PhotoService interface {
	Create(ctx context.Context, req CreatePhotoRequest) (*models.Photo, error)
	Get(ctx context.Context, photoID int64) (*models.Photo, error)
	Delete(ctx context.Context, caller *models.Principal, photoID int64) error
	Patch(ctx context.Context, caller *models.Principal, photoID int64, req PatchPhotoRequest) (*models.Photo, error)
	Vote(ctx context.Context, caller *models.Principal, photoID int64, operation string) (*models.Photo, error)
	Flag(ctx context.Context, caller *models.Principal, photoID int64) (bool, error)
}

type photoService struct {
	photoRepo          repository.PhotoRepository
	classificationRepo repository.ClassificationRepository
	voteRepo           repository.VoteRepository
	actionRepo         repository.ActionRepository
	userRepo           repository.UserRepository
	storage            storage.Storage
	curation           CurationService
	notifier           Notifier
}

func NewPhotoService(rep *repository.Repository, storage storage.Storage, curation CurationService, notifier Notifier) PhotoService {
	return &photoService{
		photoRepo:          rep.Photo,
		classificationRepo: rep.Classification,
		voteRepo:           rep.Vote,
		actionRepo:         rep.Action,
		userRepo:           rep.User,
		storage:            storage,
		curation:           curation,
		notifier:           notifier,
	}
}

// save persists the photo and runs the post-save hook.
func (s *photoService) save(ctx context.Context, photo *models.Photo) error {
	if err := s.photoRepo.Save(ctx, photo); err != nil {
		return err
	}
	if _, err := s.curation.AfterSave(ctx, photo); err != nil {
		return err
	}
	return nil
}

func (s *photoService) Create(ctx context.Context, req CreatePhotoRequest) (*models.Photo, error) {
	categories, err := s.resolve(ctx, models.ClassificationCategory, req.Categories)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolve(ctx, models.ClassificationTag, req.Tags)
	if err != nil {
		return nil, err
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, req.OwnerID, req.FileName, req.File, req.Size)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	owner := req.OwnerID
	photo := &models.Photo{
		UserID:     &owner,
		ImageURL:   imageURL,
		ObjectName: objectName,
		Caption:    req.Caption,
		Location:   req.Location,
		Public:     true,
		Categories: categories,
		Tags:       tags,
		Feeds:      []int64{},
	}

	if err := s.save(ctx, photo); err != nil {
		if photo.PhotoID == 0 {
			if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
				logging.Ctx(ctx).Warn().Err(delErr).Str("object", objectName).Msg("orphaned upload left in storage")
			}
		}
		return nil, err
	}

	return photo, nil
}

// resolve turns ids or, for tags, names into classification ids.
func (s *photoService) resolve(ctx context.Context, classificationType string, raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if id, err := strconv.ParseInt(value, 10, 64); err == nil {
			ids = append(ids, id)
			continue
		}
		if classificationType != models.ClassificationTag {
			return nil, inputErr(fmt.Sprintf("Invalid %s id %q.", classificationType, value))
		}
		c := &models.PhotoClassification{Name: value, ClassificationType: models.ClassificationTag, Public: true}
		if _, err := s.classificationRepo.CreateOrUpdate(ctx, c); err != nil {
			return nil, err
		}
		ids = append(ids, c.ClassificationID)
	}
	return ids, nil
}

func (s *photoService) Get(ctx context.Context, photoID int64) (*models.Photo, error) {
	return s.photoRepo.GetPublicByID(ctx, photoID)
}

func (s *photoService) Delete(ctx context.Context, caller *models.Principal, photoID int64) error {
	photo, err := s.photoRepo.GetPublicByID(ctx, photoID)
	if err != nil {
		return err
	}

	if photo.UserID == nil || *photo.UserID != caller.UserID {
		return fmt.Errorf("delete photo %d: %w", photoID, ErrForbidden)
	}

	return s.photoRepo.SetPublic(ctx, photoID, false)
}

func (s *photoService) Patch(ctx context.Context, caller *models.Principal, photoID int64, req PatchPhotoRequest) (*models.Photo, error) {
	if !caller.Superuser {
		return nil, fmt.Errorf("patch photo %d: %w", photoID, ErrForbidden)
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	if req.Caption != nil {
		photo.Caption = *req.Caption
	}
	if req.Location != nil {
		photo.Location = *req.Location
	}
	if req.Public != nil {
		photo.Public = *req.Public
	}
	if req.Categories != nil {
		photo.Categories = *req.Categories
	}
	if req.Tags != nil {
		photo.Tags = *req.Tags
	}
	if req.Feeds != nil {
		photo.Feeds = *req.Feeds
	}

	if err := s.save(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

func (s *photoService) Vote(ctx context.Context, caller *models.Principal, photoID int64, operation string) (*models.Photo, error) {
	var delta int
	switch operation {
	case VoteIncrement:
		delta = 1
	case VoteDecrement:
		delta = -1
	case "":
		return nil, inputErr("Missing required field 'operation' in request data.")
	default:
		return nil, inputErr(fmt.Sprintf("Unknown operation %q.", operation))
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	vote := &models.PhotoVote{PhotoID: photoID, UserID: caller.UserID, Upvote: delta > 0}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, err
	}

	if photo.Votes, err = s.photoRepo.AddVotes(ctx, photoID, delta); err != nil {
		return nil, err
	}

	if delta > 0 && photo.UserID != nil && *photo.UserID != caller.UserID {
		if err := s.notifyUpvote(ctx, caller, photo); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("photo_id", photoID).Msg("upvote notification failed")
		}
	}

	return photo, nil
}

func (s *photoService) notifyUpvote(ctx context.Context, caller *models.Principal, photo *models.Photo) error {
	voter, err := s.userRepo.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	owner, err := s.userRepo.GetUserByID(ctx, *photo.UserID)
	if err != nil {
		return err
	}

	s.notifier.Enqueue(notify.Message{
		Action:      models.NotifyUpvote,
		Text:        fmt.Sprintf("%s has upvoted your artwork, %s.", voter.Username, owner.Username),
		ReceiverID:  owner.UserID,
		SenderID:    &voter.UserID,
		ContentType: models.ContentTypePhoto,
		ObjectID:    photo.PhotoID,
	})
	return nil
}

// Flag records a moderation flag once per user. It reports whether this call created it.
func (s *photoService) Flag(ctx context.Context, caller *models.Principal, photoID int64) (bool, error) {
	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return false, err
	}

	exists, err := s.actionRepo.Exists(ctx, caller.UserID, models.ActionPhotoFlag, models.ContentTypePhoto, photoID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = s.actionRepo.Record(ctx, &models.UserAction{
		UserID:      caller.UserID,
		Action:      models.ActionPhotoFlag,
		ContentType: models.ContentTypePhoto,
		ObjectID:    photoID,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
