package service

import (
	"context"
	"fmt"
	"strings"

	"photofeed/internal/logging"
	"photofeed/internal/models"
	"photofeed/internal/notify"
	"photofeed/internal/repository"
)

const missingComment = "Missing required field 'comment' in request data."

type CommentRequest struct {
	Comment  string
	Mentions []string
}

type CommentService interface {
	List(ctx context.Context, photoID int64) ([]models.PhotoComment, error)
	Create(ctx context.Context, caller *models.Principal, photoID int64, req CommentRequest) (*models.PhotoComment, bool, error)
	Reply(ctx context.Context, caller *models.Principal, photoID, parentID int64, req CommentRequest) (*models.PhotoComment, bool, error)
}

type commentService struct {
	photoRepo   repository.PhotoRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewCommentService(
	photoRepo repository.PhotoRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) CommentService {
	return &commentService{
		photoRepo:   photoRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (s *commentService) List(ctx context.Context, photoID int64) ([]models.PhotoComment, error) {
	if _, err := s.photoRepo.GetPublicByID(ctx, photoID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPhoto(ctx, photoID)
}

func (s *commentService) Create(ctx context.Context, caller *models.Principal, photoID int64, req CommentRequest) (*models.PhotoComment, bool, error) {
	return s.post(ctx, caller, photoID, nil, req)
}

func (s *commentService) Reply(ctx context.Context, caller *models.Principal, photoID, parentID int64, req CommentRequest) (*models.PhotoComment, bool, error) {
	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, false, err
	}
	if parent.PhotoID != photoID {
		return nil, false, fmt.Errorf("comment %d on photo %d: %w", parentID, photoID, repository.ErrNotFound)
	}
	return s.post(ctx, caller, photoID, parent, req)
}

func (s *commentService) post(ctx context.Context, caller *models.Principal, photoID int64, parent *models.PhotoComment, req CommentRequest) (*models.PhotoComment, bool, error) {
	text := strings.TrimSpace(req.Comment)
	if text == "" {
		return nil, false, inputErr(missingComment)
	}

	photo, err := s.photoRepo.GetPublicByID(ctx, photoID)
	if err != nil {
		return nil, false, err
	}

	comment := &models.PhotoComment{
		PhotoID:  photoID,
		UserID:   caller.UserID,
		Comment:  text,
		Mentions: req.Mentions,
	}
	if parent != nil {
		comment.ParentID = &parent.CommentID
	}

	created, err := s.commentRepo.FindOrCreate(ctx, comment)
	if err != nil {
		return nil, false, err
	}

	if created {
		if err := s.notify(ctx, caller, photo, parent, comment); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("comment_id", comment.CommentID).Msg("comment notification failed")
		}
	}

	return comment, created, nil
}

// notify tells the photo owner, the replied-to author and every mentioned
// user about a new comment. Nobody is notified about their own action.
func (s *commentService) notify(ctx context.Context, caller *models.Principal, photo *models.Photo, parent *models.PhotoComment, comment *models.PhotoComment) error {
	author, err := s.userRepo.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return err
	}

	send := func(action string, receiver *models.User, text string) {
		s.notifier.Enqueue(notify.Message{
			Action:      action,
			Text:        text,
			ReceiverID:  receiver.UserID,
			SenderID:    &author.UserID,
			ContentType: models.ContentTypePhoto,
			ObjectID:    photo.PhotoID,
		})
	}

	if photo.UserID != nil && *photo.UserID != author.UserID {
		owner, err := s.userRepo.GetUserByID(ctx, *photo.UserID)
		if err != nil {
			return err
		}
		send(models.NotifyComment, owner, fmt.Sprintf("%s has commented on your artwork, %s.", author.Username, owner.Username))
	}

	if parent != nil && parent.UserID != author.UserID {
		commenter, err := s.userRepo.GetUserByID(ctx, parent.UserID)
		if err != nil {
			return err
		}
		send(models.NotifyComment, commenter, fmt.Sprintf("%s replied to your comment, %s.", author.Username, commenter.Username))
	}

	if len(comment.Mentions) == 0 {
		return nil
	}

	mentioned, err := s.userRepo.GetUsersByUsernames(ctx, comment.Mentions)
	if err != nil {
		return err
	}
	for i := range mentioned {
		if mentioned[i].UserID == author.UserID {
			continue
		}
		send(models.NotifyMention, &mentioned[i], fmt.Sprintf("%s mentioned you in a comment, %s.", author.Username, mentioned[i].Username))
	}

	return nil
}
