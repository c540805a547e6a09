package service

import (
	"context"

	"photofeed/internal/models"
	"photofeed/internal/repository"
)

type ActionService interface {
	Record(ctx context.Context, caller *models.Principal, action string, photoID int64) error
}

type actionService struct {
	photoRepo  repository.PhotoRepository
	actionRepo repository.ActionRepository
}

func NewActionService(photoRepo repository.PhotoRepository, actionRepo repository.ActionRepository) ActionService {
	return &actionService{photoRepo: photoRepo, actionRepo: actionRepo}
}

// Record stores an engagement action on a photo. Only click and impression
// actions are accepted here.
func (s *actionService) Record(ctx context.Context, caller *models.Principal, action string, photoID int64) error {
	if action != models.ActionPhotoClick && action != models.ActionPhotoImp {
		return inputErr("Invalid action.")
	}

	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return err
	}

	return s.actionRepo.Record(ctx, &models.UserAction{
		UserID:      caller.UserID,
		Action:      action,
		ContentType: models.ContentTypePhoto,
		ObjectID:    photoID,
	})
}
