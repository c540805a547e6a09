package service

import (
	"context"
	"fmt"
	"strings"

	"photofeed/internal/models"
	"photofeed/internal/repository"
)

const (
	TabRecent   = "recent"
	TabFeatured = "featured"

	// defaultFeaturedLength is how many photos the featured tab returns.
	defaultFeaturedLength = 100
)

type CreateClassificationRequest struct {
	Name               string `json:"name" validate:"required,max=255"`
	ClassificationType string `json:"classificationType"`
	Public             *bool  `json:"public"`
}

type ClassificationPhotosQuery struct {
	ClassificationType string
	DisplayTab         string
	Length             int
}

type ClassificationService interface {
	List(ctx context.Context, classificationType string) ([]models.PhotoClassification, error)
	Create(ctx context.Context, req CreateClassificationRequest) (*models.PhotoClassification, bool, error)
	Photos(ctx context.Context, classificationID int64, q ClassificationPhotosQuery) ([]models.Photo, error)
}

type classificationService struct {
	classificationRepo repository.ClassificationRepository
}

func NewClassificationService(classificationRepo repository.ClassificationRepository) ClassificationService {
	return &classificationService{classificationRepo: classificationRepo}
}

func validType(classificationType string) bool {
	return classificationType == models.ClassificationCategory || classificationType == models.ClassificationTag
}

func (s *classificationService) List(ctx context.Context, classificationType string) ([]models.PhotoClassification, error) {
	if classificationType != "" && !validType(classificationType) {
		return nil, inputErr(fmt.Sprintf("Invalid classification %q.", classificationType))
	}
	return s.classificationRepo.List(ctx, classificationType)
}

// Create adds or updates a public tag. Categories are curated elsewhere.
func (s *classificationService) Create(ctx context.Context, req CreateClassificationRequest) (*models.PhotoClassification, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, false, inputErr("Missing required field 'name' in request data.")
	}

	classificationType := strings.ToLower(strings.TrimSpace(req.ClassificationType))
	if classificationType == "" {
		classificationType = models.ClassificationTag
	}
	if classificationType != models.ClassificationTag {
		return nil, false, inputErr("Only tags can be created.")
	}
	if req.Public != nil && !*req.Public {
		return nil, false, inputErr("Tags must be public.")
	}

	c := &models.PhotoClassification{
		Name:               name,
		ClassificationType: classificationType,
		Public:             true,
	}

	created, err := s.classificationRepo.CreateOrUpdate(ctx, c)
	if err != nil {
		return nil, false, err
	}

	return c, created, nil
}

func (s *classificationService) Photos(ctx context.Context, classificationID int64, q ClassificationPhotosQuery) ([]models.Photo, error) {
	classification, err := s.classificationRepo.GetByID(ctx, classificationID)
	if err != nil {
		return nil, err
	}

	classificationType := q.ClassificationType
	if classificationType == "" {
		classificationType = classification.ClassificationType
	}
	if !validType(classificationType) {
		return nil, inputErr(fmt.Sprintf("Invalid classification %q.", classificationType))
	}
	if classificationType != classification.ClassificationType {
		return []models.Photo{}, nil
	}

	switch q.DisplayTab {
	case TabRecent:
		return s.classificationRepo.Photos(ctx, classificationID, classificationType, false, 0)
	case "", TabFeatured:
		length := q.Length
		if length <= 0 {
			length = defaultFeaturedLength
		}
		return s.classificationRepo.Photos(ctx, classificationID, classificationType, true, length)
	default:
		return nil, inputErr(fmt.Sprintf("Invalid display_tab %q.", q.DisplayTab))
	}
}
