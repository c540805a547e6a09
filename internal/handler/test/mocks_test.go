package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"photofeed/internal/models"
	"photofeed/internal/ranking"
	"photofeed/internal/repository"
	"photofeed/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) PrincipalFromToken(token string) (*models.Principal, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Principal), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) Create(ctx context.Context, req service.CreatePhotoRequest) (*models.Photo, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoService) Get(ctx context.Context, photoID int64) (*models.Photo, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoService) Delete(ctx context.Context, caller *models.Principal, photoID int64) error {
	args := m.Called(ctx, caller, photoID)
	return args.Error(0)
}

func (m *MockPhotoService) Patch(ctx context.Context, caller *models.Principal, photoID int64, req service.PatchPhotoRequest) (*models.Photo, error) {
	args := m.Called(ctx, caller, photoID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoService) Vote(ctx context.Context, caller *models.Principal, photoID int64, operation string) (*models.Photo, error) {
	args := m.Called(ctx, caller, photoID, operation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoService) Flag(ctx context.Context, caller *models.Principal, photoID int64) (bool, error) {
	args := m.Called(ctx, caller, photoID)
	return args.Bool(0), args.Error(1)
}

type MockRankingService struct {
	mock.Mock
}

func (m *MockRankingService) Top(ctx context.Context, q service.TopQuery) (*service.RankedPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RankedPage), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context, photoID int64) ([]models.PhotoComment, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PhotoComment), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, caller *models.Principal, photoID int64, req service.CommentRequest) (*models.PhotoComment, bool, error) {
	args := m.Called(ctx, caller, photoID, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.PhotoComment), args.Bool(1), args.Error(2)
}

func (m *MockCommentService) Reply(ctx context.Context, caller *models.Principal, photoID, parentID int64, req service.CommentRequest) (*models.PhotoComment, bool, error) {
	args := m.Called(ctx, caller, photoID, parentID, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.PhotoComment), args.Bool(1), args.Error(2)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) List(ctx context.Context) ([]models.PhotoFeed, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PhotoFeed), args.Error(1)
}

func (m *MockFeedService) Photos(ctx context.Context, feedID int64, paging ranking.Paging) ([]models.Photo, int, error) {
	args := m.Called(ctx, feedID, paging)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Photo), args.Int(1), args.Error(2)
}

type MockClassificationService struct {
	mock.Mock
}

func (m *MockClassificationService) List(ctx context.Context, classificationType string) ([]models.PhotoClassification, error) {
	args := m.Called(ctx, classificationType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PhotoClassification), args.Error(1)
}

func (m *MockClassificationService) Create(ctx context.Context, req service.CreateClassificationRequest) (*models.PhotoClassification, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.PhotoClassification), args.Bool(1), args.Error(2)
}

func (m *MockClassificationService) Photos(ctx context.Context, classificationID int64, q service.ClassificationPhotosQuery) ([]models.Photo, error) {
	args := m.Called(ctx, classificationID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Photo), args.Error(1)
}

type MockActionService struct {
	mock.Mock
}

func (m *MockActionService) Record(ctx context.Context, caller *models.Principal, action string, photoID int64) error {
	args := m.Called(ctx, caller, action, photoID)
	return args.Error(0)
}

type MockDeviceService struct {
	mock.Mock
}

func (m *MockDeviceService) Register(ctx context.Context, caller *models.Principal, req service.RegisterDeviceRequest) (*models.Device, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Device), args.Error(1)
}

func (m *MockDeviceService) List(ctx context.Context, caller *models.Principal) ([]models.Device, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]models.Device), args.Error(1)
}

type MockResetService struct {
	mock.Mock
}

func (m *MockResetService) Request(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockResetService) Confirm(ctx context.Context, code, password string) error {
	args := m.Called(ctx, code, password)
	return args.Error(0)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) (*service.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HealthStatus), args.Error(1)
}
