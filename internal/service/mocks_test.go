package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"photofeed/internal/models"
	"photofeed/internal/notify"
	"photofeed/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsersByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	args := m.Called(ctx, usernames)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Save(ctx context.Context, photo *models.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, photoID int64) (*models.Photo, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) GetPublicByID(ctx context.Context, photoID int64) (*models.Photo, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) SetPublic(ctx context.Context, photoID int64, public bool) error {
	args := m.Called(ctx, photoID, public)
	return args.Error(0)
}

func (m *MockPhotoRepository) AddVotes(ctx context.Context, photoID int64, delta int) (int, error) {
	args := m.Called(ctx, photoID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockPhotoRepository) StampCurated(ctx context.Context, photoID int64, feedName string, now time.Time) (bool, error) {
	args := m.Called(ctx, photoID, feedName, now)
	return args.Bool(0), args.Error(1)
}

type MockRankingRepository struct {
	mock.Mock
}

func (m *MockRankingRepository) TopPhotos(ctx context.Context, q repository.RankQuery) ([]models.RankedPhoto, int, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.RankedPhoto), args.Int(1), args.Error(2)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ListByPhoto(ctx context.Context, photoID int64) ([]models.PhotoComment, error) {
	args := m.Called(ctx, photoID)
	return args.Get(0).([]models.PhotoComment), args.Error(1)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentID int64) ([]models.PhotoComment, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]models.PhotoComment), args.Error(1)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID int64) (*models.PhotoComment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PhotoComment), args.Error(1)
}

func (m *MockCommentRepository) FindOrCreate(ctx context.Context, comment *models.PhotoComment) (bool, error) {
	args := m.Called(ctx, comment)
	return args.Bool(0), args.Error(1)
}

type MockClassificationRepository struct {
	mock.Mock
}

func (m *MockClassificationRepository) List(ctx context.Context, classificationType string) ([]models.PhotoClassification, error) {
	args := m.Called(ctx, classificationType)
	return args.Get(0).([]models.PhotoClassification), args.Error(1)
}

func (m *MockClassificationRepository) GetByID(ctx context.Context, classificationID int64) (*models.PhotoClassification, error) {
	args := m.Called(ctx, classificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PhotoClassification), args.Error(1)
}

func (m *MockClassificationRepository) CreateOrUpdate(ctx context.Context, c *models.PhotoClassification) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassificationRepository) Photos(ctx context.Context, classificationID int64, classificationType string, byVotes bool, limit int) ([]models.Photo, error) {
	args := m.Called(ctx, classificationID, classificationType, byVotes, limit)
	return args.Get(0).([]models.Photo), args.Error(1)
}

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Upsert(ctx context.Context, vote *models.PhotoVote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

type MockActionRepository struct {
	mock.Mock
}

func (m *MockActionRepository) Record(ctx context.Context, action *models.UserAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockActionRepository) Exists(ctx context.Context, userID, action, contentType string, objectID int64) (bool, error) {
	args := m.Called(ctx, userID, action, contentType, objectID)
	return args.Bool(0), args.Error(1)
}

type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) ListPublic(ctx context.Context) ([]models.PhotoFeed, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PhotoFeed), args.Error(1)
}

func (m *MockFeedRepository) GetByID(ctx context.Context, feedID int64) (*models.PhotoFeed, error) {
	args := m.Called(ctx, feedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PhotoFeed), args.Error(1)
}

func (m *MockFeedRepository) GetOrCreate(ctx context.Context, name string, public bool) (*models.PhotoFeed, error) {
	args := m.Called(ctx, name, public)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PhotoFeed), args.Error(1)
}

func (m *MockFeedRepository) Photos(ctx context.Context, feedID int64, limit, offset int) ([]models.Photo, int, error) {
	args := m.Called(ctx, feedID, limit, offset)
	return args.Get(0).([]models.Photo), args.Int(1), args.Error(2)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Exists(ctx context.Context, action, contentType string, objectID int64) (bool, error) {
	args := m.Called(ctx, action, contentType, objectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, record *models.PushNotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, ownerID string, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, ownerID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) GetImageURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

type MockCodeStore struct {
	mock.Mock
}

func (m *MockCodeStore) Set(ctx context.Context, code, email string) error {
	args := m.Called(ctx, code, email)
	return args.Error(0)
}

func (m *MockCodeStore) Get(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockCodeStore) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendResetCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

type MockCurationService struct {
	mock.Mock
}

func (m *MockCurationService) AfterSave(ctx context.Context, photo *models.Photo) (bool, error) {
	args := m.Called(ctx, photo)
	return args.Bool(0), args.Error(1)
}

// recordingNotifier keeps every enqueued message.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (n *recordingNotifier) Enqueue(msg notify.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return true
}

func (n *recordingNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}

// memPhotoStore is an in-memory PhotoRepository with feed membership.
type memPhotoStore struct {
	mu     sync.Mutex
	nextID int64
	photos map[int64]models.Photo
	feeds  map[int64]string
}

func newMemPhotoStore(feeds map[int64]string) *memPhotoStore {
	return &memPhotoStore{photos: map[int64]models.Photo{}, feeds: feeds}
}

func (s *memPhotoStore) Save(_ context.Context, photo *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if photo.PhotoID == 0 {
		s.nextID++
		photo.PhotoID = s.nextID
		photo.CreatedAt = time.Now()
	} else if stored, ok := s.photos[photo.PhotoID]; ok {
		photo.CuratedAt = stored.CuratedAt
	} else {
		return repository.ErrNotFound
	}

	stored := *photo
	stored.Feeds = append([]int64(nil), photo.Feeds...)
	s.photos[photo.PhotoID] = stored
	return nil
}

func (s *memPhotoStore) GetByID(_ context.Context, photoID int64) (*models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, ok := s.photos[photoID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	photo.Feeds = append([]int64(nil), photo.Feeds...)
	return &photo, nil
}

func (s *memPhotoStore) GetPublicByID(ctx context.Context, photoID int64) (*models.Photo, error) {
	photo, err := s.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if !photo.Public {
		return nil, repository.ErrNotFound
	}
	return photo, nil
}

func (s *memPhotoStore) SetPublic(_ context.Context, photoID int64, public bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, ok := s.photos[photoID]
	if !ok {
		return repository.ErrNotFound
	}
	photo.Public = public
	s.photos[photoID] = photo
	return nil
}

func (s *memPhotoStore) AddVotes(_ context.Context, photoID int64, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, ok := s.photos[photoID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	photo.Votes += delta
	if photo.Votes < 0 {
		photo.Votes = 0
	}
	s.photos[photoID] = photo
	return photo.Votes, nil
}

func (s *memPhotoStore) StampCurated(_ context.Context, photoID int64, feedName string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, ok := s.photos[photoID]
	if !ok || photo.CuratedAt != nil {
		return false, nil
	}
	for _, feedID := range photo.Feeds {
		if s.feeds[feedID] == feedName {
			photo.CuratedAt = &now
			s.photos[photoID] = photo
			return true, nil
		}
	}
	return false, nil
}

func (s *memPhotoStore) curatedAt(photoID int64) *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos[photoID].CuratedAt
}

func stringPtr(s string) *string {
	return &s
}
