package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photofeed/internal/models"
)

var commentRowColumns = []string{
	"comment_id", "photo_id", "user_id", "parent_id", "comment", "votes", "mentions", "created_at", "modified_at",
}

func TestCommentRepository_FindOrCreate(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	t.Run("reuses an identical comment", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewCommentRepository(db)

		mock.ExpectQuery(`FROM photo_comments WHERE user_id = \$1 AND photo_id = \$2 AND comment = \$3`).
			WithArgs("user-1", int64(5), "nice", nil).
			WillReturnRows(sqlmock.NewRows(commentRowColumns).
				AddRow(11, 5, "user-1", nil, "nice", 0, "{}", now, now))

		comment := &models.PhotoComment{PhotoID: 5, UserID: "user-1", Comment: "nice"}
		created, err := repo.FindOrCreate(context.Background(), comment)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(11), comment.CommentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates a reply", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewCommentRepository(db)

		mock.ExpectQuery(`FROM photo_comments WHERE user_id`).
			WithArgs("user-1", int64(5), "thanks", int64(11)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO photo_comments`).
			WithArgs(int64(5), "user-1", int64(11), "thanks", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"comment_id", "votes", "created_at", "modified_at"}).
				AddRow(12, 0, now, now))

		comment := &models.PhotoComment{PhotoID: 5, UserID: "user-1", Comment: "thanks", ParentID: int64Ptr(11)}
		created, err := repo.FindOrCreate(context.Background(), comment)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(12), comment.CommentID)
		assert.NotNil(t, comment.Mentions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClassificationRepository_CreateOrUpdate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewClassificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT ((LOWER(name)), classification_type)`)).
		WithArgs("Portrait", models.ClassificationTag, true).
		WillReturnRows(sqlmock.NewRows([]string{"classification_id", "name", "created"}).
			AddRow(4, "portrait", false))

	c := &models.PhotoClassification{Name: "Portrait", ClassificationType: models.ClassificationTag, Public: true}
	created, err := repo.CreateOrUpdate(context.Background(), c)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(4), c.ClassificationID)
	assert.Equal(t, "portrait", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassificationRepository_Photos(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewClassificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN photo_tags j ON j.photo_id = p.photo_id`) + `.*` + regexp.QuoteMeta(`ORDER BY p.votes DESC`)).
		WithArgs(int64(4), 10).
		WillReturnRows(sqlmock.NewRows(photoRowColumns))

	photos, err := repo.Photos(context.Background(), 4, models.ClassificationTag, true, 10)

	require.NoError(t, err)
	assert.Empty(t, photos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActionRepository(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActionRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("user-1", models.ActionPhotoFlag, models.ContentTypePhoto, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO user_actions`).
		WithArgs("user-1", models.ActionPhotoFlag, models.ContentTypePhoto, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"action_id", "created_at"}).AddRow(1, now))

	exists, err := repo.Exists(ctx, "user-1", models.ActionPhotoFlag, models.ContentTypePhoto, 5)
	require.NoError(t, err)
	assert.False(t, exists)

	action := &models.UserAction{UserID: "user-1", Action: models.ActionPhotoFlag, ContentType: models.ContentTypePhoto, ObjectID: 5}
	require.NoError(t, repo.Record(ctx, action))
	assert.Equal(t, int64(1), action.ActionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`FROM push_notification_records`).
		WithArgs(models.NotifyCuratedPick, models.ContentTypePhoto, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`INSERT INTO push_notification_records`).
		WithArgs(models.NotifyCuratedPick, "msg", int64(3), nil, "user-1", models.ContentTypePhoto, int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	exists, err := repo.Exists(ctx, models.NotifyCuratedPick, models.ContentTypePhoto, 5)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(ctx, &models.PushNotificationRecord{
		Action:      models.NotifyCuratedPick,
		Message:     "msg",
		DeviceID:    int64Ptr(3),
		ReceiverID:  stringPtr("user-1"),
		ContentType: models.ContentTypePhoto,
		ObjectID:    5,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_Register(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDeviceRepository(db)
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO devices`).
		WithArgs("user-1", "fcm-token", "android").
		WillReturnRows(sqlmock.NewRows([]string{"device_id", "active", "created_at"}).AddRow(3, true, now))

	device := &models.Device{UserID: "user-1", RegistrationID: "fcm-token", Type: "android"}
	require.NoError(t, repo.Register(context.Background(), device))
	assert.Equal(t, int64(3), device.DeviceID)
	assert.True(t, device.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthRepository_CountTables(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHealthRepository(db)

	mock.ExpectQuery(`FROM information_schema.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountTables(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassificationRepository_PhotosUnlimited(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewClassificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN photo_categories j ON j.photo_id = p.photo_id`) + `.*` + regexp.QuoteMeta(`ORDER BY p.created_at DESC`)).
		WithArgs(int64(2), nil).
		WillReturnRows(sqlmock.NewRows(photoRowColumns))

	photos, err := repo.Photos(context.Background(), 2, models.ClassificationCategory, false, 0)

	require.NoError(t, err)
	assert.Empty(t, photos)
	assert.NoError(t, mock.ExpectationsWereMet())
}
