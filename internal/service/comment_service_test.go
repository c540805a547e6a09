package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photofeed/internal/models"
	"photofeed/internal/repository"
)

func newCommentMocks() (*MockPhotoRepository, *MockCommentRepository, *MockUserRepository, *recordingNotifier, CommentService) {
	photos := new(MockPhotoRepository)
	comments := new(MockCommentRepository)
	users := new(MockUserRepository)
	notifier := &recordingNotifier{}
	return photos, comments, users, notifier, NewCommentService(photos, comments, users, notifier)
}

func TestCommentService_CreateRequiresText(t *testing.T) {
	photos, comments, _, _, svc := newCommentMocks()

	_, _, err := svc.Create(context.Background(), &models.Principal{UserID: "u"}, 1, CommentRequest{Comment: "   "})

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "Missing required field 'comment' in request data.", inputErr.Msg)
	photos.AssertNotCalled(t, "GetPublicByID", mock.Anything, mock.Anything)
	comments.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything)
}

func TestCommentService_CreateNotifies(t *testing.T) {
	photos, comments, users, notifier, svc := newCommentMocks()

	photos.On("GetPublicByID", mock.Anything, int64(1)).
		Return(&models.Photo{PhotoID: 1, UserID: stringPtr("owner"), Public: true}, nil)
	comments.On("FindOrCreate", mock.Anything, mock.MatchedBy(func(c *models.PhotoComment) bool {
		return c.Comment == "lovely" && c.ParentID == nil && c.UserID == "author"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.PhotoComment).CommentID = 50
	}).Return(true, nil)
	users.On("GetUserByID", mock.Anything, "author").Return(&models.User{UserID: "author", Username: "bob"}, nil)
	users.On("GetUserByID", mock.Anything, "owner").Return(&models.User{UserID: "owner", Username: "ann"}, nil)
	users.On("GetUsersByUsernames", mock.Anything, []string{"cat", "bob"}).Return([]models.User{
		{UserID: "cat-id", Username: "cat"},
		{UserID: "author", Username: "bob"},
	}, nil)

	comment, created, err := svc.Create(context.Background(), &models.Principal{UserID: "author"}, 1,
		CommentRequest{Comment: " lovely ", Mentions: []string{"cat", "bob"}})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(50), comment.CommentID)

	sent := notifier.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, models.NotifyComment, sent[0].Action)
	assert.Equal(t, "bob has commented on your artwork, ann.", sent[0].Text)
	assert.Equal(t, models.NotifyMention, sent[1].Action)
	assert.Equal(t, "cat-id", sent[1].ReceiverID)
	assert.Equal(t, "bob mentioned you in a comment, cat.", sent[1].Text)
}

func TestCommentService_OwnPhotoExistingComment(t *testing.T) {
	photos, comments, users, notifier, svc := newCommentMocks()

	photos.On("GetPublicByID", mock.Anything, int64(1)).
		Return(&models.Photo{PhotoID: 1, UserID: stringPtr("owner"), Public: true}, nil)
	comments.On("FindOrCreate", mock.Anything, mock.Anything).Return(false, nil)

	_, created, err := svc.Create(context.Background(), &models.Principal{UserID: "owner"}, 1, CommentRequest{Comment: "mine"})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, notifier.sent())
	users.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

func TestCommentService_ReplyParentMustBelongToPhoto(t *testing.T) {
	_, comments, _, _, svc := newCommentMocks()
	comments.On("GetByID", mock.Anything, int64(8)).Return(&models.PhotoComment{CommentID: 8, PhotoID: 2}, nil)

	_, _, err := svc.Reply(context.Background(), &models.Principal{UserID: "u"}, 1, 8, CommentRequest{Comment: "hi"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCommentService_ReplyNotifiesCommenter(t *testing.T) {
	photos, comments, users, notifier, svc := newCommentMocks()

	comments.On("GetByID", mock.Anything, int64(8)).
		Return(&models.PhotoComment{CommentID: 8, PhotoID: 1, UserID: "first"}, nil)
	photos.On("GetPublicByID", mock.Anything, int64(1)).
		Return(&models.Photo{PhotoID: 1, UserID: stringPtr("author"), Public: true}, nil)
	comments.On("FindOrCreate", mock.Anything, mock.MatchedBy(func(c *models.PhotoComment) bool {
		return c.ParentID != nil && *c.ParentID == 8
	})).Return(true, nil)
	users.On("GetUserByID", mock.Anything, "author").Return(&models.User{UserID: "author", Username: "ann"}, nil)
	users.On("GetUserByID", mock.Anything, "first").Return(&models.User{UserID: "first", Username: "dan"}, nil)

	_, created, err := svc.Reply(context.Background(), &models.Principal{UserID: "author"}, 1, 8, CommentRequest{Comment: "thanks"})

	require.NoError(t, err)
	assert.True(t, created)
	sent := notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ann replied to your comment, dan.", sent[0].Text)
	assert.Equal(t, "first", sent[0].ReceiverID)
}

func TestCommentService_ListUnknownPhoto(t *testing.T) {
	photos, comments, _, _, svc := newCommentMocks()
	photos.On("GetPublicByID", mock.Anything, int64(3)).Return(nil, repository.ErrNotFound)

	_, err := svc.List(context.Background(), 3)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	comments.AssertNotCalled(t, "ListByPhoto", mock.Anything, mock.Anything)
}
