package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photofeed/internal/codestore"
	"photofeed/internal/models"
	"photofeed/internal/repository"
)

func newResetMocks() (*MockUserRepository, *MockCodeStore, *MockMailer, *resetService) {
	users := new(MockUserRepository)
	codes := new(MockCodeStore)
	mailer := new(MockMailer)
	svc := NewResetService(users, codes, mailer).(*resetService)
	svc.newCode = func() string { return "ABCD1234" }
	return users, codes, mailer, svc
}

func TestResetService_Request(t *testing.T) {
	users, codes, mailer, svc := newResetMocks()
	users.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(&models.User{Email: "ann@example.com"}, nil)
	codes.On("Set", mock.Anything, "ABCD1234", "ann@example.com").Return(nil)
	mailer.On("SendResetCode", mock.Anything, "ann@example.com", "ABCD1234").Return(nil)

	require.NoError(t, svc.Request(context.Background(), "ann@example.com"))

	codes.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestResetService_RequestUnknownEmail(t *testing.T) {
	users, codes, _, svc := newResetMocks()
	users.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	require.NoError(t, svc.Request(context.Background(), "nobody@example.com"))

	codes.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetService_Confirm(t *testing.T) {
	users, codes, _, svc := newResetMocks()
	codes.On("Get", mock.Anything, "ABCD1234").Return("ann@example.com", nil)
	users.On("UpdatePassword", mock.Anything, "ann@example.com", "newpass1").Return(nil)
	codes.On("Delete", mock.Anything, "ABCD1234").Return(nil)

	require.NoError(t, svc.Confirm(context.Background(), "ABCD1234", "newpass1"))

	codes.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestResetService_ConfirmUnknownCode(t *testing.T) {
	users, codes, _, svc := newResetMocks()
	codes.On("Get", mock.Anything, "NOPE").Return("", codestore.ErrCodeNotFound)

	err := svc.Confirm(context.Background(), "NOPE", "newpass1")

	assert.ErrorIs(t, err, codestore.ErrCodeNotFound)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewResetCode(t *testing.T) {
	code := newResetCode()
	assert.Len(t, code, 8)
	assert.NotEqual(t, code, newResetCode())
}
