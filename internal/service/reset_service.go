package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"photofeed/internal/repository"
)

// Mailer sends password reset codes.
type Mailer interface {
	SendResetCode(ctx context.Context, email, code string) error
}

// LogMailer writes reset codes to the log instead of sending mail.
type LogMailer struct {
	Log zerolog.Logger
}

func (m LogMailer) SendResetCode(_ context.Context, email, code string) error {
	m.Log.Info().Str("email", email).Str("code", code).Msg("password reset code issued")
	return nil
}

type ResetService interface {
	Request(ctx context.Context, email string) error
	Confirm(ctx context.Context, code, password string) error
}

type resetService struct {
	userRepo repository.UserRepository
	codes    CodeStore
	mailer   Mailer
	newCode  func() string
}

func NewResetService(userRepo repository.UserRepository, codes CodeStore, mailer Mailer) ResetService {
	return &resetService{
		userRepo: userRepo,
		codes:    codes,
		mailer:   mailer,
		newCode:  newResetCode,
	}
}

func newResetCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// Request issues a code for a known email. Unknown emails succeed silently.
func (s *resetService) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	code := s.newCode()
	if err := s.codes.Set(ctx, code, user.Email); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	return s.mailer.SendResetCode(ctx, user.Email, code)
}

func (s *resetService) Confirm(ctx context.Context, code, password string) error {
	email, err := s.codes.Get(ctx, code)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, email, password); err != nil {
		return err
	}

	return s.codes.Delete(ctx, code)
}
