package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"photofeed/internal/models"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, email, username, password_hash, role, is_superuser, refresh_token, refresh_token_expiry_time`

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.Role == "" {
		user.Role = "member"
	}

	query := `
		INSERT INTO users (user_id, email, username, password_hash, role, is_superuser, refresh_token, refresh_token_expiry_time)
		VALUES (:user_id, :email, :username, :password_hash, :role, :is_superuser, :refresh_token, :refresh_token_expiry_time)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	return wrap("create user", err)
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		return nil, wrap("get user by id", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, wrap("get user by email", err)
	}

	return &user, nil
}

// GetUsersByUsernames returns the users that exist among usernames, case-insensitively.
func (r *userRepository) GetUsersByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	users := []models.User{}
	if len(usernames) == 0 {
		return users, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = ANY($1)`

	lowered := make([]string, len(usernames))
	for i, u := range usernames {
		lowered[i] = toLower(u)
	}

	if err := r.db.SelectContext(ctx, &users, query, pq.Array(lowered)); err != nil {
		return nil, wrap("get users by usernames", err)
	}

	return users, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, email, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	query := `UPDATE users SET password_hash = $1 WHERE email = $2`

	res, err := r.db.ExecContext(ctx, query, string(hashedPassword), email)
	if err != nil {
		return wrap("update password", err)
	}

	return expectRows("update password", res)
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	res, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return wrap("update refresh token", err)
	}

	return expectRows("update refresh token", res)
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	if err := r.db.GetContext(ctx, &user, query, refreshToken); err != nil {
		return nil, wrap("get user by refresh token", err)
	}

	return &user, nil
}
