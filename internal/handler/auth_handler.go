package handlers

import (
	"net/http"

	"photofeed/internal/models"
	"photofeed/internal/repository"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetConfirmRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	IsSuperuser bool   `json:"isSuperuser"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         newUserResponse(user),
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         newUserResponse(user),
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         newUserResponse(user),
	}, http.StatusOK)
}

func (h *Handlers) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.ResetService.Request(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, map[string]string{}, http.StatusOK)
}

func (h *Handlers) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	var req ResetConfirmRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.ResetService.Confirm(r.Context(), req.Code, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, map[string]string{}, http.StatusOK)
}
