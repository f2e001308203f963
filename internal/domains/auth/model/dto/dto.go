package dto

import (
	"resort/infras/jwt"
	userModel "resort/internal/domains/user/model"
	"time"
)

// LoginRequest takes the admin's email as identifier and the password as secret.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"notblank,max=100"`
	Secret     string `json:"secret"     validate:"notblank,max=72"`
}

// UpdateLastLoginRequest is the bookkeeping written after a successful login.
// Password is only set when the stored hash is upgraded.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
	Password  string    `db:"password"   json:"-"`
}

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (s *SessionUser) FromModel(user userModel.User) {
	s.ID = user.ID
	s.Email = user.Email
	s.Name = user.Name
	s.Role = user.Role
}

type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	User         SessionUser `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, user userModel.User) {
	l.Token = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
	l.User.FromModel(user)
}

type VerifyResponse struct {
	Valid bool        `json:"valid"`
	User  SessionUser `json:"user"`
}

// LogoutRequest optionally names the refresh token to revoke alongside the bearer token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"notblank"`
}

type RefreshTokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.Token = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"notblank"`
	NewPassword     string `json:"new_password"     validate:"notblank,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required"`
}
