package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cbummouad/ticket-backend/internal/auth"
	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("email and password are required")
)

const tokenTTL = 7 * 24 * time.Hour

// AuthService signs users up against the user store and issues bearer
// tokens that the local verifier accepts.
type AuthService struct {
	users  repository.UserRepository
	secret string
}

func NewAuthService(users repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, secret: secret}
}

func (a *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidInput
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{Email: email, Name: strings.TrimSpace(fullName)}
	if err := a.users.Create(ctx, u, hash); err != nil {
		return nil, "", err
	}

	tok, err := auth.Sign(a.secret, u.ID, u.Email, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidInput
	}

	u, hash, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !utils.CheckPassword(hash, password) {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := auth.Sign(a.secret, u.ID, u.Email, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}
