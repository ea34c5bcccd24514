package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cofy_shop/internal/hash"
	"github.com/Skotchmaster/cofy_shop/internal/logging"
	"github.com/Skotchmaster/cofy_shop/internal/models"
	"github.com/Skotchmaster/cofy_shop/internal/repo"
	"github.com/Skotchmaster/cofy_shop/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Events    EventPublisher
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	created, err := s.Repo.CreateUserIfNotExists(ctx, &user)
	if err != nil {
		l.Error("register_error", "error", err)
		return nil, err
	}
	if !created {
		l.Warn("register_error", "reason", "email already registered")
		return nil, fmt.Errorf("user already exists: %w", ErrValidation)
	}

	token, err := tokens.Sign(user.ID, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicUserEvents, user.ID.String(), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("user registered", "user_id", user.ID)
	return &AuthResult{Token: token, User: &user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredential
	}

	token, err := tokens.Sign(user.ID, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicUserEvents, user.ID.String(), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("user logged in", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}
