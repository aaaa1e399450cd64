package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/events"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Events    events.Publisher
	Now       func() time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    uint
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Signup stores a new user with a bcrypt hash of the password. The returned
// record carries the hash; callers decide what to expose.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w: %w", ErrInternal, err)
	}

	user := models.User{
		Username: username,
		Password: pwHash,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("signup_error", "reason", "user already exist", "username", username)
			return nil, fmt.Errorf("username %q already exists: %w", username, ErrValidation)
		}
		l.Error("signup_error", "reason", "cannot create user", "error", err)
		return nil, fmt.Errorf("create user: %w: %w", ErrInternal, err)
	}

	publish(ctx, s.Events, events.TopicUser, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userId":   user.ID,
		"username": user.Username,
	})

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if repo.IsNotFound(err) {
			l.Warn("login_failed", "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "cannot load user", "error", err)
		return nil, fmt.Errorf("load user: %w: %w", ErrInternal, err)
	}

	if !pkg_hash.CheckPassword(user.Password, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := tokens.SignAccessToken(user.ID, s.JWTSecret, s.now())
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, fmt.Errorf("sign token: %w: %w", ErrInternal, err)
	}

	publish(ctx, s.Events, events.TopicUser, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userId":   user.ID,
		"username": user.Username,
	})

	return &LoginResult{Token: token, ExpiresAt: exp, UserID: user.ID}, nil
}
