// Package service implements the sign-in business rules: credential
// verification, account status checks, and token issuance.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"presales/internal/audit"
	"presales/internal/auth/metrics"
	"presales/internal/auth/models"
	"presales/internal/auth/store"
	"presales/internal/auth/token"
	"presales/pkg/apperrors"
)

// Credential rejections share one message so responses do not reveal whether
// the email exists.
var errInvalidCredentials = apperrors.New(apperrors.CodeBadRequest, "Invalid email or password")

// Service wraps authentication business rules.
type Service struct {
	users    store.UserStore
	tokens   *token.Service
	recorder *audit.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewService constructs the auth service. recorder and m may be nil.
func NewService(users store.UserStore, tokens *token.Service, recorder *audit.Recorder, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		recorder: recorder,
		metrics:  m,
		logger:   logger,
	}
}

// Login validates credentials and issues a bearer token. userAgent is the
// caller's User-Agent header, captured for the audit trail.
func (s *Service) Login(ctx context.Context, req models.LoginRequest, userAgent string) (*models.LoginResponse, error) {
	start := time.Now()
	s.metrics.IncrementLoginAttempts()
	defer s.metrics.ObserveLoginDuration(start)

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, s.reject(ctx, req.Email, userAgent, "unknown email", errInvalidCredentials)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "looking up user")
	}

	if !user.IsActive() {
		return nil, s.reject(ctx, req.Email, userAgent, "inactive account",
			apperrors.New(apperrors.CodeBadRequest, "User account is not active"))
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, s.reject(ctx, req.Email, userAgent, "wrong password", errInvalidCredentials)
	}

	signed, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "issuing token")
	}

	s.logger.InfoContext(ctx, "login successful", "email", user.Email, "role", user.Role)
	s.recorder.Record(ctx, audit.Event{
		Actor:  user.Email,
		Action: audit.ActionLoginSucceeded,
		Device: audit.DeviceSummary(userAgent),
	})

	return &models.LoginResponse{
		Token:       signed,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		ExpiresIn:   int64(s.tokens.TTL() / time.Millisecond),
	}, nil
}

func (s *Service) reject(ctx context.Context, email, userAgent, reason string, err error) error {
	s.metrics.IncrementLoginFailures()
	s.logger.WarnContext(ctx, "login rejected", "email", email, "reason", reason)
	s.recorder.Record(ctx, audit.Event{
		Actor:  email,
		Action: audit.ActionLoginFailed,
		Detail: reason,
		Device: audit.DeviceSummary(userAgent),
	})
	return err
}
