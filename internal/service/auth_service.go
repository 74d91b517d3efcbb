package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/config"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/observability"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users            repository.UserRepository
	tokenMgr         *auth.TokenManager
	dispatcher       events.Dispatcher
	bcryptCost       int
	adminEmailDomain string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:            users,
		tokenMgr:         auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		dispatcher:       dispatcher,
		bcryptCost:       cfg.BcryptCost,
		adminEmailDomain: cfg.AdminEmailDomain,
	}
}

// RegisterInput carries account creation fields.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Phone    *string
	Address  *string
}

// Register creates a new account. The first account ever created, or any
// account whose email ends with the configured administrative domain suffix,
// receives the admin role; everyone else gets the base role. The email-domain
// escalation is spoofable by whoever controls such an address; it is kept as
// the existing business rule, not as a security boundary.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	exists, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exists {
		return nil, "", time.Time{}, apperrors.NewConflict("username is already taken", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email is already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	roles := []domain.Role{domain.RoleUser}
	if count == 0 || strings.HasSuffix(input.Email, s.adminEmailDomain) {
		roles = []domain.Role{domain.RoleAdmin}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Address:      input.Address,
		Roles:        roles,
		Enabled:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique indexes are the arbiter under concurrency: the loser of a
		// duplicate-username race lands here.
		if apperrors.IsUniqueViolation(err) {
			return nil, "", time.Time{}, apperrors.NewConflict("username or email already in use", nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user.Username, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	observability.RegistrationsTotal.WithLabelValues(string(roles[0])).Inc()
	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	})
	return user, token, exp, nil
}

// Login authenticates a username/password pair. Every failure collapses into
// the same outcome so callers cannot tell which of the two was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", time.Time{}, apperrors.NewAuthFailed()
	}
	if !user.Enabled {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", time.Time{}, apperrors.NewAuthFailed()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", time.Time{}, apperrors.NewAuthFailed()
	}

	token, exp, err := s.tokenMgr.Issue(user.Username, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	observability.LoginsTotal.WithLabelValues("success").Inc()
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
