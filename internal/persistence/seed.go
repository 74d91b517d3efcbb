package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/config"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
)

// SeedAdmin creates the bootstrap administrator account at startup if it does
// not already exist.
func SeedAdmin(ctx context.Context, cfg config.SeedConfig, bcryptCost int, users repository.UserRepository, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	exists, err := users.ExistsByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleAdmin},
		Enabled:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("bootstrap admin account created", zap.String("username", cfg.AdminUsername))
	return nil
}
