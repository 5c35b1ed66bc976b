package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"blood-bank-api-server/internal/auth"
	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

// SeedInventory creates a zero-balance record for each of the eight blood
// groups. Safe to run on every startup; existing records are left alone.
func SeedInventory(ctx context.Context, ledger store.StockLedger, logger *zap.Logger) error {
	for _, group := range models.BloodGroups {
		if err := ledger.SeedIfAbsent(ctx, group); err != nil {
			return fmt.Errorf("seeding blood group %q: %w", group, err)
		}
	}
	logger.Info("inventory seeded", zap.Int("bloodGroups", len(models.BloodGroups)))
	return nil
}

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// An empty password skips seeding so production deployments can manage
// accounts out of band.
func SeedAdmin(ctx context.Context, admins store.AdminStore, email, password string, logger *zap.Logger) error {
	if password == "" {
		logger.Warn("admin password not configured, skipping admin seeding")
		return nil
	}

	_, err := admins.GetByEmail(ctx, email)
	if err == nil {
		logger.Info("admin already exists, seeding skipped", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking for admin: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	if err := admins.Create(ctx, &models.Admin{Email: email, Password: hashedPassword}); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	logger.Info("admin seeded", zap.String("email", email))
	return nil
}
