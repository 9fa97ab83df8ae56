//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"time"

	"tubefetch/backend/internal/repository"
	"tubefetch/backend/pkg/logger"
)

// MigrationResult reports how many anonymous quota units moved onto the
// user's ledger entry.
type MigrationResult struct {
	MigratedCount int
}

// MigrationService folds an IP-keyed ledger entry into a user-keyed one
// after sign-in. Safe to call repeatedly: once the IP entry is gone the
// operation is a no-op.
type MigrationService interface {
	Migrate(ctx context.Context, userID, ip string) (MigrationResult, error)
}

type migrationService struct {
	rateLimits repository.RateLimitRepository
}

// NewMigrationService creates a new migration service.
func NewMigrationService(rateLimits repository.RateLimitRepository) MigrationService {
	return &migrationService{rateLimits: rateLimits}
}

func (s *migrationService) Migrate(ctx context.Context, userID, ip string) (MigrationResult, error) {
	if userID == "" {
		return MigrationResult{}, ErrUnauthorized
	}

	migrated, err := s.rateLimits.MigrateToUser(ctx, ip, userID, time.Now().UTC())
	if err != nil {
		return MigrationResult{}, fmt.Errorf("migrate ledger entry: %w", err)
	}

	if migrated > 0 {
		logger.Info("migrated anonymous downloads", "user_id", userID, "count", migrated)
	}
	return MigrationResult{MigratedCount: migrated}, nil
}
