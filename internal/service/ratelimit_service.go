//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"time"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/repository"
)

// Tier is a named quota policy. MaxRequests <= 0 means no ceiling.
type Tier struct {
	Name        string
	MaxRequests int
	Window      time.Duration
}

var (
	TierFree      = Tier{Name: model.PlanFree, MaxRequests: 5, Window: 5 * time.Hour}
	TierPro       = Tier{Name: model.PlanPro, MaxRequests: 100, Window: 24 * time.Hour}
	TierUnlimited = Tier{Name: model.PlanUnlimited, MaxRequests: 0, Window: 0}
)

// TierForPlan maps a subscription plan to its quota tier, defaulting to free.
func TierForPlan(plan string) Tier {
	switch plan {
	case model.PlanPro:
		return TierPro
	case model.PlanUnlimited:
		return TierUnlimited
	default:
		return TierFree
	}
}

// RateLimitResult is the outcome of a quota check. Remaining < 0 means the
// tier has no ceiling.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// RateLimitUsage is the non-mutating view of a live ledger entry.
type RateLimitUsage struct {
	Count     int
	Remaining int
	ResetTime time.Time
}

// RateLimitService implements the fixed-window quota ledger. Atomicity of
// check-and-increment is delegated to the repository's conditional writes,
// so the service stays correct across multiple process instances.
type RateLimitService interface {
	// Check consumes one quota unit when allowed.
	Check(ctx context.Context, identifier string, tier Tier) (RateLimitResult, error)
	// Peek reports current usage without consuming; nil when no live entry.
	Peek(ctx context.Context, identifier string, tier Tier) (*RateLimitUsage, error)
	// PurgeExpired removes entries whose window ended before now minus grace.
	PurgeExpired(ctx context.Context, grace time.Duration) (int64, error)
}

type rateLimitService struct {
	repo repository.RateLimitRepository
	now  func() time.Time
}

// NewRateLimitService creates a new rate limit service.
func NewRateLimitService(repo repository.RateLimitRepository) RateLimitService {
	return &rateLimitService{repo: repo, now: time.Now}
}

func (s *rateLimitService) Check(ctx context.Context, identifier string, tier Tier) (RateLimitResult, error) {
	now := s.now().UTC()

	if tier.MaxRequests <= 0 {
		// No ceiling: restart the (zero-length) window so usage is still
		// recorded, and always allow.
		if _, err := s.repo.StartWindow(ctx, identifier, now, now); err != nil {
			return RateLimitResult{}, fmt.Errorf("start window: %w", err)
		}
		return RateLimitResult{Allowed: true, Remaining: -1, ResetTime: now}, nil
	}

	// Two rounds cover the race where another request starts a fresh window
	// between our failed increment and failed window start.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.repo.IncrementIfAllowed(ctx, identifier, tier.MaxRequests, now)
		if err != nil {
			return RateLimitResult{}, fmt.Errorf("increment: %w", err)
		}
		if ok {
			entry, err := s.repo.Get(ctx, identifier)
			if err != nil {
				return RateLimitResult{}, fmt.Errorf("get entry: %w", err)
			}
			if entry == nil {
				break
			}
			return RateLimitResult{
				Allowed:   true,
				Remaining: clampRemaining(tier.MaxRequests - entry.Count),
				ResetTime: entry.ResetAt,
			}, nil
		}

		resetAt := now.Add(tier.Window)
		ok, err = s.repo.StartWindow(ctx, identifier, resetAt, now)
		if err != nil {
			return RateLimitResult{}, fmt.Errorf("start window: %w", err)
		}
		if ok {
			return RateLimitResult{
				Allowed:   true,
				Remaining: clampRemaining(tier.MaxRequests - 1),
				ResetTime: resetAt,
			}, nil
		}
	}

	// Neither write won: a live, full window.
	entry, err := s.repo.Get(ctx, identifier)
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("get entry: %w", err)
	}
	result := RateLimitResult{Allowed: false, Remaining: 0, ResetTime: now}
	if entry != nil {
		result.ResetTime = entry.ResetAt
		result.Remaining = clampRemaining(tier.MaxRequests - entry.Count)
	}
	return result, nil
}

func (s *rateLimitService) Peek(ctx context.Context, identifier string, tier Tier) (*RateLimitUsage, error) {
	entry, err := s.repo.Get(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}

	now := s.now().UTC()
	if !entry.ResetAt.After(now) {
		return nil, nil
	}

	remaining := -1
	if tier.MaxRequests > 0 {
		remaining = clampRemaining(tier.MaxRequests - entry.Count)
	}
	return &RateLimitUsage{
		Count:     entry.Count,
		Remaining: remaining,
		ResetTime: entry.ResetAt,
	}, nil
}

func (s *rateLimitService) PurgeExpired(ctx context.Context, grace time.Duration) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().UTC().Add(-grace))
}

func clampRemaining(remaining int) int {
	if remaining < 0 {
		return 0
	}
	return remaining
}
