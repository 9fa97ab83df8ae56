//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/repository"
)

// loopbackIP is the sentinel identifier when no client address header is
// present (direct connections in development).
const loopbackIP = "127.0.0.1"

// Identity is the resolved caller: the ledger identifier plus the quota
// tier that applies to it.
type Identity struct {
	Identifier    string
	Tier          Tier
	UserID        string
	Authenticated bool
}

// IdentityService determines who is calling and which tier applies.
type IdentityService interface {
	// Resolve builds the Identity for a request. userID is empty for
	// anonymous callers. For authenticated callers a missing subscription
	// row is created with the free plan so tier lookups never fail.
	Resolve(ctx context.Context, userID string, headers http.Header) (Identity, error)
	// ClientIP extracts the caller's IP the same way Resolve does.
	ClientIP(headers http.Header) string
}

type identityService struct {
	subscriptions repository.SubscriptionRepository
}

// NewIdentityService creates a new identity service.
func NewIdentityService(subscriptions repository.SubscriptionRepository) IdentityService {
	return &identityService{subscriptions: subscriptions}
}

func (s *identityService) Resolve(ctx context.Context, userID string, headers http.Header) (Identity, error) {
	if userID == "" {
		return Identity{
			Identifier: s.ClientIP(headers),
			Tier:       TierFree,
		}, nil
	}

	sub, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return Identity{}, fmt.Errorf("get subscription: %w", err)
	}
	if sub == nil {
		sub, err = s.subscriptions.Create(ctx, userID, model.PlanFree)
		if err != nil {
			return Identity{}, fmt.Errorf("create default subscription: %w", err)
		}
	}

	return Identity{
		Identifier:    userID,
		Tier:          TierForPlan(sub.Plan),
		UserID:        userID,
		Authenticated: true,
	}, nil
}

func (s *identityService) ClientIP(headers http.Header) string {
	if forwarded := headers.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(headers.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return loopbackIP
}
