package model

import "time"

// Subscription plans. Each maps to a quota tier.
const (
	PlanFree      = "free"
	PlanPro       = "pro"
	PlanUnlimited = "unlimited"
)

// UserSubscription holds a user's current plan. A default free row is
// created lazily on first tier lookup.
type UserSubscription struct {
	ID        string
	UserID    string
	Plan      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
