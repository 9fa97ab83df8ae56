package model

import "time"

// RateLimit is the quota ledger entry for one identifier (user id or
// client IP). At most one row exists per identifier.
type RateLimit struct {
	Identifier string
	Count      int
	ResetAt    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
