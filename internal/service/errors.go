package service

import (
	"errors"
	"time"
)

var (
	ErrInvalid            = errors.New("invalid")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrLimitExceeded      = errors.New("rate limit exceeded")
	ErrUpstream           = errors.New("upstream failure")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// LimitExceededError is a quota denial carrying the window's reset time so
// handlers can build a structured 429 body. It matches ErrLimitExceeded
// under errors.Is.
type LimitExceededError struct {
	ResetTime time.Time
}

func (e *LimitExceededError) Error() string {
	if e.ResetTime.IsZero() {
		return ErrLimitExceeded.Error()
	}
	return ErrLimitExceeded.Error() + ", resets at " + e.ResetTime.UTC().Format(time.RFC3339)
}

func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }

// ToolError is a yt-dlp failure with the message extracted from its output.
// It matches ErrUpstream under errors.Is, but handlers surface it as a 500
// with the message rather than the generic 502.
type ToolError struct {
	Message string
}

func (e *ToolError) Error() string { return e.Message }

func (e *ToolError) Unwrap() error { return ErrUpstream }
