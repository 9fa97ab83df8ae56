package service

import (
	"time"

	"tubefetch/backend/internal/repository"
)

// NewRateLimitServiceWithClock builds a rate limit service with a fixed
// clock for tests.
func NewRateLimitServiceWithClock(repo repository.RateLimitRepository, now func() time.Time) RateLimitService {
	return &rateLimitService{repo: repo, now: now}
}

var (
	LocateOutputFile = locateOutputFile
	BuildFilename    = buildFilename
	ContentTypeFor   = contentTypeFor
	FormatFileSize   = formatFileSize
)
