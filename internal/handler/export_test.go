package handler

import "time"

// Export for testing
type AnalyzeResponse = analyzeResponse
type FormatOptionResponse = formatOptionResponse
type RateLimitInfo = rateLimitInfo
type CheckLimitResponse = checkLimitResponse
type LimitExceededResponse = limitExceededResponse
type MigrationResponse = migrationResponse
type AuthResponseDTO = authResponse
type UserResponse = userResponse
type HistoryEntryResponse = historyEntryResponse

var WriteServiceError = writeServiceError
var Error = errorJSON

// SetProgressTimings shortens the SSE poll loop for tests.
func SetProgressTimings(h *DownloadHandler, poll, idle time.Duration) {
	h.pollInterval = poll
	h.idleTimeout = idle
}
