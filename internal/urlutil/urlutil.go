// Package urlutil validates YouTube URLs and extracts video ids.
package urlutil

import (
	"regexp"
	"strings"
)

var (
	watchPattern = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([A-Za-z0-9_-]{11})`)
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractVideoID pulls the 11-character video id out of the supported
// YouTube URL shapes (watch, youtu.be, embed, shorts) or a bare id.
// Returns "" when the input matches none of them.
func ExtractVideoID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if m := watchPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	if idPattern.MatchString(trimmed) {
		return trimmed
	}
	return ""
}

// IsVideoURL reports whether raw is a recognizable YouTube video reference.
func IsVideoURL(raw string) bool {
	return ExtractVideoID(raw) != ""
}
