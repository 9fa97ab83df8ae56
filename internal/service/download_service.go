//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/progress"
	"tubefetch/backend/internal/repository"
	"tubefetch/backend/internal/urlutil"
	"tubefetch/backend/internal/ytdlp"
	"tubefetch/backend/pkg/logger"
)

const cleanupDelay = time.Second

var (
	mergePattern       = regexp.MustCompile(`Merging formats into "(.+?)"`)
	destinationPattern = regexp.MustCompile(`Destination:\s+(.+)`)
	alreadyPattern     = regexp.MustCompile(`(.+?) has already been downloaded`)
	unsafeChars        = regexp.MustCompile(`[<>:"/\\|?*]`)
)

var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4a":  "audio/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
}

// DownloadRequest describes one download to run.
type DownloadRequest struct {
	URL        string
	MediaType  string
	Quality    string
	ProgressID string
}

// DownloadResult points at the finished file on disk. HistoryErr carries a
// failed history write without failing the download itself.
type DownloadResult struct {
	FilePath    string
	Filename    string
	ContentType string
	HistoryErr  error
}

// DownloadService runs yt-dlp downloads under the quota ledger.
type DownloadService interface {
	Download(ctx context.Context, identity Identity, req DownloadRequest) (*DownloadResult, error)
	// ScheduleCleanup removes the temp file shortly after the response has
	// been streamed out.
	ScheduleCleanup(path string)
}

type downloadService struct {
	provider VideoProvider
	limits   RateLimitService
	history  repository.HistoryRepository
	progress progress.Store
}

// NewDownloadService creates a new download service.
func NewDownloadService(provider VideoProvider, limits RateLimitService, history repository.HistoryRepository, store progress.Store) DownloadService {
	return &downloadService{
		provider: provider,
		limits:   limits,
		history:  history,
		progress: store,
	}
}

func (s *downloadService) Download(ctx context.Context, identity Identity, req DownloadRequest) (*DownloadResult, error) {
	videoID := urlutil.ExtractVideoID(req.URL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: not a YouTube URL", ErrInvalid)
	}
	if req.MediaType != "video" && req.MediaType != "audio" {
		return nil, fmt.Errorf("%w: unknown media type %q", ErrInvalid, req.MediaType)
	}

	if err := s.gate(ctx, identity); err != nil {
		return nil, err
	}

	info, err := s.provider.Metadata(ctx, req.URL)
	if err != nil {
		return nil, &ToolError{Message: err.Error()}
	}

	selector := ytdlp.BuildFormatSelector(req.MediaType, req.Quality)
	template := s.provider.OutputTemplate()

	if req.ProgressID != "" {
		s.progress.Set(req.ProgressID, 0)
	}
	onProgress := func(pct int) {
		if req.ProgressID != "" {
			s.progress.Set(req.ProgressID, pct)
		}
	}

	output, err := s.provider.Download(ctx, req.URL, selector, template, onProgress)
	if err != nil {
		if req.ProgressID != "" {
			s.progress.Delete(req.ProgressID)
		}
		return nil, &ToolError{Message: err.Error()}
	}
	if req.ProgressID != "" {
		s.progress.Set(req.ProgressID, 100)
	}

	filePath := locateOutputFile(output, template, req.MediaType)
	if filePath == "" {
		return nil, &ToolError{Message: "output file not found"}
	}

	// The ledger charges on success only; a failed subprocess consumed no
	// quota above.
	s.postSuccess(ctx, identity)

	result := &DownloadResult{
		FilePath:    filePath,
		Filename:    buildFilename(info.Title, filePath),
		ContentType: contentTypeFor(filePath),
	}
	if identity.Authenticated {
		result.HistoryErr = s.recordHistory(ctx, identity.UserID, videoID, filePath, req, info)
	}
	return result, nil
}

// gate enforces the pre-download quota rules. Anonymous callers are
// blocked once a live window already holds a download; the actual unit is
// consumed after success. Authenticated callers never block here, their
// ledger is advisory for the analyze gate.
func (s *downloadService) gate(ctx context.Context, identity Identity) error {
	if identity.Authenticated {
		return nil
	}
	usage, err := s.limits.Peek(ctx, identity.Identifier, identity.Tier)
	if err != nil {
		return err
	}
	if usage != nil && usage.Count >= 1 {
		return &LimitExceededError{ResetTime: usage.ResetTime}
	}
	return nil
}

func (s *downloadService) postSuccess(ctx context.Context, identity Identity) {
	result, err := s.limits.Check(ctx, identity.Identifier, identity.Tier)
	if err != nil {
		logger.Warn("record download in quota ledger", "identifier", identity.Identifier, "error", err)
		return
	}
	if !result.Allowed {
		// Concurrent requests can exhaust the window between the gate and
		// here; the finished download is still served.
		logger.Warn("quota window exhausted after download", "identifier", identity.Identifier)
	}
}

func (s *downloadService) recordHistory(ctx context.Context, userID, videoID, filePath string, req DownloadRequest, info *ytdlp.VideoInfo) error {
	record := model.VideoHistory{
		UserID:       userID,
		VideoID:      videoID,
		VideoURL:     req.URL,
		Title:        info.Title,
		Thumbnail:    info.Thumbnail,
		DownloadType: req.MediaType,
		Quality:      req.Quality,
		Format:       strings.TrimPrefix(filepath.Ext(filePath), "."),
	}
	if info.Duration > 0 {
		duration := int(info.Duration)
		record.Duration = &duration
	}
	if info.Uploader != "" {
		uploader := info.Uploader
		record.Uploader = &uploader
	}
	if _, err := s.history.Create(ctx, record); err != nil {
		logger.Warn("record download history", "user_id", userID, "error", err)
		return err
	}
	return nil
}

func (s *downloadService) ScheduleCleanup(path string) {
	if path == "" {
		return
	}
	go func() {
		time.Sleep(cleanupDelay)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("remove temp download", "path", path, "error", err)
		}
	}()
}

// locateOutputFile finds the finished file from yt-dlp's stdout, falling
// back to the output template with the default extension for the media
// type. Merged downloads report the merge target last, so it wins over the
// per-stream Destination lines.
func locateOutputFile(output, outputTemplate, mediaType string) string {
	if m := mergePattern.FindStringSubmatch(output); m != nil {
		if path := existingFile(m[1]); path != "" {
			return path
		}
	}
	matches := destinationPattern.FindAllStringSubmatch(output, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if path := existingFile(matches[i][1]); path != "" {
			return path
		}
	}
	if m := alreadyPattern.FindStringSubmatch(output); m != nil {
		if path := existingFile(m[1]); path != "" {
			return path
		}
	}
	fallback := strings.Replace(outputTemplate, "%(ext)s", defaultExt(mediaType), 1)
	return existingFile(fallback)
}

func existingFile(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

func defaultExt(mediaType string) string {
	if mediaType == "audio" {
		return "m4a"
	}
	return "mp4"
}

// buildFilename derives a safe attachment name from the video title and the
// real file's extension.
func buildFilename(title, filePath string) string {
	name := unsafeChars.ReplaceAllString(strings.TrimSpace(title), "_")
	if name == "" {
		name = "download"
	}
	ext := filepath.Ext(filePath)
	if ext == "" {
		ext = ".mp4"
	}
	return name + ext
}

func contentTypeFor(filePath string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filePath))]; ok {
		return ct
	}
	return "application/octet-stream"
}
