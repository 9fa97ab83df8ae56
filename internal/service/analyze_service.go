//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"tubefetch/backend/internal/urlutil"
	"tubefetch/backend/internal/ytdlp"
)

const (
	maxVideoRenditions = 5
	maxAudioRenditions = 3
)

// VideoProvider is the slice of the yt-dlp client the services depend on.
type VideoProvider interface {
	Metadata(ctx context.Context, videoURL string) (*ytdlp.VideoInfo, error)
	Download(ctx context.Context, videoURL, formatSelector, outputTemplate string, onProgress func(int)) (string, error)
	OutputTemplate() string
}

// FormatOption is one selectable rendition.
type FormatOption struct {
	Quality  string
	Format   string
	URL      string
	Filesize string
}

// AnalyzeResult is the metadata surface returned to the client.
type AnalyzeResult struct {
	VideoID   string
	Title     string
	Thumbnail string
	Duration  int
	Uploader  string
	Video     []FormatOption
	Audio     []FormatOption
}

// AnalyzeService inspects a YouTube URL and lists downloadable renditions.
type AnalyzeService interface {
	Analyze(ctx context.Context, videoURL string) (*AnalyzeResult, error)
}

type analyzeService struct {
	provider VideoProvider
}

// NewAnalyzeService creates a new analyze service.
func NewAnalyzeService(provider VideoProvider) AnalyzeService {
	return &analyzeService{provider: provider}
}

func (s *analyzeService) Analyze(ctx context.Context, videoURL string) (*AnalyzeResult, error) {
	videoID := urlutil.ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: not a YouTube URL", ErrInvalid)
	}

	info, err := s.provider.Metadata(ctx, videoURL)
	if err != nil {
		return nil, &ToolError{Message: err.Error()}
	}

	result := &AnalyzeResult{
		VideoID:   info.ID,
		Title:     info.Title,
		Thumbnail: info.Thumbnail,
		Duration:  int(info.Duration),
		Uploader:  info.Uploader,
		Video:     videoOptions(info.Formats),
		Audio:     audioOptions(info.Formats),
	}
	if result.VideoID == "" {
		result.VideoID = videoID
	}
	if result.Title == "" {
		result.Title = "YouTube Video"
	}
	if result.Thumbnail == "" {
		result.Thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", result.VideoID)
	}
	return result, nil
}

// videoOptions keeps progressive formats (both codecs present), best first,
// one entry per height.
func videoOptions(formats []ytdlp.Format) []FormatOption {
	var progressive []ytdlp.Format
	for _, f := range formats {
		if f.VCodec != "none" && f.VCodec != "" && f.ACodec != "none" && f.ACodec != "" && f.URL != "" {
			progressive = append(progressive, f)
		}
	}
	sort.SliceStable(progressive, func(i, j int) bool {
		return progressive[i].Height > progressive[j].Height
	})

	seen := make(map[string]bool)
	var options []FormatOption
	for _, f := range progressive {
		quality := fmt.Sprintf("%dp", f.Height)
		if seen[quality] || len(options) >= maxVideoRenditions {
			continue
		}
		seen[quality] = true
		options = append(options, FormatOption{
			Quality:  quality,
			Format:   upperOr(f.Ext, "MP4"),
			URL:      f.URL,
			Filesize: formatFileSize(f.Filesize),
		})
	}
	return withPlaceholder(options)
}

// audioOptions keeps audio-only formats, highest bitrate first, one entry
// per rounded bitrate.
func audioOptions(formats []ytdlp.Format) []FormatOption {
	var audioOnly []ytdlp.Format
	for _, f := range formats {
		if (f.VCodec == "none" || f.VCodec == "") && f.ACodec != "none" && f.ACodec != "" && f.URL != "" {
			audioOnly = append(audioOnly, f)
		}
	}
	sort.SliceStable(audioOnly, func(i, j int) bool {
		return audioOnly[i].ABR > audioOnly[j].ABR
	})

	seen := make(map[string]bool)
	var options []FormatOption
	for _, f := range audioOnly {
		quality := "Audio"
		if f.ABR > 0 {
			quality = fmt.Sprintf("%dkbps", int(math.Round(f.ABR)))
		}
		if seen[quality] || len(options) >= maxAudioRenditions {
			continue
		}
		seen[quality] = true
		options = append(options, FormatOption{
			Quality:  quality,
			Format:   upperOr(f.Ext, "M4A"),
			URL:      f.URL,
			Filesize: formatFileSize(f.Filesize),
		})
	}
	return withPlaceholder(options)
}

// withPlaceholder substitutes the UI's "nothing to pick" entry for an empty
// list.
func withPlaceholder(options []FormatOption) []FormatOption {
	if len(options) > 0 {
		return options
	}
	return []FormatOption{{Quality: "No formats available", Format: "-", URL: "#"}}
}

func upperOr(ext, fallback string) string {
	if ext == "" {
		return fallback
	}
	return strings.ToUpper(ext)
}

func formatFileSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	const unit = 1024
	sizes := []string{"B", "KB", "MB", "GB"}
	value := float64(bytes)
	i := 0
	for value >= unit && i < len(sizes)-1 {
		value /= unit
		i++
	}
	return fmt.Sprintf("%g %s", math.Round(value*100)/100, sizes[i])
}
