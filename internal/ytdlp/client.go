// Package ytdlp wraps the yt-dlp binary: structured metadata dumps and
// selective-format downloads with percentage progress parsed from stdout.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"tubefetch/backend/pkg/logger"
)

const (
	defaultMetadataTimeout = time.Minute
	defaultDownloadTimeout = 15 * time.Minute
)

// yt-dlp with --newline prints lines like "[download]  45.2% of 123.45MiB".
var (
	progressPattern = regexp.MustCompile(`\[download\]\s+([0-9.]+)%`)
	heightPattern   = regexp.MustCompile(`(\d+)p`)
)

// VideoInfo is the subset of yt-dlp's --dump-single-json output the service
// consumes.
type VideoInfo struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	Duration  float64  `json:"duration"`
	Uploader  string   `json:"uploader"`
	Formats   []Format `json:"formats"`
}

type Format struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	Height   int     `json:"height"`
	ABR      float64 `json:"abr"`
	VCodec   string  `json:"vcodec"`
	ACodec   string  `json:"acodec"`
	URL      string  `json:"url"`
	Filesize int64   `json:"filesize"`
}

// Options configures a Client.
type Options struct {
	BinPath    string
	FfmpegPath string
	TmpDir     string
	// CookiesB64 is an optional base64-encoded Netscape cookies file
	// materialized to disk for each invocation and removed afterwards.
	CookiesB64      string
	MetadataTimeout time.Duration
	DownloadTimeout time.Duration
}

// Client invokes the yt-dlp binary. Invocations are paced by a process-wide
// limiter so a burst of requests cannot fork an unbounded number of
// subprocesses.
type Client struct {
	opts    Options
	limiter *rate.Limiter
}

// New creates a Client. Zero timeouts fall back to defaults.
func New(opts Options) *Client {
	if opts.MetadataTimeout <= 0 {
		opts.MetadataTimeout = defaultMetadataTimeout
	}
	if opts.DownloadTimeout <= 0 {
		opts.DownloadTimeout = defaultDownloadTimeout
	}
	if opts.TmpDir == "" {
		opts.TmpDir = os.TempDir()
	}
	return &Client{
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

// Metadata fetches the video's format list and descriptive fields.
func (c *Client) Metadata(ctx context.Context, videoURL string) (*VideoInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.MetadataTimeout)
	defer cancel()

	args := []string{
		videoURL,
		"--dump-single-json",
		"--no-check-certificates",
		"--no-warnings",
		"--prefer-free-formats",
		"--add-header", "referer:youtube.com",
		"--add-header", "user-agent:Mozilla/5.0",
	}
	cookieArgs, cleanup, err := c.cookieArgs()
	if err != nil {
		return nil, err
	}
	defer cleanup()
	args = append(args, cookieArgs...)

	cmd := exec.CommandContext(ctx, c.opts.BinPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, commandError("metadata", err, stderr.Bytes())
	}

	var info VideoInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &info, nil
}

// Download fetches the selected format to outputTemplate (yt-dlp "-o"
// syntax). onProgress, when non-nil, receives each percentage parsed from
// stdout. The full stdout is returned so callers can locate the written
// file. The subprocess is not cancelled when the caller's stream aborts,
// only by the bounded timeout.
func (c *Client) Download(ctx context.Context, videoURL, formatSelector, outputTemplate string, onProgress func(int)) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	// Detached from the caller's cancellation: a dropped progress stream
	// must not kill a download in flight.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.DownloadTimeout)
	defer cancel()

	args := []string{
		videoURL,
		"-o", outputTemplate,
		"-f", formatSelector,
		"--newline",
		"--no-check-certificates",
		"--no-warnings",
	}
	if c.opts.FfmpegPath != "" {
		args = append(args, "--ffmpeg-location", c.opts.FfmpegPath)
	}
	cookieArgs, cleanup, err := c.cookieArgs()
	if err != nil {
		return "", err
	}
	defer cleanup()
	args = append(args, cookieArgs...)

	cmd := exec.CommandContext(ctx, c.opts.BinPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start yt-dlp: %w", err)
	}

	var outBuf, errBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			outBuf.WriteString(line)
			outBuf.WriteByte('\n')
			if onProgress == nil {
				continue
			}
			if m := progressPattern.FindStringSubmatch(line); m != nil {
				if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
					onProgress(int(pct + 0.5))
				}
			}
		}
		return scanner.Err()
	})
	g.Go(func() error {
		scanner := bufio.NewScanner(stderrPipe)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			errBuf.WriteString(scanner.Text())
			errBuf.WriteByte('\n')
		}
		return scanner.Err()
	})

	scanErr := g.Wait()
	if err := cmd.Wait(); err != nil {
		return outBuf.String(), commandError("download", err, errBuf.Bytes())
	}
	if scanErr != nil {
		return outBuf.String(), fmt.Errorf("scan output: %w", scanErr)
	}
	return outBuf.String(), nil
}

// BuildFormatSelector maps the caller's media type and optional quality
// label onto a yt-dlp format expression.
func BuildFormatSelector(mediaType, quality string) string {
	if mediaType == "audio" {
		return "bestaudio[ext=m4a]/bestaudio"
	}
	if m := heightPattern.FindStringSubmatch(quality); m != nil {
		h := m[1]
		return fmt.Sprintf("best[height<=%s][ext=mp4]/bestvideo[height<=%s]+bestaudio/best[height<=%s]", h, h, h)
	}
	return "best[ext=mp4]/bestvideo+bestaudio/best"
}

func (c *Client) cookieArgs() ([]string, func(), error) {
	if c.opts.CookiesB64 == "" {
		return nil, func() {}, nil
	}

	content, err := base64.StdEncoding.DecodeString(c.opts.CookiesB64)
	if err != nil {
		return nil, func() {}, fmt.Errorf("decode cookies: %w", err)
	}

	file, err := os.CreateTemp(c.opts.TmpDir, "youtube-cookies-*.txt")
	if err != nil {
		return nil, func() {}, fmt.Errorf("create cookies file: %w", err)
	}
	path := file.Name()
	if _, err := file.Write(content); err != nil {
		file.Close()
		os.Remove(path)
		return nil, func() {}, fmt.Errorf("write cookies file: %w", err)
	}
	file.Close()

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove cookies file", "path", path, "error", err)
		}
	}
	return []string{"--cookies", path}, cleanup, nil
}

func commandError(op string, err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if len(msg) > 500 {
		msg = msg[len(msg)-500:]
	}
	if msg != "" {
		return fmt.Errorf("yt-dlp %s: %w: %s", op, err, msg)
	}
	return fmt.Errorf("yt-dlp %s: %w", op, err)
}

// OutputTemplate builds a unique temporary output path with yt-dlp's
// extension placeholder.
func (c *Client) OutputTemplate() string {
	return filepath.Join(c.opts.TmpDir, fmt.Sprintf("download-%d.%%(ext)s", time.Now().UnixNano()))
}
