package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tubefetch/backend/internal/ytdlp"
)

// providerStub stands in for the yt-dlp client.
type providerStub struct {
	info    *ytdlp.VideoInfo
	infoErr error

	downloadOutput string
	downloadErr    error
	progressSteps  []int
	template       string

	lastSelector string
	lastTemplate string
}

func (p *providerStub) Metadata(ctx context.Context, videoURL string) (*ytdlp.VideoInfo, error) {
	if p.infoErr != nil {
		return nil, p.infoErr
	}
	return p.info, nil
}

func (p *providerStub) Download(ctx context.Context, videoURL, formatSelector, outputTemplate string, onProgress func(int)) (string, error) {
	p.lastSelector = formatSelector
	p.lastTemplate = outputTemplate
	if p.downloadErr != nil {
		return "", p.downloadErr
	}
	for _, pct := range p.progressSteps {
		if onProgress != nil {
			onProgress(pct)
		}
	}
	return p.downloadOutput, nil
}

func (p *providerStub) OutputTemplate() string {
	return p.template
}

// writeDownloadedFile puts a fake finished download on disk and returns its
// path.
func writeDownloadedFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write fake download: %v", err)
	}
	return path
}
