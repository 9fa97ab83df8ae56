//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Noooste/azuretls-client"

	"tubefetch/backend/internal/config"
	"tubefetch/backend/internal/network"
	"tubefetch/backend/pkg/logger"
)

const thumbnailTimeout = 15 * time.Second

// thumbnailHosts are the only origins the proxy will fetch from.
var thumbnailHosts = map[string]bool{
	"i.ytimg.com":     true,
	"i9.ytimg.com":    true,
	"img.youtube.com": true,
	"yt3.ggpht.com":   true,
}

// Thumbnail is a proxied image payload.
type Thumbnail struct {
	Data        []byte
	ContentType string
}

// ProxyService fetches YouTube thumbnails server side so the frontend never
// talks to Google CDNs directly.
type ProxyService interface {
	FetchThumbnail(ctx context.Context, imageURL string) (*Thumbnail, error)
}

type proxyService struct {
	clientFactory *network.ClientFactory
	allowAnyHost  bool
}

// NewProxyService creates a new proxy service.
func NewProxyService(clientFactory *network.ClientFactory) ProxyService {
	return &proxyService{clientFactory: clientFactory}
}

// NewProxyServiceAnyHost skips the thumbnail host allowlist. This is only
// for use in tests.
func NewProxyServiceAnyHost(clientFactory *network.ClientFactory) ProxyService {
	return &proxyService{clientFactory: clientFactory, allowAnyHost: true}
}

func (s *proxyService) FetchThumbnail(ctx context.Context, imageURL string) (*Thumbnail, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed image url", ErrInvalid)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported protocol %q", ErrInvalid, parsedURL.Scheme)
	}
	if !s.allowAnyHost && !thumbnailHosts[parsedURL.Hostname()] {
		return nil, fmt.Errorf("%w: host %q not allowed", ErrInvalid, parsedURL.Hostname())
	}

	session := s.clientFactory.NewAzureSession(thumbnailTimeout)
	if session == nil {
		return nil, fmt.Errorf("%w: proxy session unavailable", ErrUpstream)
	}
	defer session.Close()

	resp, err := session.Do(&azuretls.Request{
		Method: http.MethodGet,
		Url:    imageURL,
		OrderedHeaders: azuretls.OrderedHeaders{
			{"accept", "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8"},
			{"referer", "https://www.youtube.com/"},
			{"sec-fetch-dest", "image"},
			{"sec-fetch-mode", "no-cors"},
			{"sec-fetch-site", "cross-site"},
			{"user-agent", config.ChromeUserAgent},
		},
	})
	if err != nil {
		logger.Warn("thumbnail fetch failed", "module", "service", "action", "fetch", "resource", "thumbnail", "result", "failed", "host", parsedURL.Host, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Warn("thumbnail upstream error", "module", "service", "action", "fetch", "resource", "thumbnail", "result", "failed", "host", parsedURL.Host, "status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: upstream status %d", ErrUpstream, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &Thumbnail{
		Data:        resp.Body,
		ContentType: contentType,
	}, nil
}
