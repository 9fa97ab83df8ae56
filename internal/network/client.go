// Package network builds outbound HTTP clients, optionally routed through a
// configured proxy.
package network

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Noooste/azuretls-client"
)

// ClientFactory creates HTTP clients with proxy configuration.
type ClientFactory struct {
	proxyURL       string
	testHTTPClient *http.Client // For testing only
}

// NewClientFactory creates a new client factory. proxyURL may be empty.
func NewClientFactory(proxyURL string) *ClientFactory {
	return &ClientFactory{proxyURL: proxyURL}
}

// NewClientFactoryForTest creates a client factory that uses the given
// http.Client. This is only for use in tests.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{testHTTPClient: client}
}

// NewHTTPClient creates a standard http.Client with proxy configuration.
func (f *ClientFactory) NewHTTPClient(timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}

	client := &http.Client{Timeout: timeout}
	if f.proxyURL != "" {
		if parsed, err := url.Parse(f.proxyURL); err == nil {
			client.Transport = &http.Transport{
				Proxy: http.ProxyURL(parsed),
			}
		}
	}
	return client
}

// NewAzureSession creates an azuretls.Session with a browser TLS profile
// and proxy configuration.
func (f *ClientFactory) NewAzureSession(timeout time.Duration) *azuretls.Session {
	session := azuretls.NewSession()
	session.Browser = azuretls.Chrome
	session.SetTimeout(timeout)

	if f.proxyURL != "" {
		if err := session.SetProxy(f.proxyURL); err != nil {
			// An unusable proxy should fail loudly at request time, not
			// silently bypass the proxy.
			session.Close()
			return nil
		}
	}
	return session
}
