package network_test

import (
	"net/http"
	"testing"
	"time"

	"tubefetch/backend/internal/network"

	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_NoProxy(t *testing.T) {
	factory := network.NewClientFactory("")
	client := factory.NewHTTPClient(5 * time.Second)
	require.NotNil(t, client)
	require.Equal(t, 5*time.Second, client.Timeout)
	require.Nil(t, client.Transport)
}

func TestNewHTTPClient_WithProxy(t *testing.T) {
	factory := network.NewClientFactory("http://proxy.local:3128")
	client := factory.NewHTTPClient(5 * time.Second)
	require.NotNil(t, client)
	require.NotNil(t, client.Transport)
}

func TestNewHTTPClient_ForTest(t *testing.T) {
	injected := &http.Client{}
	factory := network.NewClientFactoryForTest(injected)
	client := factory.NewHTTPClient(time.Second)
	require.Same(t, injected, client)
}

func TestNewAzureSession(t *testing.T) {
	factory := network.NewClientFactory("")
	session := factory.NewAzureSession(5 * time.Second)
	require.NotNil(t, session)
	session.Close()
}
