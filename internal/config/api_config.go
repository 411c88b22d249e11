package config

import (
	"net"
	"strings"
	"time"
)

const (
	apiURLVar     = "API_URL"
	apiTimeoutVar = "API_TIMEOUT_MS"

	// DefaultBaseURL is the production backend root.
	DefaultBaseURL = "https://backend-data-sentinel.vercel.app/v1"
	// DefaultTimeoutMillis bounds every request unless overridden per call.
	DefaultTimeoutMillis = 10000
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns API_URL when set. Otherwise DEV points at the local
// proxy prefix and every other environment at the production backend.
func (API) GetAPIBaseURL() string {
	if url := GetEnv(apiURLVar, ""); url != "" {
		return strings.TrimRight(url, "/")
	}
	if (EnvVars{}).GetEnv() == EnvDev {
		return "http://" + dialableAddr((Proxy{}).GetProxyAddr()) + ProxyLocalPrefix
	}
	return DefaultBaseURL
}

// dialableAddr turns a listen address into one a client can connect to.
// An empty or unspecified host becomes localhost.
func dialableAddr(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "localhost" + listenAddr
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

func (API) GetRequestTimeout() time.Duration {
	return time.Duration(GetEnvInt(apiTimeoutVar, DefaultTimeoutMillis)) * time.Millisecond
}
