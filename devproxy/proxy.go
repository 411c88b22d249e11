// Package devproxy forwards a local path prefix to the real backend root so a
// client configured with a relative base URL can be developed against the
// production API without CORS trouble.
package devproxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-shop-admin/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Proxy struct {
	target       *url.URL
	localPrefix  string
	remotePrefix string
	origins      AllowedOrigins
	log          zerolog.Logger
	router       *mux.Router
}

type Option func(*Proxy)

func WithLogger(l zerolog.Logger) Option {
	return func(p *Proxy) {
		p.log = l
	}
}

// WithPrefixes replaces the default /api -> /v1 rewrite.
func WithPrefixes(local, remote string) Option {
	return func(p *Proxy) {
		p.localPrefix = strings.TrimRight(local, "/")
		p.remotePrefix = strings.TrimRight(remote, "/")
	}
}

func WithAllowedOrigins(origins ...string) Option {
	return func(p *Proxy) {
		for _, o := range origins {
			p.origins[o] = struct{}{}
		}
	}
}

// New builds a proxy to target, the backend root without the API version
// prefix, e.g. https://backend.example.com.
func New(target string, opts ...Option) (*Proxy, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("[devproxy New] parse target: %w", err)
	}
	if targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("[devproxy New] target %q must be absolute", target)
	}

	p := &Proxy{
		target:       targetURL,
		localPrefix:  config.ProxyLocalPrefix,
		remotePrefix: config.ProxyRemotePrefix,
		origins:      AllowedOrigins{},
		log:          log.Logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With().Str("component", "devproxy").Logger()

	reverse := &httputil.ReverseProxy{
		Rewrite:      p.rewrite,
		ErrorHandler: p.proxyError,
	}

	p.router = mux.NewRouter()
	p.router.Use(p.loggingMiddleware, p.corsMiddleware)
	p.router.Path(p.localPrefix).Handler(reverse)
	p.router.PathPrefix(p.localPrefix + "/").Handler(reverse)
	return p, nil
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

// RewritePath maps a local path onto the backend, e.g. /api/products -> /v1/products.
func (p *Proxy) RewritePath(path string) string {
	return p.remotePrefix + strings.TrimPrefix(path, p.localPrefix)
}

// rewrite also points the Host header at the target, which virtual-hosted
// backends require.
func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	pr.Out.URL.Path = p.RewritePath(pr.In.URL.Path)
	pr.Out.URL.RawPath = ""
	pr.SetURL(p.target)
	pr.SetXForwarded()
}

func (p *Proxy) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	p.log.Error().Err(err).Str("path", r.URL.Path).Msg("Upstream request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte(`{"message":"upstream unavailable"}`))
}

func (p *Proxy) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		p.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Proxied")
	})
}
