package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	DefaultTimeout = 10 * time.Second

	HeaderRequestID = "X-Request-ID"
)

// CredentialStore is the part of the credential store the client reads.
type CredentialStore interface {
	GetToken() (string, bool)
	IsAuthenticated() bool
	ClearToken()
}

// Client issues JSON requests against a base URL. The bearer token is read
// from the store when each request is built, and every call is bounded by its
// own timeout. Failures are returned once and never retried.
type Client struct {
	baseURL        string
	store          CredentialStore
	httpClient     *http.Client
	timeout        time.Duration
	defaultHeaders http.Header
	requestID      func() string
	log            zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithDefaultTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.defaultHeaders.Set(key, value)
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithRequestIDs replaces the X-Request-ID generator; nil disables the header.
func WithRequestIDs(next func() string) Option {
	return func(c *Client) {
		c.requestID = next
	}
}

func New(baseURL string, store CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		defaultHeaders: http.Header{
			"Content-Type": {"application/json"},
			"Accept":       {"application/json"},
		},
		requestID: uuid.NewString,
		log:       log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "apiclient").Logger()
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) IsAuthenticated() bool {
	return c.store.IsAuthenticated()
}

func (c *Client) GetToken() (string, bool) {
	return c.store.GetToken()
}

func (c *Client) ClearToken() {
	c.store.ClearToken()
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequest(http.MethodGet, path, nil, opts), out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequest(http.MethodPost, path, body, opts), out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequest(http.MethodPut, path, body, opts), out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequest(http.MethodPatch, path, body, opts), out)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, newRequest(http.MethodDelete, path, nil, opts), out)
}

func newRequest(method, path string, body any, opts []RequestOption) Request {
	r := Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Do sends r and decodes a successful JSON body into out. out may be nil to
// discard the body. An empty successful body leaves out untouched.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	timeout := c.timeout
	if r.Timeout > 0 {
		timeout = r.Timeout
	}
	reqCtx, cancel := context.WithTimeoutCause(ctx, timeout, ErrTimeout)
	defer cancel()

	var body io.Reader
	if r.Body != nil {
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("[apiclient Do] encode %s %s body: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(reqCtx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return fmt.Errorf("[apiclient Do] build %s %s: %w", r.Method, r.Path, err)
	}
	c.setHeaders(req, r.Headers)

	logger := c.log.With().
		Str("method", r.Method).
		Str("path", r.Path).
		Str("request_id", req.Header.Get(HeaderRequestID)).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = transportError(reqCtx, r, err)
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Request failed")
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = transportError(reqCtx, r, err)
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("Reading response failed")
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newResponseError(resp, data)
		logger.Error().Int("status", apiErr.StatusCode).Str("error", apiErr.Message).Msg("Request rejected")
		return apiErr
	}

	if err := decode(resp.StatusCode, data, out); err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("Response decode failed")
		return err
	}
	logger.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Request completed")
	return nil
}

// setHeaders layers defaults, caller overrides and, when a token is stored,
// the bearer Authorization header.
func (c *Client) setHeaders(req *http.Request, overrides map[string]string) {
	req.Header = c.defaultHeaders.Clone()
	if c.requestID != nil {
		req.Header.Set(HeaderRequestID, c.requestID())
	}
	for k, v := range overrides {
		if v == "" {
			continue
		}
		req.Header.Set(k, v)
	}
	if token, ok := c.store.GetToken(); ok {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
}

// transportError tells our own timeout apart from every other way of not
// getting a response, including cancellation by the caller.
func transportError(reqCtx context.Context, r Request, err error) error {
	if errors.Is(context.Cause(reqCtx), ErrTimeout) {
		return fmt.Errorf("%s %s: %w", r.Method, r.Path, ErrTimeout)
	}
	return fmt.Errorf("%s %s: %w: %w", r.Method, r.Path, ErrConnectivity, err)
}

func decode(status int, data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !json.Valid(data) {
		return &APIError{StatusCode: status, Message: DecodeErrorMessage, err: errors.New("malformed JSON")}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{StatusCode: status, Message: DecodeErrorMessage, err: err}
	}
	return nil
}
