package apiclient

import "time"

// Request describes a single call. It has no identity beyond the call.
type Request struct {
	Method string
	Path   string // appended to the client base URL
	Body   any    // JSON encoded when non-nil

	// Headers are merged over the defaults; empty values are ignored.
	Headers map[string]string
	// Timeout overrides the client default when positive.
	Timeout time.Duration
}

type RequestOption func(*Request)

func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		for k, v := range headers {
			WithHeader(k, v)(r)
		}
	}
}

func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = timeout
	}
}
