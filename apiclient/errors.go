package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-shop-admin/internal/utils"
)

var (
	// ErrTimeout means the request outlived its timeout and was cancelled.
	ErrTimeout = errors.New("request timeout")
	// ErrConnectivity means no response was received.
	ErrConnectivity = errors.New("connectivity failure")
)

// ErrorMessageFields are probed in order in a failed response body; the
// first non-empty value becomes the error message.
var ErrorMessageFields = []string{"message", "error", "msg"}

const (
	// DefaultErrorMessage is used when a JSON error body names no message.
	DefaultErrorMessage = "server error"
	// DecodeErrorMessage is used when a successful response is not valid JSON.
	DecodeErrorMessage = "invalid JSON response"
)

// APIError is a response the server reported as failed, or one whose body
// could not be decoded.
type APIError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// StatusCode returns the status carried by err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports a 401, which callers answer by signing out.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func newResponseError(resp *http.Response, body []byte) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp, body),
	}
}

func errorMessage(resp *http.Response, body []byte) string {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		if text := statusText(resp); text != "" {
			return text
		}
		return DefaultErrorMessage
	}
	if fields, ok := parsed.(map[string]any); ok {
		if msg, ok := utils.FirstText(fields, ErrorMessageFields...); ok {
			return msg
		}
	}
	return DefaultErrorMessage
}

// statusText is the reason phrase of resp.Status, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
