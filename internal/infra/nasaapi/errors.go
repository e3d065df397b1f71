package nasaapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error kinds reported by the fetch helper.
const (
	KindHTTPError      = "http_error"
	KindConnectTimeout = "connect_timeout"
	KindRequestError   = "request_error"
	KindDecodeError    = "decode_error"
)

// Error is an upstream failure. Status is set only for KindHTTPError.
type Error struct {
	Kind    string
	Status  int
	Message string
	URL     string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTPError {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind returns the machine-readable failure kind.
func (e *Error) ErrorKind() string { return e.Kind }

// HTTPStatus returns the upstream status, 0 when no response was received.
func (e *Error) HTTPStatus() int { return e.Status }

// Upstream marks the error as originating outside this process.
func (e *Error) Upstream() bool { return true }

// errorMessageKeys are probed in order; api.nasa.gov, DONKI and the images API each use
// a different one.
var errorMessageKeys = []string{"msg", "error.message", "error", "message", "error_message", "reason"}

// extractErrorMessage pulls a human message out of an error body, falling back to the raw
// body and finally the status text.
func extractErrorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		for _, key := range errorMessageKeys {
			v := doc.Get(key)
			if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
				return strings.TrimSpace(v.Str)
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		if len(text) > 300 {
			text = text[:300]
		}
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Unknown error"
}
