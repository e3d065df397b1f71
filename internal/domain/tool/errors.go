package tool

import (
	"github.com/cockroachdb/errors"
	"github.com/matiasleandrokruk/nasamini/internal/domain/nasa"
	"github.com/matiasleandrokruk/nasamini/internal/infra/nasaapi"
)

// Error kinds produced outside the fetch helper.
const (
	KindInvalidParams = "invalid_params"
	KindUnexpected    = "unexpected"
	KindPanic         = "panic"
)

// Where values for the structured error form.
const (
	WhereNASA   = "nasa"
	WhereServer = "server"
)

// ErrorStyle selects how failures are rendered in the envelope.
type ErrorStyle string

const (
	// ErrorStyleString renders "error" as "<kind>: <message>".
	ErrorStyleString ErrorStyle = "string"
	// ErrorStyleStructured renders "error" as {where, kind, status, message}.
	ErrorStyleStructured ErrorStyle = "structured"
)

// ParseErrorStyle falls back to ErrorStyleString for anything but "structured".
func ParseErrorStyle(s string) ErrorStyle {
	if ErrorStyle(s) == ErrorStyleStructured {
		return ErrorStyleStructured
	}
	return ErrorStyleString
}

// ErrorDetail is the structured description of a failed invocation.
type ErrorDetail struct {
	Where   string `json:"where"`
	Kind    string `json:"kind"`
	Status  *int   `json:"status,omitempty"`
	Message string `json:"message"`
}

// DescribeError classifies err. Upstream failures keep their own kind and status;
// input problems are invalid_params; a recovered panic is panic; the rest is unexpected.
func DescribeError(err error) ErrorDetail {
	var upstream *nasaapi.Error
	if errors.As(err, &upstream) {
		d := ErrorDetail{Where: WhereNASA, Kind: upstream.ErrorKind(), Message: upstream.Message}
		if status := upstream.HTTPStatus(); status > 0 {
			d.Status = &status
		}
		return d
	}

	d := ErrorDetail{Where: WhereServer, Kind: KindUnexpected, Message: err.Error()}
	switch {
	case errors.Is(err, ErrToolPanicked):
		d.Kind = KindPanic
	case errors.Is(err, ErrToolValidationFailed), errors.Is(err, nasa.ErrInvalidInput):
		d.Kind = KindInvalidParams
	}
	return d
}

// errorString is the "<kind>: <message>" rendering. Upstream messages keep the
// "HTTP <status>:" prefix so the status survives in the flat form.
func errorString(err error) string {
	d := DescribeError(err)
	var upstream *nasaapi.Error
	if errors.As(err, &upstream) {
		return d.Kind + ": " + upstream.Error()
	}
	return d.Kind + ": " + d.Message
}
