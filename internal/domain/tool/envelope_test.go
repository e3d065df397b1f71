package tool

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasleandrokruk/nasamini/internal/domain/nasa"
	"github.com/matiasleandrokruk/nasamini/internal/infra/nasaapi"
)

func TestSuccess_OKFirstAndNotOverridable(t *testing.T) {
	t.Parallel()

	out, err := Success(map[string]any{"ok": false, "count": 0, "items": []any{}})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true,"count":0,"items":[]}`, string(out))
	assert.True(t, IsOK(out))
}

func TestSuccess_EscapesKeys(t *testing.T) {
	t.Parallel()

	out, err := Success(json.RawMessage(`{"a.b":1,"c*":2}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"a.b":1,"c*":2}`, string(out))
}

func TestSuccess_RejectsNonObject(t *testing.T) {
	t.Parallel()

	_, err := Success([]int{1, 2})
	assert.ErrorIs(t, err, ErrPayloadNotObject)
}

func TestFailure_Styles(t *testing.T) {
	t.Parallel()

	notFound := &nasaapi.Error{Kind: nasaapi.KindHTTPError, Status: 404, Message: "Not Found"}

	tcs := []struct {
		name       string
		err        error
		flat       string
		structured string
	}{
		{
			name:       "http error",
			err:        errors.Wrap(notFound, "apod"),
			flat:       `{"ok":false,"error":"http_error: HTTP 404: Not Found"}`,
			structured: `{"ok":false,"error":{"where":"nasa","kind":"http_error","status":404,"message":"Not Found"}}`,
		},
		{
			name:       "timeout",
			err:        &nasaapi.Error{Kind: nasaapi.KindConnectTimeout, Message: "request timed out after 15s"},
			flat:       `{"ok":false,"error":"connect_timeout: request timed out after 15s"}`,
			structured: `{"ok":false,"error":{"where":"nasa","kind":"connect_timeout","message":"request timed out after 15s"}}`,
		},
		{
			name:       "invalid input",
			err:        errors.Mark(errors.New("rover is required"), nasa.ErrInvalidInput),
			flat:       `{"ok":false,"error":"invalid_params: rover is required"}`,
			structured: `{"ok":false,"error":{"where":"server","kind":"invalid_params","message":"rover is required"}}`,
		},
		{
			name:       "unexpected",
			err:        errors.New("parse number \"far\""),
			flat:       `{"ok":false,"error":"unexpected: parse number \"far\""}`,
			structured: `{"ok":false,"error":{"where":"server","kind":"unexpected","message":"parse number \"far\""}}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.JSONEq(t, tc.flat, string(Failure(tc.err, ErrorStyleString)))
			assert.JSONEq(t, tc.structured, string(Failure(tc.err, ErrorStyleStructured)))
			assert.False(t, IsOK(Failure(tc.err, ErrorStyleString)))
		})
	}
}

func TestParseErrorStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrorStyleStructured, ParseErrorStyle("structured"))
	assert.Equal(t, ErrorStyleString, ParseErrorStyle("string"))
	assert.Equal(t, ErrorStyleString, ParseErrorStyle(""))
}
