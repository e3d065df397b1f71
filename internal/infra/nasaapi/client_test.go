package nasaapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_Success_SendsParams(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/planetary/apod", r.URL.Path)
		assert.Equal(t, "k1", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"X","nested":{"n":2}}`))
	}))
	defer srv.Close()

	c := NewClient()
	doc, err := c.GetJSON(context.Background(), srv.URL+"/planetary/apod", url.Values{
		"api_key": {"k1"},
		"date":    {"2024-01-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, "X", doc.Get("title").String())
	assert.Equal(t, int64(2), doc.Get("nested.n").Int())
	assert.False(t, doc.Get("missing.deeper").Exists())
}

func TestGetJSON_FollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new?"+r.URL.RawQuery, http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	doc, err := NewClient().GetJSON(context.Background(), srv.URL+"/old", nil)
	require.NoError(t, err)
	assert.True(t, doc.IsArray())
	assert.Len(t, doc.Array(), 3)
}

func TestGetJSON_HTTPErrors(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "msg key", status: http.StatusBadRequest, body: `{"code":400,"msg":"Date must be between Jun 16, 1995 and today."}`, message: "Date must be between Jun 16, 1995 and today."},
		{name: "nested error", status: http.StatusForbidden, body: `{"error":{"code":"API_KEY_INVALID","message":"An invalid api_key was supplied."}}`, message: "An invalid api_key was supplied."},
		{name: "error string", status: http.StatusNotFound, body: `{"error":"No data"}`, message: "No data"},
		{name: "plain text", status: http.StatusBadGateway, body: "upstream down", message: "upstream down"},
		{name: "empty body", status: http.StatusNotFound, body: "", message: "Not Found"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient().GetJSON(context.Background(), srv.URL, url.Values{"api_key": {"secret"}})
			require.Error(t, err)

			var fetchErr *Error
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, KindHTTPError, fetchErr.ErrorKind())
			assert.Equal(t, tc.status, fetchErr.HTTPStatus())
			assert.Equal(t, tc.message, fetchErr.Message)
			assert.NotContains(t, fetchErr.URL, "secret")
		})
	}
}

func TestGetJSON_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(WithTimeout(50 * time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, c.Timeout())

	_, err := c.GetJSON(context.Background(), srv.URL, nil)
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindConnectTimeout, fetchErr.Kind)
}

func TestGetJSON_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := NewClient().GetJSON(context.Background(), addr, url.Values{"api_key": {"secret"}})
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindRequestError, fetchErr.Kind)
	assert.Zero(t, fetchErr.HTTPStatus())
	assert.NotContains(t, err.Error(), "secret")
}

func TestGetJSON_NonJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := NewClient().GetJSON(context.Background(), srv.URL, nil)
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindDecodeError, fetchErr.Kind)
}

func TestGetJSON_RelativeURL_IsRequestError(t *testing.T) {
	t.Parallel()

	_, err := NewClient().GetJSON(context.Background(), "/planetary/apod", nil)
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindRequestError, fetchErr.Kind)
}

func TestRedact(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://api.nasa.gov/planetary/apod?api_key=abc&date=2024-01-01")
	require.NoError(t, err)
	got := redact(u)
	assert.NotContains(t, got, "abc")
	assert.Contains(t, got, "date=2024-01-01")
	assert.Contains(t, got, "api_key=REDACTED")
}
