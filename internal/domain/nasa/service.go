// Package nasa implements the fetch-normalize adapters over the public NASA APIs.
// Each Service method validates its input, calls the Fetcher once (DONKI "ALL": once per
// event type, sequentially), and projects the upstream JSON into a flat result.
// Methods return errors; turning them into envelopes is the tool layer's job.
package nasa

import (
	"context"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/tidwall/gjson"
)

var logger = xlog.NewPackageLogger("github.com/matiasleandrokruk/nasamini/internal/domain", "nasa")

// ErrInvalidInput marks errors caused by caller-supplied parameters.
var ErrInvalidInput = errors.New("invalid input")

// Fetcher performs one upstream GET and returns the parsed body.
// nasaapi.Client satisfies it.
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values) (gjson.Result, error)
}

// KeyFunc resolves the upstream API key for a single call.
type KeyFunc func() string

// Endpoints holds the upstream base URLs, without trailing slashes.
type Endpoints struct {
	NASABaseURL   string
	ImagesBaseURL string
}

// DefaultEndpoints returns the public production hosts.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		NASABaseURL:   "https://api.nasa.gov",
		ImagesBaseURL: "https://images-api.nasa.gov",
	}
}

func (e Endpoints) apod() string { return e.NASABaseURL + "/planetary/apod" }

func (e Endpoints) marsPhotos(rover string) string {
	return e.NASABaseURL + "/mars-photos/api/v1/rovers/" + url.PathEscape(rover) + "/photos"
}

func (e Endpoints) neoFeed() string { return e.NASABaseURL + "/neo/rest/v1/feed" }

func (e Endpoints) epic(mode string) string { return e.NASABaseURL + "/EPIC/api/" + mode }

func (e Endpoints) donki(eventType string) string { return e.NASABaseURL + "/DONKI/" + eventType }

func (e Endpoints) mediaSearch() string { return e.ImagesBaseURL + "/search" }

// Service exposes one method per adapter.
type Service struct {
	fetch     Fetcher
	endpoints Endpoints
	key       KeyFunc
}

// NewService creates a Service. A nil key func resolves to "DEMO_KEY".
func NewService(fetch Fetcher, endpoints Endpoints, key KeyFunc) *Service {
	if key == nil {
		key = func() string { return "DEMO_KEY" }
	}
	endpoints.NASABaseURL = strings.TrimRight(endpoints.NASABaseURL, "/")
	endpoints.ImagesBaseURL = strings.TrimRight(endpoints.ImagesBaseURL, "/")
	return &Service{fetch: fetch, endpoints: endpoints, key: key}
}

// baseParams starts every upstream query with the resolved API key.
func (s *Service) baseParams() url.Values {
	return url.Values{"api_key": {s.key()}}
}

func invalidInput(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidInput)
}

// clampLimit applies def when p is nil; any explicit value below 1 becomes 1.
func clampLimit(p *Count, def int) int {
	if p == nil {
		return def
	}
	if *p < 1 {
		return 1
	}
	return int(*p)
}

// normalizeID lower-cases and trims identifier-like parameters (rover, camera, mode).
func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

const maxTextRunes = 600

// truncateText trims s and cuts it to limit runes, marking the cut with an ellipsis.
func truncateText(s string, limit int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:limit]), unicode.IsSpace) + "…"
}

func capList[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
