package nasa

import (
	"context"
	"strconv"
	"strings"
)

// DefaultMediaType is used when the caller gives no media_type.
const DefaultMediaType = "image"

// MediaSearchInput queries the NASA image and video library.
type MediaSearchInput struct {
	Query     string `json:"q"`
	MediaType string `json:"media_type"`
	YearStart Year   `json:"year_start"`
	YearEnd   Year   `json:"year_end"`
	Page      *Count `json:"page"`
}

// MediaItem is one search hit. Preview is the first link href, if any.
type MediaItem struct {
	NASAID      *string `json:"nasa_id"`
	Title       *string `json:"title"`
	DateCreated *string `json:"date_created"`
	Description *string `json:"description"`
	MediaType   *string `json:"media_type"`
	Preview     *string `json:"preview"`
}

// MediaSearchResult holds one page of hits; the page is returned uncapped.
type MediaSearchResult struct {
	Query     string      `json:"query"`
	Page      int         `json:"page"`
	TotalHits *int64      `json:"total_hits"`
	Count     int         `json:"count"`
	Items     []MediaItem `json:"items"`
}

// SearchMedia runs a single-page search.
func (s *Service) SearchMedia(ctx context.Context, in MediaSearchInput) (*MediaSearchResult, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, invalidInput("q is required")
	}
	page := clampLimit(in.Page, 1)

	params := s.baseParams()
	params.Set("q", query)
	params.Set("media_type", normalizeMediaTypes(in.MediaType))
	params.Set("page", strconv.Itoa(page))
	if v := in.YearStart.String(); v != "" {
		params.Set("year_start", v)
	}
	if v := in.YearEnd.String(); v != "" {
		params.Set("year_end", v)
	}

	doc, err := s.fetch.GetJSON(ctx, s.endpoints.mediaSearch(), params)
	if err != nil {
		return nil, err
	}

	collection := doc.Get("collection")
	raw := arrayOf(collection.Get("items"))
	items := make([]MediaItem, 0, len(raw))
	for _, it := range raw {
		data := it.Get("data.0")
		item := MediaItem{
			NASAID:      optString(data.Get("nasa_id")),
			Title:       optString(data.Get("title")),
			DateCreated: optString(data.Get("date_created")),
			MediaType:   optString(data.Get("media_type")),
		}
		if desc := optString(data.Get("description")); desc != nil {
			text := truncateText(*desc, maxTextRunes)
			item.Description = &text
		}
		for _, link := range arrayOf(it.Get("links")) {
			if href := firstNonEmpty(link, "href"); href != nil {
				item.Preview = href
				break
			}
		}
		items = append(items, item)
	}

	return &MediaSearchResult{
		Query:     query,
		Page:      page,
		TotalHits: optInt(collection.Get("metadata.total_hits")),
		Count:     len(items),
		Items:     items,
	}, nil
}

// normalizeMediaTypes lower-cases a comma list ("Image, VIDEO" -> "image,video").
func normalizeMediaTypes(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = normalizeID(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return DefaultMediaType
	}
	return strings.Join(out, ",")
}
