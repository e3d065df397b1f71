package nasa

import (
	"context"
	"strings"
)

// APODInput selects an Astronomy Picture of the Day entry. An empty Date means today.
type APODInput struct {
	Date string `json:"date"`
}

// APODResult is the flattened APOD entry. Explanation is never null.
type APODResult struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	MediaType   *string `json:"media_type"`
	URL         *string `json:"url"`
	HDURL       *string `json:"hdurl"`
	Explanation string  `json:"explanation"`
}

// APOD fetches a single Astronomy Picture of the Day entry.
func (s *Service) APOD(ctx context.Context, in APODInput) (*APODResult, error) {
	params := s.baseParams()
	if date := strings.TrimSpace(in.Date); date != "" {
		params.Set("date", date)
	}

	doc, err := s.fetch.GetJSON(ctx, s.endpoints.apod(), params)
	if err != nil {
		return nil, err
	}

	return &APODResult{
		Title:       optString(doc.Get("title")),
		Date:        optString(doc.Get("date")),
		MediaType:   optString(doc.Get("media_type")),
		URL:         optString(doc.Get("url")),
		HDURL:       optString(doc.Get("hdurl")),
		Explanation: truncateText(deref(optString(doc.Get("explanation"))), maxTextRunes),
	}, nil
}
