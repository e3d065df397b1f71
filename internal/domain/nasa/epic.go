package nasa

import "context"

// EPIC image collections.
const (
	EPICModeNatural  = "natural"
	EPICModeEnhanced = "enhanced"

	DefaultEPICLimit = 10
)

// EPICInput selects the collection. An empty Mode means natural.
type EPICInput struct {
	Mode  string `json:"mode"`
	Limit *Count `json:"limit"`
}

// EPICImage is metadata for one EPIC frame. No archive URL is built.
type EPICImage struct {
	Identifier *string `json:"identifier"`
	Caption    *string `json:"caption"`
	Date       *string `json:"date"`
	Image      *string `json:"image"`
}

// EPICResult lists the most recent day of EPIC frames.
type EPICResult struct {
	Mode  string      `json:"mode"`
	Count int         `json:"count"`
	Items []EPICImage `json:"items"`
}

// EPICLatest returns metadata for the latest EPIC images.
func (s *Service) EPICLatest(ctx context.Context, in EPICInput) (*EPICResult, error) {
	mode := normalizeID(in.Mode)
	if mode == "" {
		mode = EPICModeNatural
	}
	if mode != EPICModeNatural && mode != EPICModeEnhanced {
		return nil, invalidInput("mode must be %q or %q, got %q", EPICModeNatural, EPICModeEnhanced, in.Mode)
	}
	limit := clampLimit(in.Limit, DefaultEPICLimit)

	doc, err := s.fetch.GetJSON(ctx, s.endpoints.epic(mode), s.baseParams())
	if err != nil {
		return nil, err
	}

	frames := arrayOf(doc)
	items := make([]EPICImage, 0, min(len(frames), limit))
	for _, f := range capList(frames, limit) {
		items = append(items, EPICImage{
			Identifier: optString(f.Get("identifier")),
			Caption:    optString(f.Get("caption")),
			Date:       optString(f.Get("date")),
			Image:      optString(f.Get("image")),
		})
	}

	return &EPICResult{Mode: mode, Count: len(frames), Items: items}, nil
}
