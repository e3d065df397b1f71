package nasa

import (
	"context"
	"strings"
)

// DefaultMarsPhotoLimit caps the photo list when the caller gives no limit.
const DefaultMarsPhotoLimit = 25

// MarsPhotosInput selects rover photos for one Earth date.
// Rover is passed through unvalidated (curiosity, opportunity, spirit, perseverance).
type MarsPhotosInput struct {
	Rover     string `json:"rover"`
	EarthDate string `json:"earth_date"`
	Camera    string `json:"camera"`
	Limit     *Count `json:"limit"`
}

// MarsPhoto is one normalized photo record.
type MarsPhoto struct {
	ID        *int64  `json:"id"`
	Camera    *string `json:"camera"`
	ImgSrc    *string `json:"img_src"`
	EarthDate *string `json:"earth_date"`
	RoverName *string `json:"rover_name"`
}

// MarsPhotosResult carries the upstream photo count and the capped list.
// Zero photos is a normal result.
type MarsPhotosResult struct {
	Count int         `json:"count"`
	Items []MarsPhoto `json:"items"`
}

// MarsPhotos lists rover photos taken on EarthDate, optionally filtered by camera.
func (s *Service) MarsPhotos(ctx context.Context, in MarsPhotosInput) (*MarsPhotosResult, error) {
	rover := normalizeID(in.Rover)
	if rover == "" {
		return nil, invalidInput("rover is required")
	}
	earthDate := strings.TrimSpace(in.EarthDate)
	if earthDate == "" {
		return nil, invalidInput("earth_date is required")
	}
	limit := clampLimit(in.Limit, DefaultMarsPhotoLimit)

	params := s.baseParams()
	params.Set("earth_date", earthDate)
	if camera := normalizeID(in.Camera); camera != "" {
		params.Set("camera", camera)
	}

	doc, err := s.fetch.GetJSON(ctx, s.endpoints.marsPhotos(rover), params)
	if err != nil {
		return nil, err
	}

	photos := arrayOf(doc.Get("photos"))
	items := make([]MarsPhoto, 0, min(len(photos), limit))
	for _, p := range capList(photos, limit) {
		items = append(items, MarsPhoto{
			ID:        optInt(p.Get("id")),
			Camera:    optString(p.Get("camera.name")),
			ImgSrc:    optString(p.Get("img_src")),
			EarthDate: optString(p.Get("earth_date")),
			RoverName: optString(p.Get("rover.name")),
		})
	}

	return &MarsPhotosResult{Count: len(photos), Items: items}, nil
}
