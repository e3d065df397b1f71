package nasa

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// DefaultNEOLimit caps the item list when the caller gives no limit.
const DefaultNEOLimit = 20

// NEOFeedInput selects a date window of near-Earth objects.
type NEOFeedInput struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	HazardousOnly bool   `json:"hazardous_only"`
	Limit         *Count `json:"limit"`
}

// NEOObject is one flattened near-Earth object with its first close approach.
type NEOObject struct {
	ID                     *string  `json:"id"`
	Name                   *string  `json:"name"`
	Date                   string   `json:"date"`
	IsPotentiallyHazardous bool     `json:"is_potentially_hazardous"`
	AbsoluteMagnitudeH     *float64 `json:"absolute_magnitude_h"`
	EstimatedDiameterMMin  *float64 `json:"estimated_diameter_m_min"`
	EstimatedDiameterMMax  *float64 `json:"estimated_diameter_m_max"`
	CloseApproachDate      *string  `json:"close_approach_date"`
	MissDistanceKM         *float64 `json:"miss_distance_km"`
	RelativeVelocityKPS    *float64 `json:"relative_velocity_kps"`
	OrbitingBody           *string  `json:"orbiting_body"`
	NASAJPLURL             *string  `json:"nasa_jpl_url"`
}

// NEOFeedResult: Count is the filtered size before Limit is applied.
type NEOFeedResult struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Count     int         `json:"count"`
	Items     []NEOObject `json:"items"`
}

// NEOFeed flattens the date-grouped NEO feed into one list ordered by date.
func (s *Service) NEOFeed(ctx context.Context, in NEOFeedInput) (*NEOFeedResult, error) {
	startDate := strings.TrimSpace(in.StartDate)
	endDate := strings.TrimSpace(in.EndDate)
	if startDate == "" || endDate == "" {
		return nil, invalidInput("start_date and end_date are required")
	}
	limit := clampLimit(in.Limit, DefaultNEOLimit)

	params := s.baseParams()
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	doc, err := s.fetch.GetJSON(ctx, s.endpoints.neoFeed(), params)
	if err != nil {
		return nil, err
	}

	objects, err := flattenNEO(doc.Get("near_earth_objects"), in.HazardousOnly)
	if err != nil {
		return nil, err
	}

	return &NEOFeedResult{
		StartDate: startDate,
		EndDate:   endDate,
		Count:     len(objects),
		Items:     capList(objects, limit),
	}, nil
}

// flattenNEO walks date keys in ascending order, keeping upstream order within a date.
func flattenNEO(byDate gjson.Result, hazardousOnly bool) ([]NEOObject, error) {
	groups := map[string]gjson.Result{}
	dates := make([]string, 0, 8)
	byDate.ForEach(func(key, value gjson.Result) bool {
		dates = append(dates, key.String())
		groups[key.String()] = value
		return true
	})
	sort.Strings(dates)

	out := make([]NEOObject, 0)
	for _, date := range dates {
		for _, raw := range arrayOf(groups[date]) {
			hazardous := raw.Get("is_potentially_hazardous_asteroid").Bool()
			if hazardousOnly && !hazardous {
				continue
			}
			obj, err := toNEOObject(date, raw, hazardous)
			if err != nil {
				return nil, err
			}
			out = append(out, obj)
		}
	}
	return out, nil
}

func toNEOObject(date string, raw gjson.Result, hazardous bool) (NEOObject, error) {
	obj := NEOObject{
		ID:                     optString(raw.Get("id")),
		Name:                   optString(raw.Get("name")),
		Date:                   date,
		IsPotentiallyHazardous: hazardous,
		AbsoluteMagnitudeH:     optNumber(raw.Get("absolute_magnitude_h")),
		EstimatedDiameterMMin:  optNumber(raw.Get("estimated_diameter.meters.estimated_diameter_min")),
		EstimatedDiameterMMax:  optNumber(raw.Get("estimated_diameter.meters.estimated_diameter_max")),
		NASAJPLURL:             optString(raw.Get("nasa_jpl_url")),
	}

	approach := raw.Get("close_approach_data.0")
	if !approach.Exists() {
		return obj, nil
	}

	var err error
	obj.CloseApproachDate = optString(approach.Get("close_approach_date"))
	obj.OrbitingBody = optString(approach.Get("orbiting_body"))
	if obj.MissDistanceKM, err = optFloat(approach.Get("miss_distance.kilometers")); err != nil {
		return obj, errors.Wrapf(err, "neo %s miss_distance", deref(obj.ID))
	}
	if obj.RelativeVelocityKPS, err = optFloat(approach.Get("relative_velocity.kilometers_per_second")); err != nil {
		return obj, errors.Wrapf(err, "neo %s relative_velocity", deref(obj.ID))
	}
	return obj, nil
}
