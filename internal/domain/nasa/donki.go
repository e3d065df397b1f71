package nasa

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/effective-security/xlog"
	"github.com/tidwall/gjson"
)

// DONKIAll fans out to every type in DONKIEventTypes.
const (
	DONKIAll          = "ALL"
	DefaultDONKILimit = 20
)

// DONKIEventTypes lists the supported space-weather event families in fan-out order:
// solar flares, coronal mass ejections, geomagnetic storms.
var DONKIEventTypes = []string{"FLR", "CME", "GST"}

// Each event family names its fields differently; the first non-empty key wins.
var (
	donkiIDKeys     = []string{"flrID", "activityID", "gstID"}
	donkiStartKeys  = []string{"beginTime", "startTime", "eventTime"}
	donkiSourceKeys = []string{"sourceLocation", "activeRegionNum"}
	donkiLinkKeys   = []string{"link"}
)

// DONKIInput selects event types and an optional date window.
// Empty dates let the upstream apply its default (last 30 days).
type DONKIInput struct {
	EventType string `json:"event_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Limit     *Count `json:"limit"`
}

// DONKIEvent is one normalized space-weather event.
type DONKIEvent struct {
	EventType string  `json:"event_type"`
	ID        *string `json:"id"`
	StartTime *string `json:"start_time"`
	Source    *string `json:"source"`
	Link      *string `json:"link"`
}

// DONKIResult: Count is the combined size before Limit is applied.
type DONKIResult struct {
	EventTypes []string     `json:"event_types"`
	StartDate  *string      `json:"start_date"`
	EndDate    *string      `json:"end_date"`
	Count      int          `json:"count"`
	Events     []DONKIEvent `json:"events"`
}

// DONKIEvents fetches space-weather events, newest first.
//
// For ALL the per-type calls run sequentially. A type whose response is not a list
// contributes nothing, but a fetch error aborts the whole call.
func (s *Service) DONKIEvents(ctx context.Context, in DONKIInput) (*DONKIResult, error) {
	types, err := resolveDONKITypes(in.EventType)
	if err != nil {
		return nil, err
	}
	limit := clampLimit(in.Limit, DefaultDONKILimit)

	params := s.baseParams()
	startDate := strings.TrimSpace(in.StartDate)
	endDate := strings.TrimSpace(in.EndDate)
	if startDate != "" {
		params.Set("startDate", startDate)
	}
	if endDate != "" {
		params.Set("endDate", endDate)
	}

	events := make([]DONKIEvent, 0)
	for _, eventType := range types {
		doc, err := s.fetch.GetJSON(ctx, s.endpoints.donki(eventType), params)
		if err != nil {
			return nil, err
		}
		if !doc.IsArray() {
			logger.ContextKV(ctx, xlog.DEBUG,
				"reason", "donki_non_list_response",
				"event_type", eventType,
			)
			continue
		}
		for _, raw := range doc.Array() {
			events = append(events, toDONKIEvent(eventType, raw))
		}
	}

	sortDONKIEvents(events)

	res := &DONKIResult{
		EventTypes: types,
		Count:      len(events),
		Events:     capList(events, limit),
	}
	if startDate != "" {
		res.StartDate = &startDate
	}
	if endDate != "" {
		res.EndDate = &endDate
	}
	return res, nil
}

func resolveDONKITypes(raw string) ([]string, error) {
	eventType := strings.ToUpper(strings.TrimSpace(raw))
	if eventType == "" || eventType == DONKIAll {
		return slices.Clone(DONKIEventTypes), nil
	}
	if !slices.Contains(DONKIEventTypes, eventType) {
		return nil, invalidInput("event_type must be one of %s or %s, got %q",
			strings.Join(DONKIEventTypes, ", "), DONKIAll, raw)
	}
	return []string{eventType}, nil
}

func toDONKIEvent(eventType string, raw gjson.Result) DONKIEvent {
	return DONKIEvent{
		EventType: eventType,
		ID:        firstNonEmpty(raw, donkiIDKeys...),
		StartTime: firstNonEmpty(raw, donkiStartKeys...),
		Source:    firstNonEmpty(raw, donkiSourceKeys...),
		Link:      firstNonEmpty(raw, donkiLinkKeys...),
	}
}

// sortDONKIEvents orders by start time descending; a missing start time compares as ""
// and therefore lands last. Ties keep fan-out order.
func sortDONKIEvents(events []DONKIEvent) {
	slices.SortStableFunc(events, func(a, b DONKIEvent) int {
		return cmp.Compare(deref(b.StartTime), deref(a.StartTime))
	})
}
