package tool

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/matiasleandrokruk/nasamini/internal/domain/nasa"
)

// Built-in tool names.
const (
	BuiltinAPOD        = "nasa_apod"
	BuiltinMarsRover   = "nasa_mars_rover_photos"
	BuiltinNEOFeed     = "nasa_neo_feed"
	BuiltinEPICLatest  = "nasa_epic_latest"
	BuiltinDONKIEvents = "nasa_donki_events"
	BuiltinMediaSearch = "nasa_media_search"
)

func builtinDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        BuiltinAPOD,
			Description: "NASA Astronomy Picture of the Day: title, date, media type, image urls and a shortened explanation. Omit date for today's entry.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{
				"date":{"type":["string","null"],"description":"YYYY-MM-DD; empty for today"}},
				"additionalProperties":false}`),
		},
		{
			Name:        BuiltinMarsRover,
			Description: "Mars rover photos taken on an Earth date, optionally filtered by camera. Returns the total photo count and up to limit photos.",
			InputSchema: json.RawMessage(`{"type":"object","required":["rover","earth_date"],"properties":{
				"rover":{"type":"string","description":"curiosity, opportunity, spirit or perseverance"},
				"earth_date":{"type":"string","description":"YYYY-MM-DD"},
				"camera":{"type":["string","null"],"description":"camera abbreviation, e.g. FHAZ, NAVCAM"},
				"limit":{"type":["integer","null"],"description":"maximum photos returned (default 25)"}},
				"additionalProperties":false}`),
		},
		{
			Name:        BuiltinNEOFeed,
			Description: "Near-Earth objects with close approaches between two dates, flattened into one list. count is the total after the hazardous filter.",
			InputSchema: json.RawMessage(`{"type":"object","required":["start_date","end_date"],"properties":{
				"start_date":{"type":"string","description":"YYYY-MM-DD"},
				"end_date":{"type":"string","description":"YYYY-MM-DD, at most 7 days after start_date"},
				"hazardous_only":{"type":["boolean","null"],"description":"keep only potentially hazardous asteroids"},
				"limit":{"type":["integer","null"],"description":"maximum objects returned (default 20)"}},
				"additionalProperties":false}`),
		},
		{
			Name:        BuiltinEPICLatest,
			Description: "Metadata for the latest DSCOVR EPIC Earth images (identifier, caption, date, image name).",
			InputSchema: json.RawMessage(`{"type":"object","properties":{
				"mode":{"type":["string","null"],"description":"natural (default) or enhanced"},
				"limit":{"type":["integer","null"],"description":"maximum images returned (default 10)"}},
				"additionalProperties":false}`),
		},
		{
			Name:        BuiltinDONKIEvents,
			Description: "DONKI space-weather events (FLR solar flares, CME coronal mass ejections, GST geomagnetic storms), newest first. ALL queries every type.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{
				"event_type":{"type":["string","null"],"description":"FLR, CME, GST or ALL (default)"},
				"start_date":{"type":["string","null"],"description":"YYYY-MM-DD; upstream default is 30 days ago"},
				"end_date":{"type":["string","null"],"description":"YYYY-MM-DD; upstream default is today"},
				"limit":{"type":["integer","null"],"description":"maximum events returned (default 20)"}},
				"additionalProperties":false}`),
		},
		{
			Name:        BuiltinMediaSearch,
			Description: "Search the NASA Image and Video Library. Returns one page of results with a preview link per item.",
			InputSchema: json.RawMessage(`{"type":"object","required":["q"],"properties":{
				"q":{"type":"string","description":"free-text query"},
				"media_type":{"type":["string","null"],"description":"image (default), video, audio or a comma list"},
				"year_start":{"type":["string","integer","null"],"description":"YYYY"},
				"year_end":{"type":["string","integer","null"],"description":"YYYY"},
				"page":{"type":["integer","null"],"description":"result page, starting at 1"}},
				"additionalProperties":false}`),
		},
	}
}

// RegisterBuiltInExecutors registers the six NASA tools backed by svc.
func RegisterBuiltInExecutors(registry *ToolRegistry, svc *nasa.Service) error {
	executors := map[string]ToolExecutor{
		BuiltinAPOD:        NewAPODExecutor(svc),
		BuiltinMarsRover:   NewMarsRoverExecutor(svc),
		BuiltinNEOFeed:     NewNEOFeedExecutor(svc),
		BuiltinEPICLatest:  NewEPICLatestExecutor(svc),
		BuiltinDONKIEvents: NewDONKIEventsExecutor(svc),
		BuiltinMediaSearch: NewMediaSearchExecutor(svc),
	}

	for _, def := range builtinDefinitions() {
		if err := registry.Register(def, executors[def.Name]); err != nil && !errors.Is(err, ErrToolExecutorAlreadyRegistered) {
			return errors.Wrapf(err, "register %s", def.Name)
		}
	}
	return nil
}
