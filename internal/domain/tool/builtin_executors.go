package tool

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/matiasleandrokruk/nasamini/internal/domain/nasa"
)

var ErrBuiltinExecutionFailed = errors.New("builtin tool execution failed")

// serviceCall is one nasa.Service method.
type serviceCall[In any, Out any] func(ctx context.Context, in In) (Out, error)

// runServiceCall decodes params into In, calls the service and encodes the result.
func runServiceCall[In any, Out any](ctx context.Context, svc *nasa.Service, params json.RawMessage, call func(*nasa.Service) serviceCall[In, Out]) (json.RawMessage, error) {
	if svc == nil {
		return nil, errors.Wrap(ErrBuiltinExecutionFailed, "nasa service not configured")
	}

	var in In
	if len(params) > 0 {
		if err := json.Unmarshal(params, &in); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decode params"), ErrToolValidationFailed)
		}
	}

	out, err := call(svc)(ctx, in)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "encode result")
	}
	return raw, nil
}

type APODExecutor struct{ svc *nasa.Service }

func NewAPODExecutor(svc *nasa.Service) ToolExecutor {
	return &APODExecutor{svc: svc}
}

func (e *APODExecutor) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	return runServiceCall(ctx, e.svc, params, func(s *nasa.Service) serviceCall[nasa.APODInput, *nasa.APODResult] {
		return s.APOD
	})
}

type MarsRoverExecutor struct{ svc *nasa.Service }

func NewMarsRoverExecutor(svc *nasa.Service) ToolExecutor {
	return &MarsRoverExecutor{svc: svc}
}

func (e *MarsRoverExecutor) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	return runServiceCall(ctx, e.svc, params, func(s *nasa.Service) serviceCall[nasa.MarsPhotosInput, *nasa.MarsPhotosResult] {
		return s.MarsPhotos
	})
}

type NEOFeedExecutor struct{ svc *nasa.Service }

func NewNEOFeedExecutor(svc *nasa.Service) ToolExecutor {
	return &NEOFeedExecutor{svc: svc}
}

func (e *NEOFeedExecutor) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	return runServiceCall(ctx, e.svc, params, func(s *nasa.Service) serviceCall[nasa.NEOFeedInput, *nasa.NEOFeedResult] {
		return s.NEOFeed
	})
}

type EPICLatestExecutor struct{ svc *nasa.Service }

func NewEPICLatestExecutor(svc *nasa.Service) ToolExecutor {
	return &EPICLatestExecutor{svc: svc}
}

func (e *EPICLatestExecutor) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	return runServiceCall(ctx, e.svc, params, func(s *nasa.Service) serviceCall[nasa.EPICInput, *nasa.EPICResult] {
		return s.EPICLatest
	})
}

type DONKIEventsExecutor struct{ svc *nasa.Service }

func NewDONKIEventsExecutor(svc *nasa.Service) ToolExecutor {
	return &DONKIEventsExecutor{svc: svc}
}

func (e *DONKIEventsExecutor) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	return runServiceCall(ctx, e.svc, params, func(s *nasa.Service) serviceCall[nasa.DONKIInput, *nasa.DONKIResult] {
		return s.DONKIEvents
	})
}

type MediaSearchExecutor struct{ svc *nasa.Service }

func NewMediaSearchExecutor(svc *nasa.Service) ToolExecutor {
	return &MediaSearchExecutor{svc: svc}
}

func (e *MediaSearchExecutor) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	return runServiceCall(ctx, e.svc, params, func(s *nasa.Service) serviceCall[nasa.MediaSearchInput, *nasa.MediaSearchResult] {
		return s.SearchMedia
	})
}
