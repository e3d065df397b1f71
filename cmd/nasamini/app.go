package main

import (
	"github.com/cockroachdb/errors"

	"github.com/matiasleandrokruk/nasamini/internal/domain/nasa"
	"github.com/matiasleandrokruk/nasamini/internal/domain/tool"
	"github.com/matiasleandrokruk/nasamini/internal/infra/config"
	"github.com/matiasleandrokruk/nasamini/internal/infra/eventbus"
	"github.com/matiasleandrokruk/nasamini/internal/infra/nasaapi"
)

// app holds the wired domain for one process.
type app struct {
	cfg      config.Config
	bus      *eventbus.Bus
	registry *tool.ToolRegistry
}

func newApp(cfg config.Config) (*app, error) {
	client := nasaapi.NewClient(nasaapi.WithTimeout(cfg.HTTPTimeout))
	svc := nasa.NewService(client, nasa.Endpoints{
		NASABaseURL:   cfg.NASABaseURL,
		ImagesBaseURL: cfg.ImagesBaseURL,
	}, config.NASAKey)

	bus := eventbus.New()
	registry := tool.NewToolRegistry(
		tool.WithEventBus(bus),
		tool.WithErrorStyle(tool.ParseErrorStyle(cfg.ErrorStyle)),
	)
	if err := tool.RegisterBuiltInExecutors(registry, svc); err != nil {
		return nil, errors.Wrap(err, "register tools")
	}

	return &app{cfg: cfg, bus: bus, registry: registry}, nil
}
