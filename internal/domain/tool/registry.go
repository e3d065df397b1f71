// Package tool holds the tool registry: definitions with compiled input schemas, the
// executors behind them, and the envelope every invocation returns.
package tool

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"

	"github.com/matiasleandrokruk/nasamini/internal/infra/eventbus"
)

var logger = xlog.NewPackageLogger("github.com/matiasleandrokruk/nasamini/internal/domain", "tool")

var (
	ErrToolExecutorAlreadyRegistered = errors.New("tool executor already registered")
	ErrToolExecutorNotRegistered     = errors.New("tool executor not registered")
	ErrToolDefinitionInvalid         = errors.New("tool definition invalid")
	ErrToolValidationFailed          = errors.New("tool params validation failed")
	ErrToolPanicked                  = errors.New("tool panicked")
)

// TopicToolInvoked is published once per Invoke with an InvocationEvent payload.
const TopicToolInvoked = "tool.invoked"

var defaultInputSchema = json.RawMessage(`{"type":"object","additionalProperties":false,"properties":{}}`)

// ToolDefinition is the advertised contract of a tool.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// InvocationEvent describes one finished Invoke call.
type InvocationEvent struct {
	CallID    string
	Tool      string
	OK        bool
	ErrorKind string
	Duration  time.Duration
}

type registeredTool struct {
	def      ToolDefinition
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
	executor ToolExecutor
}

// ToolRegistry maps tool names to definitions and executors. It is filled at start-up
// and read concurrently afterwards.
type ToolRegistry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]*registeredTool
	bus   eventbus.EventBus
	style ErrorStyle
}

// Option configures a ToolRegistry.
type Option func(*ToolRegistry)

// WithEventBus publishes a TopicToolInvoked event for every invocation.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(r *ToolRegistry) { r.bus = bus }
}

// WithErrorStyle selects the failure envelope rendering.
func WithErrorStyle(style ErrorStyle) Option {
	return func(r *ToolRegistry) { r.style = style }
}

// NewToolRegistry creates an empty registry using the string error style.
func NewToolRegistry(opts ...Option) *ToolRegistry {
	r := &ToolRegistry{tools: make(map[string]*registeredTool), style: ErrorStyleString}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool. The input schema is compiled here so a bad schema fails at
// start-up rather than on first call.
func (r *ToolRegistry) Register(def ToolDefinition, executor ToolExecutor) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" || executor == nil {
		return errors.Wrap(ErrToolDefinitionInvalid, "name and executor are required")
	}
	if len(def.InputSchema) == 0 {
		def.InputSchema = defaultInputSchema
	}

	schema := new(jsonschema.Schema)
	if err := json.Unmarshal(def.InputSchema, schema); err != nil {
		return errors.Wrapf(ErrToolDefinitionInvalid, "%s: input schema: %v", def.Name, err)
	}
	if schema.Type != "object" {
		return errors.Wrapf(ErrToolDefinitionInvalid, "%s: input schema type must be object", def.Name)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return errors.Wrapf(ErrToolDefinitionInvalid, "%s: resolve schema: %v", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; exists {
		return ErrToolExecutorAlreadyRegistered
	}
	r.tools[def.Name] = &registeredTool{def: def, schema: schema, resolved: resolved, executor: executor}
	r.order = append(r.order, def.Name)
	return nil
}

// Get returns the executor registered under name.
func (r *ToolRegistry) Get(name string) (ToolExecutor, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return t.executor, nil
}

// Schema returns the compiled input schema of name.
func (r *ToolRegistry) Schema(name string) (*jsonschema.Schema, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return t.schema, nil
}

// Definitions lists every tool in registration order.
func (r *ToolRegistry) Definitions() []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].def)
	}
	return out
}

// ValidateParams checks params against the input schema of name.
func (r *ToolRegistry) ValidateParams(name string, params json.RawMessage) error {
	t, err := r.lookup(name)
	if err != nil {
		return err
	}
	return t.validate(params)
}

// Invoke runs a tool and always returns an envelope for a registered tool. The only
// error is ErrToolExecutorNotRegistered.
func (r *ToolRegistry) Invoke(ctx context.Context, name string, params json.RawMessage) (json.RawMessage, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	callID := newCallID()
	started := time.Now()

	envelope, err := t.run(ctx, params)
	evt := InvocationEvent{CallID: callID, Tool: t.def.Name, OK: err == nil}
	if err != nil {
		evt.ErrorKind = DescribeError(err).Kind
		envelope = Failure(err, r.style)
		logger.ContextKV(ctx, xlog.DEBUG,
			"tool", t.def.Name,
			"call_id", callID,
			"err", err.Error(),
		)
	}
	evt.Duration = time.Since(started)

	if r.bus != nil {
		r.bus.Publish(TopicToolInvoked, evt)
	}
	return envelope, nil
}

func (r *ToolRegistry) lookup(name string) (*registeredTool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[strings.TrimSpace(name)]
	if !ok {
		return nil, errors.Wrapf(ErrToolExecutorNotRegistered, "%q", name)
	}
	return t, nil
}

// run validates, executes and wraps the payload. A panic in the executor becomes an
// ErrToolPanicked error.
func (t *registeredTool) run(ctx context.Context, params json.RawMessage) (envelope json.RawMessage, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Mark(errors.Newf("%s: %v", t.def.Name, rec), ErrToolPanicked)
		}
	}()

	if err := t.validate(params); err != nil {
		return nil, err
	}
	payload, err := t.executor.Execute(ctx, params)
	if err != nil {
		return nil, err
	}
	return Success(payload)
}

func (t *registeredTool) validate(params json.RawMessage) error {
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}
	var input any
	if err := json.Unmarshal(params, &input); err != nil {
		return errors.Mark(errors.New("params must be valid json"), ErrToolValidationFailed)
	}
	if _, ok := input.(map[string]any); !ok {
		return errors.Mark(errors.New("params must be a json object"), ErrToolValidationFailed)
	}
	if err := t.resolved.Validate(input); err != nil {
		return errors.Mark(errors.Wrap(err, "invalid params"), ErrToolValidationFailed)
	}
	return nil
}

func newCallID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
