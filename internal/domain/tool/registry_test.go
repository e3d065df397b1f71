package tool

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/matiasleandrokruk/nasamini/internal/infra/eventbus"
)

type echoExecutor struct{}

func (echoExecutor) Execute(_ context.Context, params json.RawMessage) (json.RawMessage, error) {
	return params, nil
}

var echoDefinition = ToolDefinition{
	Name:        "echo",
	Description: "echo params back",
	InputSchema: json.RawMessage(`{"type":"object","required":["text"],"properties":{"text":{"type":"string"},"n":{"type":["integer","null"]}},"additionalProperties":false}`),
}

func newEchoRegistry(t *testing.T, opts ...Option) *ToolRegistry {
	t.Helper()
	r := NewToolRegistry(opts...)
	if err := r.Register(echoDefinition, echoExecutor{}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return r
}

func TestToolRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	r := newEchoRegistry(t)
	if _, err := r.Get("echo"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if _, err := r.Get("missing"); !errors.Is(err, ErrToolExecutorNotRegistered) {
		t.Fatalf("expected ErrToolExecutorNotRegistered, got %v", err)
	}
	if err := r.Register(echoDefinition, echoExecutor{}); !errors.Is(err, ErrToolExecutorAlreadyRegistered) {
		t.Fatalf("expected ErrToolExecutorAlreadyRegistered, got %v", err)
	}
	schema, err := r.Schema("echo")
	if err != nil || schema.Type != "object" {
		t.Fatalf("Schema() = %v, %v", schema, err)
	}
}

func TestToolRegistry_Register_RejectsBadDefinitions(t *testing.T) {
	t.Parallel()

	r := NewToolRegistry()
	cases := []struct {
		name string
		def  ToolDefinition
		exec ToolExecutor
	}{
		{name: "empty name", def: ToolDefinition{Name: "  "}, exec: echoExecutor{}},
		{name: "nil executor", def: ToolDefinition{Name: "x"}},
		{name: "invalid json schema", def: ToolDefinition{Name: "x", InputSchema: json.RawMessage(`{"type":`)}, exec: echoExecutor{}},
		{name: "non-object schema", def: ToolDefinition{Name: "x", InputSchema: json.RawMessage(`{"type":"string"}`)}, exec: echoExecutor{}},
	}
	for _, tc := range cases {
		if err := r.Register(tc.def, tc.exec); !errors.Is(err, ErrToolDefinitionInvalid) {
			t.Fatalf("%s: expected ErrToolDefinitionInvalid, got %v", tc.name, err)
		}
	}
}

func TestToolRegistry_Register_DefaultSchemaAcceptsEmptyParams(t *testing.T) {
	t.Parallel()

	r := NewToolRegistry()
	if err := r.Register(ToolDefinition{Name: "noop"}, echoExecutor{}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := r.ValidateParams("noop", nil); err != nil {
		t.Fatalf("ValidateParams returned error: %v", err)
	}
	if err := r.ValidateParams("noop", json.RawMessage(`{"x":1}`)); !errors.Is(err, ErrToolValidationFailed) {
		t.Fatalf("expected ErrToolValidationFailed, got %v", err)
	}
}

func TestToolRegistry_DefinitionsKeepRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := NewToolRegistry()
	for _, name := range []string{"b", "a", "c"} {
		if err := r.Register(ToolDefinition{Name: name}, echoExecutor{}); err != nil {
			t.Fatalf("Register(%s) returned error: %v", name, err)
		}
	}
	defs := r.Definitions()
	if len(defs) != 3 || defs[0].Name != "b" || defs[1].Name != "a" || defs[2].Name != "c" {
		t.Fatalf("unexpected order: %#v", defs)
	}
}

func TestToolRegistry_ValidateParams(t *testing.T) {
	t.Parallel()

	r := newEchoRegistry(t)
	cases := []struct {
		name   string
		params string
		ok     bool
	}{
		{name: "valid", params: `{"text":"hi","n":2}`, ok: true},
		{name: "null optional", params: `{"text":"hi","n":null}`, ok: true},
		{name: "invalid json", params: `{"text":`},
		{name: "not an object", params: `["text"]`},
		{name: "missing required", params: `{"n":1}`},
		{name: "wrong type", params: `{"text":5}`},
		{name: "unknown field", params: `{"text":"hi","extra":true}`},
	}
	for _, tc := range cases {
		err := r.ValidateParams("echo", json.RawMessage(tc.params))
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrToolValidationFailed) {
			t.Fatalf("%s: expected ErrToolValidationFailed, got %v", tc.name, err)
		}
	}
}

func TestToolRegistry_Invoke_Success(t *testing.T) {
	t.Parallel()

	r := newEchoRegistry(t)
	out, err := r.Invoke(context.Background(), "echo", json.RawMessage(`{"text":"hi"}`))
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if string(out) != `{"ok":true,"text":"hi"}` {
		t.Fatalf("unexpected envelope: %s", out)
	}
}

func TestToolRegistry_Invoke_ValidationFailureIsEnvelope(t *testing.T) {
	t.Parallel()

	r := newEchoRegistry(t)
	out, err := r.Invoke(context.Background(), "echo", nil)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	var env map[string]any
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("envelope is not json: %v", err)
	}
	if env["ok"] != false {
		t.Fatalf("expected ok=false, got %s", out)
	}
	msg, _ := env["error"].(string)
	if !strings.HasPrefix(msg, KindInvalidParams+": ") {
		t.Fatalf("expected invalid_params error, got %q", msg)
	}
}

func TestToolRegistry_Invoke_RecoversPanic(t *testing.T) {
	t.Parallel()

	r := NewToolRegistry(WithErrorStyle(ErrorStyleStructured))
	boom := ExecutorFunc(func(context.Context, json.RawMessage) (json.RawMessage, error) {
		panic("boom")
	})
	if err := r.Register(ToolDefinition{Name: "boom"}, boom); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	out, err := r.Invoke(context.Background(), "boom", nil)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	var env struct {
		OK    bool        `json:"ok"`
		Error ErrorDetail `json:"error"`
	}
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("envelope is not json: %v", err)
	}
	if env.OK || env.Error.Kind != KindPanic || env.Error.Where != WhereServer {
		t.Fatalf("unexpected envelope: %s", out)
	}
}

func TestToolRegistry_Invoke_UnknownTool(t *testing.T) {
	t.Parallel()

	_, err := NewToolRegistry().Invoke(context.Background(), "nope", nil)
	if !errors.Is(err, ErrToolExecutorNotRegistered) {
		t.Fatalf("expected ErrToolExecutorNotRegistered, got %v", err)
	}
}

func TestToolRegistry_Invoke_PublishesEvent(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	ch := bus.Subscribe(TopicToolInvoked)
	r := newEchoRegistry(t, WithEventBus(bus))

	if _, err := r.Invoke(context.Background(), "echo", json.RawMessage(`{"n":1}`)); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	select {
	case evt := <-ch:
		inv, ok := evt.Payload.(InvocationEvent)
		if !ok {
			t.Fatalf("unexpected payload type %T", evt.Payload)
		}
		if inv.Tool != "echo" || inv.OK || inv.ErrorKind != KindInvalidParams || inv.CallID == "" {
			t.Fatalf("unexpected event: %#v", inv)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tool.invoked")
	}
}

func TestWatchInvocations_StopsOnCancel(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := WatchInvocations(ctx, bus)

	r := newEchoRegistry(t, WithEventBus(bus))
	if _, err := r.Invoke(context.Background(), "echo", json.RawMessage(`{"text":"x"}`)); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
