package tool

import (
	"context"
	"encoding/json"
)

// ToolExecutor runs one tool. It returns the success payload object; any error is
// turned into a failure envelope by the registry.
type ToolExecutor interface {
	Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error)
}

// ExecutorFunc adapts a plain function to ToolExecutor.
type ExecutorFunc func(ctx context.Context, params json.RawMessage) (json.RawMessage, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	return f(ctx, params)
}
