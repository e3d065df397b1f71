package mcpserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasleandrokruk/nasamini/internal/domain/tool"
)

func newTestRegistry(t *testing.T) *tool.ToolRegistry {
	t.Helper()
	r := tool.NewToolRegistry()
	echo := tool.ExecutorFunc(func(_ context.Context, params json.RawMessage) (json.RawMessage, error) {
		return params, nil
	})
	require.NoError(t, r.Register(tool.ToolDefinition{
		Name:        "echo",
		Description: "echo params back",
		InputSchema: json.RawMessage(`{"type":"object","required":["text"],"properties":{"text":{"type":"string"}},"additionalProperties":false}`),
	}, echo))
	return r
}

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "unexpected content %T", res.Content[0])
	return text.Text
}

func TestNew_RequiresRegistry(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}

func TestServer_ListTools(t *testing.T) {
	server, err := New(newTestRegistry(t), Options{})
	require.NoError(t, err)
	cs := connect(t, server)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, "echo", res.Tools[0].Name)
	assert.Equal(t, "echo params back", res.Tools[0].Description)
}

func TestServer_CallTool_Success(t *testing.T) {
	server, err := New(newTestRegistry(t), Options{})
	require.NoError(t, err)
	cs := connect(t, server)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"text": "hi"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"ok":true,"text":"hi"}`, textOf(t, res))
}

func TestServer_CallTool_FailureEnvelope(t *testing.T) {
	server, err := New(newTestRegistry(t), Options{})
	require.NoError(t, err)
	cs := connect(t, server)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"text": 5},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &env))
	assert.Equal(t, false, env["ok"])
	assert.Contains(t, env["error"], tool.KindInvalidParams+": ")
}

func TestHTTPHandler_StreamableRoundTrip(t *testing.T) {
	server, err := New(newTestRegistry(t), Options{Name: "nasa-mini-test"})
	require.NoError(t, err)
	srv := httptest.NewServer(HTTPHandler(server))
	defer srv.Close()

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "http-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL}, nil)
	require.NoError(t, err)
	defer cs.Close() //nolint:errcheck

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "echo", Arguments: map[string]any{"text": "over http"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"text":"over http"}`, textOf(t, res))
}
