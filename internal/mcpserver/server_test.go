package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
	"github.com/pathcopycopy/pathcopy/internal/plugin/builtin"
	"github.com/pathcopycopy/pathcopy/internal/system"
)

var quotedID = uuid.MustParse("6a2a5f3e-4c31-4f0e-9d4b-2f1d0c5b9e71")

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := plugin.NewRegistry(system.New(nil), nil)
	builtin.RegisterAll(reg)
	reg.Register(plugin.NewPipelinePlugin(quotedID, "Quoted", `02",0001;`, reg))
	reg.Register(plugin.NewPipelinePlugin(uuid.New(), "Broken", "01Z", reg))
	return New(Options{Name: "pathcopy", Version: "test", Registry: reg})
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestListPlugins(t *testing.T) {
	s := newTestServer(t)
	res, err := s.listPlugins(context.Background(), call(ToolListPlugins, nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var infos []PluginInfo
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &infos))
	require.Len(t, infos, 11)

	byName := make(map[string]PluginInfo)
	for _, info := range infos {
		byName[info.Description] = info
	}
	require.Equal(t, quotedID.String(), byName["Quoted"].ID)
	require.Empty(t, byName["Quoted"].Error)
	require.NotEmpty(t, byName["Broken"].Error)
	require.Contains(t, byName, "Unix path")
}

func TestTransformPaths(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.transformPaths(ctx, call(ToolTransformPaths, map[string]any{
		"plugin": "unix path",
		"paths":  []any{`C:\a\b`, `D:\c`},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	var out []string
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	require.Equal(t, []string{"C:/a/b", "D:/c"}, out)

	res, err = s.transformPaths(ctx, call(ToolTransformPaths, map[string]any{
		"plugin": "{" + quotedID.String() + "}",
		"paths":  []any{"a", "b"},
		"join":   true,
	}))
	require.NoError(t, err)
	require.Equal(t, `"a";"b"`, text(t, res))
}

func TestTransformPathsErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	for name, args := range map[string]map[string]any{
		"missing plugin": {"paths": []any{"a"}},
		"missing paths":  {"plugin": "Name"},
		"unknown plugin": {"plugin": "nope", "paths": []any{"a"}},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := s.transformPaths(ctx, call(ToolTransformPaths, args))
			require.NoError(t, err)
			require.True(t, res.IsError)
		})
	}
}

func TestDecodeElements(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.decodeElements(ctx, call(ToolDecodeElements, map[string]any{
		"elements": `02",0001;`,
		"path":     "x",
	}))
	require.NoError(t, err)
	var dr DecodeResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &dr))
	require.Equal(t, []string{"quotes", "paths_separator"}, dr.Elements)
	require.Equal(t, `02",0001;`, dr.Canonical)
	require.Equal(t, ";", dr.Options.Separator)
	require.NotNil(t, dr.Path)
	require.Equal(t, `"x"`, *dr.Path)

	res, err = s.decodeElements(ctx, call(ToolDecodeElements, map[string]any{
		"elements": "01{" + "{00000000-0000-0000-0000-000000000000}" + "\x00",
		"path":     "x",
	}))
	require.NoError(t, err)
	dr = DecodeResult{}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &dr))
	require.Nil(t, dr.Path)
	require.NotEmpty(t, dr.Error)

	res, err = s.decodeElements(ctx, call(ToolDecodeElements, map[string]any{"elements": "01Z"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
}
