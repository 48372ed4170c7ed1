// Package mcpserver exposes the plugin registry as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/pathcopycopy/pathcopy/internal/pipeline"
	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

// Tool names.
const (
	ToolListPlugins    = "list_plugins"
	ToolTransformPaths = "transform_paths"
	ToolDecodeElements = "decode_elements"
)

// Options configures a Server.
type Options struct {
	Name      string
	Version   string
	Registry  *plugin.Registry
	Separator string // used when a plugin does not select one
	Logger    *zap.Logger
}

// Server is an MCP server backed by a plugin registry.
type Server struct {
	*server.MCPServer
	reg       *plugin.Registry
	separator string
	logger    *zap.Logger
}

// New creates a server with all tools registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Separator == "" {
		opts.Separator = "\n"
	}
	s := &Server{
		MCPServer: server.NewMCPServer(opts.Name, opts.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		reg:       opts.Registry,
		separator: opts.Separator,
		logger:    opts.Logger,
	}

	s.AddTool(mcp.NewTool(ToolListPlugins,
		mcp.WithDescription("List the available path plugins."),
	), s.listPlugins)

	s.AddTool(mcp.NewTool(ToolTransformPaths,
		mcp.WithDescription("Transform file system paths with a plugin."),
		mcp.WithString("plugin",
			mcp.Required(),
			mcp.Description("Plugin identifier or description"),
		),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Paths to transform"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean("join",
			mcp.Description("Join the results with the plugin's separator instead of returning a JSON array"),
		),
	), s.transformPaths)

	s.AddTool(mcp.NewTool(ToolDecodeElements,
		mcp.WithDescription("Decode an encoded pipeline and apply it to a path."),
		mcp.WithString("elements",
			mcp.Required(),
			mcp.Description("Encoded elements stream"),
		),
		mcp.WithString("path",
			mcp.Description("Path to run the pipeline on"),
		),
	), s.decodeElements)

	return s
}

// ServeStdio serves requests on stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving mcp on stdio", zap.Int("plugins", len(s.reg.All())))
	return server.ServeStdio(s.MCPServer)
}

// PluginInfo describes a plugin in list_plugins results.
type PluginInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Error       string `json:"error,omitempty"`
}

type errorer interface {
	Err() error
}

func (s *Server) listPlugins(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []PluginInfo
	for _, p := range s.reg.All() {
		info := PluginInfo{ID: p.ID().String(), Description: p.Description()}
		if e, ok := p.(errorer); ok {
			if err := e.Err(); err != nil {
				info.Error = err.Error()
			}
		}
		infos = append(infos, info)
	}
	return jsonResult(infos)
}

func (s *Server) transformPaths(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("plugin")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	paths, err := req.RequireStringSlice("paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := s.reg.Find(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("transforming paths", zap.Stringer("plugin", p.ID()), zap.Int("count", len(paths)))

	out := plugin.Paths(p, paths)
	if req.GetBool("join", false) {
		return mcp.NewToolResultText(strings.Join(out, plugin.Separator(p, s.separator))), nil
	}
	return jsonResult(out)
}

// DecodeResult is the decode_elements result.
type DecodeResult struct {
	Elements  []string         `json:"elements"`
	Canonical string           `json:"canonical"`
	Options   pipeline.Options `json:"options"`
	Path      *string          `json:"path,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func (s *Server) decodeElements(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	encoded, err := req.RequireString("elements")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := pipeline.Parse(encoded)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	canonical, err := p.Encode()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := DecodeResult{Canonical: canonical, Options: p.Options()}
	for _, e := range p.Elements() {
		res.Elements = append(res.Elements, pipeline.ElementName(e))
	}

	if path, ok := req.GetArguments()["path"].(string); ok {
		host := s.reg.Host()
		if err := p.Validate(uuid.Nil, host); err != nil {
			res.Error = err.Error()
		} else {
			out := p.ModifyPath(path, host)
			res.Path = &out
		}
	}
	return jsonResult(res)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
