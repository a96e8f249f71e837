// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// serverName is reported to clients during initialization.
const serverName = "X509 Trust Path Validator"

// ErrNoTools is returned by [ServerBuilder.Build] when no tool was registered.
var ErrNoTools = errors.New("mcpserver: no tools registered")

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithConfig defines tool handlers that read store locations,
// depth limits and remote settings from the server configuration.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP tool call request containing arguments and metadata
//   - cfg: Server configuration, never nil once built
//
// Returns:
//   - The tool execution result or an error if the tool failed
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error)

// ResourceHandler defines the signature for resource handlers.
type ResourceHandler = func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)

// PromptHandler defines the signature for prompt handlers.
type PromptHandler = func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error)

// ToolDefinitionWithConfig pairs an MCP tool definition with a handler
// that receives server configuration.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic with config access
//   - Role: Key under which the instructions template refers to the tool
type ToolDefinitionWithConfig struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
	Role    string
}

// ServerDependencies holds all dependencies needed to create the MCP server.
//
// Fields:
//   - Config: Server configuration; defaults are used when nil
//   - Embed: Embedded filesystem for documentation and prompt templates
//   - Version: Server version string
//   - Logger: Receives tool call records and validation steps; discarded when nil
//   - ToolsWithConfig: Tool definitions that need configuration access
//   - Resources: Static resources provided by the server
//   - Prompts: Predefined prompts for guided workflows
//   - Instructions: Text sent to clients during the initialization handshake
type ServerDependencies struct {
	Config          *config.Config
	Embed           templates.EmbedFS
	Version         string
	Logger          logger.Logger
	ToolsWithConfig []ToolDefinitionWithConfig
	Resources       []server.ServerResource
	Prompts         []server.ServerPrompt
	Instructions    string
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion("1.0.0").
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct {
	deps     ServerDependencies
	defaults bool
}

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	b.deps.Config = cfg
	return b
}

// WithEmbed sets the embedded filesystem for documentation and templates.
func (b *ServerBuilder) WithEmbed(embed templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = embed
	return b
}

// WithVersion sets the server version string.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithLogger sets the logger used for tool call records.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithToolsWithConfig appends tools that need configuration access.
func (b *ServerBuilder) WithToolsWithConfig(tools ...ToolDefinitionWithConfig) *ServerBuilder {
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, tools...)
	return b
}

// WithResources appends static resources.
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithPrompts appends predefined prompts.
func (b *ServerBuilder) WithPrompts(prompts ...server.ServerPrompt) *ServerBuilder {
	b.deps.Prompts = append(b.deps.Prompts, prompts...)
	return b
}

// WithInstructions sets the server instructions sent on initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithDefaultTools registers the trust path tools, resources and prompts.
// Resources and prompts read from the embedded filesystem in place at Build.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	b.defaults = true
	return b
}

// Build creates the MCP server with all configured dependencies.
//
// Returns:
//   - *server.MCPServer: Server ready to be served over a transport
//   - error: [ErrNoTools] when no tool was registered
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	cfg := b.deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := b.deps.Logger
	if log == nil {
		log = logger.Discard
	}
	embed := b.deps.Embed
	if embed == nil {
		embed = templates.MagicEmbed
	}

	tools := b.deps.ToolsWithConfig
	resources := b.deps.Resources
	prompts := b.deps.Prompts
	if b.defaults {
		tools = append(createTools(), tools...)
		resources = append(createResources(embed, b.deps.Version), resources...)
		prompts = append(createPrompts(embed), prompts...)
	}
	if len(tools) == 0 {
		return nil, ErrNoTools
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}
	s := server.NewMCPServer(serverName, b.deps.Version, opts...)

	for _, tool := range tools {
		s.AddTool(tool.Tool, wrapTool(tool, cfg, log))
	}

	for _, resource := range resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	for _, prompt := range prompts {
		s.AddPrompt(prompt.Prompt, prompt.Handler)
	}

	return s, nil
}

type loggerKey struct{}

// toolLogger returns the logger wrapTool stored in ctx, or [logger.Discard].
func toolLogger(ctx context.Context) logger.Logger {
	if log, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return log
	}
	return logger.Discard
}

// wrapTool binds cfg to the handler and logs each call outcome. The handler
// finds log through [toolLogger].
func wrapTool(tool ToolDefinitionWithConfig, cfg *config.Config, log logger.Logger) ToolHandler {
	name := tool.Tool.Name
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = context.WithValue(ctx, loggerKey{}, log)
		result, err := tool.Handler(ctx, request, cfg)
		switch {
		case err != nil:
			log.Printf("tool %s failed: %v", name, err)
		case result != nil && result.IsError:
			log.Debugf("tool %s returned an error result", name)
		default:
			log.Debugf("tool %s completed", name)
		}
		return result, err
	}
}
