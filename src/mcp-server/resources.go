// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	resourceConfigTemplate = "config://template"
	resourceVersion        = "info://version"
	resourceTrustPathDocs  = "docs://trust-path"
)

// createResources creates and returns all MCP resource definitions with their handlers.
func createResources(embed templates.EmbedFS, version string) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				resourceConfigTemplate,
				"Configuration Template",
				mcp.WithResourceDescription("Default configuration for the trust path validator, as JSON"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleConfigResource,
		},
		{
			Resource: mcp.NewResource(
				resourceVersion,
				"Version Information",
				mcp.WithResourceDescription("Server version and supported capabilities"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: newVersionHandler(version),
		},
		{
			Resource: mcp.NewResource(
				resourceTrustPathDocs,
				"Trust Path Search",
				mcp.WithResourceDescription("How the validator matches issuers, verifies each step and ends a search"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: newTrustPathDocsHandler(embed),
		},
	}
}
