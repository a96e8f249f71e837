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

// createPrompts creates and returns all MCP prompt definitions with their handlers
func createPrompts(embed templates.EmbedFS) []server.ServerPrompt {
	return []server.ServerPrompt{
		{
			Prompt: mcp.NewPrompt("trust-path-review",
				mcp.WithPromptDescription("Diagnose why a certificate does or does not chain to a trust store"),
				mcp.WithArgument("certificate",
					mcp.ArgumentDescription("Path to certificate file or base64-encoded certificate data"),
					mcp.RequiredArgument(),
				),
				mcp.WithArgument("truststore",
					mcp.ArgumentDescription("Comma-separated keystore paths (default: trustStore.paths from config)"),
				),
			),
			Handler: newTrustPathReviewHandler(embed),
		},
	}
}
