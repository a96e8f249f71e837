// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleConfigResource returns [config.Default] as indented JSON, which is
// also a valid starting point for a config file.
func handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(config.Default(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config template: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceConfigTemplate,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// newVersionHandler returns server metadata for version.
func newVersionHandler(version string) ResourceHandler {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		versionInfo := map[string]any{
			"name":          serverName,
			"version":       version,
			"tools":         []string{toolValidateTrustChain, toolListTrustedIssuers},
			"inputFormats":  []string{"PEM", "DER", "PKCS#7", "PKCS#12"},
			"outputFormats": []string{"text", "tree", "table", "json", "pem"},
		}

		jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal version info: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      resourceVersion,
				MIMEType: "application/json",
				Text:     string(jsonData),
			},
		}, nil
	}
}

// newTrustPathDocsHandler serves trust-path-search.md from embed.
func newTrustPathDocsHandler(embed templates.EmbedFS) ResourceHandler {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		content, err := embed.ReadFile("trust-path-search.md")
		if err != nil {
			return nil, fmt.Errorf("failed to read trust path documentation: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      resourceTrustPathDocs,
				MIMEType: "text/markdown",
				Text:     string(content),
			},
		}, nil
	}
}
