// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates embeds the markdown served by the MCP server: the
// instructions sent on initialization, the CLI help text, the trust path
// search documentation and the prompt templates.
//
// Files are read through the [EmbedFS] interface so callers can substitute
// another filesystem in tests. [MagicEmbed] is the default implementation.
//
// Example usage:
//
//	import "github.com/H0llyW00dzZ/x509-trust-path-validator/src/mcp-server/templates"
//
//	content, err := templates.MagicEmbed.ReadFile("trust-path-search.md")
//	if err != nil {
//		return fmt.Errorf("failed to read search documentation: %w", err)
//	}
package templates
