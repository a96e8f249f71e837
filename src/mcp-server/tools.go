// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	toolValidateTrustChain = "validate_trust_chain"
	toolListTrustedIssuers = "list_trusted_issuers"
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// Both tools need the server configuration: it supplies the default trust and
// signer stores, the recursion limit and the remote dial settings.
func createTools() []ToolDefinitionWithConfig {
	return []ToolDefinitionWithConfig{
		{
			Tool: mcp.NewTool(toolValidateTrustChain,
				mcp.WithDescription("Search a trust store for an issuance path from a certificate to a self-signed root"),
				mcp.WithString("certificate",
					mcp.Description("Certificate file path or base64-encoded certificate data (PEM, DER or PKCS#7)"),
				),
				mcp.WithString("host",
					mcp.Description("Fetch the leaf from this TLS endpoint instead of 'certificate'"),
				),
				mcp.WithNumber("port",
					mcp.Description("TLS port used with 'host' (default: remote.port from config)"),
				),
				mcp.WithBoolean("use_presented",
					mcp.Description("Append the intermediates presented by 'host' to the trust pool (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("truststore",
					mcp.Description("Comma-separated keystore paths or a base64-encoded certificate bundle (default: trustStore.paths from config)"),
				),
				mcp.WithString("password",
					mcp.Description("PKCS#12 trust store password"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'text', 'tree', 'table', 'json' or 'pem' (default: output.format from config)"),
					mcp.Enum("text", "tree", "table", "json", "pem"),
				),
				mcp.WithBoolean("trace",
					mcp.Description("Append every rejected candidate to the result (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: handleValidateTrustChain,
			Role:    "pathValidator",
		},
		{
			Tool: mcp.NewTool(toolListTrustedIssuers,
				mcp.WithDescription("List the issuer identities of signer certificates that chain to the trust store"),
				mcp.WithString("signers",
					mcp.Description("Comma-separated keystore paths or a base64-encoded certificate bundle (default: signerStore.paths from config)"),
				),
				mcp.WithString("signer_password",
					mcp.Description("PKCS#12 signer store password"),
				),
				mcp.WithString("truststore",
					mcp.Description("Comma-separated keystore paths or a base64-encoded certificate bundle (default: trustStore.paths from config)"),
				),
				mcp.WithString("password",
					mcp.Description("PKCS#12 trust store password"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'text' or 'json' (default: text)"),
					mcp.Enum("text", "json"),
					mcp.DefaultString("text"),
				),
			),
			Handler: handleListTrustedIssuers,
			Role:    "issuerLister",
		},
	}
}
