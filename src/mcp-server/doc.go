// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the [X509] trust path validator over the Model
// Context Protocol ([MCP]) on stdio.
//
// Tools:
//   - validate_trust_chain: search a trust store for an issuance path from a
//     certificate file, base64 data or a TLS endpoint
//   - list_trusted_issuers: report the issuer identities of signer
//     certificates that validate against a trust store
//
// Resources carry the configuration template, version information and the
// path search documentation. One prompt, trust-path-review, walks a client
// through diagnosing an untrusted certificate.
//
// The server is assembled with [ServerBuilder] and started by [Run] or by the
// Cobra command from [CLIFramework.BuildRootCommand].
//
// [X509]: https://grokipedia.com/page/X.509
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
