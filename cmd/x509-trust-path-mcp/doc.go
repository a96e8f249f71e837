// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command x509-trust-path-mcp serves the X.509 trust path validator over the
// Model Context Protocol on stdio. It is meant to be launched by an MCP
// client, for example:
//
//	{
//	  "mcpServers": {
//	    "x509-trust-path": {
//	      "command": "x509-trust-path-mcp",
//	      "args": ["--config", "/etc/trustpath/config.yaml"]
//	    }
//	  }
//	}
//
// Flags:
//
//	--config string   configuration file (default: $TRUSTPATH_CONFIG_FILE)
//	--instructions    print the tool workflows and exit
//
// Tools: validate_trust_chain, list_trusted_issuers.
//
// Diagnostics are written to stderr as JSON lines. Exit status is 0 when
// stdin closes, 130 after SIGINT or SIGTERM and 1 on any other error.
package main
