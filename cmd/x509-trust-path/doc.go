// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-trust-path is a command-line tool that decides whether an X.509
// certificate has an issuance path to a self-signed root inside a local
// trust store.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-trust-path-validator/cmd/x509-trust-path@latest
//
// # Usage
//
//	x509-trust-path validate -t TRUST_STORE [FLAGS] [CERT_FILE]
//	x509-trust-path issuers -s SIGNERS -t TRUST_STORE [FLAGS]
//
// # Global Flags
//
//	    --config    Path to configuration file (JSON or YAML)
//	-v, --verbose   Print search progress to stderr
//	    --no-color  Disable colored output
//
// # Validate Flags
//
//	-t, --truststore     Trust store file or directory (repeatable, loaded in order)
//	    --password       Password for PKCS12 trust stores
//	    --host           Fetch the leaf over TLS instead of reading CERT_FILE
//	    --port           TLS port used with --host (default 443)
//	    --use-presented  Add the certificates presented by --host to the pool
//	-f, --format         text, tree, table, json or pem
//	-o, --output         Destination file (default: stdout)
//	    --max-depth      Recursion cap, 0 means the trust store size
//	    --trace          Print every rejected candidate to stderr
//
// # Issuers Flags
//
//	-s, --signers          Signer certificate file or directory (repeatable)
//	    --signer-password  Password for PKCS12 signer stores
//	-t, --truststore       Trust store file or directory (repeatable)
//	    --password         Password for PKCS12 trust stores
//	-f, --format           text, table or json
//
// # Environment Variables
//
//	TRUSTPATH_CONFIG_FILE     Path to configuration file (alternative to --config)
//	TRUSTPATH_STORE_PASSWORD  Trust store password when none is configured
//
// # Exit Status
//
// 0 when a trust path exists, 2 when it does not, 1 on any other error and
// 130 when interrupted.
//
// # Examples
//
// Validate a certificate against a directory of roots and intermediates:
//
//	x509-trust-path validate -t /etc/trust/ leaf.pem
//
// Validate a server certificate and print the path as a tree:
//
//	x509-trust-path validate -t roots.p12 --password changeit --host example.com -f tree
//
// List the trusted issuers among a set of signer certificates:
//
//	x509-trust-path issuers -s signers/ -t roots.pem
package main
