// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 trust path validator.
// It implements a Cobra-based CLI with two commands: validate, which decides whether a
// certificate has an issuance path to a self-signed root in a local trust store, and
// issuers, which lists the issuers of signer certificates that pass that check.
// Output is available as colored text, an ASCII tree, a markdown table, JSON or PEM.
package cli
