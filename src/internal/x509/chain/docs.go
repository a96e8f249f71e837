// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain decides whether an [X.509] certificate has an issuance path
// to a self-signed root inside a caller-supplied trust pool.
//
// The search is depth-first. Each level scans the pool from its last entry to
// its first and the first candidate that yields a complete path wins, so the
// pool order decides which path is reported when several exist. A candidate is
// considered only when the certificate's issuer name string equals the
// candidate's subject name string; it is then checked with a single-step PKIX
// verification against that candidate alone. Revocation is never consulted.
//
// Per-candidate failures are collapsed to "no match" and never reach the
// caller of [ValidateChain]; [Validator.Trace] exposes them for diagnostics.
// Recursion depth is bounded by the pool size, so mutually issued
// certificates end the search with [ErrCycleDetected] instead of overflowing
// the stack.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
