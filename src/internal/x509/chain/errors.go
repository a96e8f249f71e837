// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a nil or unparsed leaf, or a nil pool entry.
	ErrInvalidInput = errors.New("x509chain: invalid input")

	// ErrNoTrustPath indicates that no candidate in the pool led to a self-signed root.
	ErrNoTrustPath = errors.New("x509chain: no trust path to a self-signed root")

	// ErrCycleDetected indicates that the search went deeper than the pool allows,
	// which only happens when certificates in the pool issue each other.
	ErrCycleDetected = errors.New("x509chain: issuance cycle detected")
)

// StepReason classifies why a pool candidate did not produce a path.
type StepReason int

const (
	// IdentityMismatch: the candidate's subject is not the certificate's issuer.
	IdentityMismatch StepReason = iota + 1
	// VerificationFailed: single-step PKIX verification against the candidate failed.
	VerificationFailed
	// NoProgress: the candidate is the certificate itself and is not self-signed.
	NoProgress
	// DeadEnd: the candidate verified but no path continues above it.
	DeadEnd
)

// String returns the reason name.
func (r StepReason) String() string {
	switch r {
	case IdentityMismatch:
		return "identity mismatch"
	case VerificationFailed:
		return "verification failed"
	case NoProgress:
		return "no progress"
	case DeadEnd:
		return "dead end"
	default:
		return fmt.Sprintf("StepReason(%d)", int(r))
	}
}

// StepError records one rejected candidate during a search.
type StepError struct {
	Depth     int               // recursion depth, 0 for the original leaf
	Cert      *x509.Certificate // certificate whose issuer was being sought
	Index     int               // candidate position in the pool
	Candidate *x509.Certificate
	Reason    StepReason
	Err       error // underlying cause, nil for IdentityMismatch and NoProgress
}

// Error implements error.
func (e *StepError) Error() string {
	msg := fmt.Sprintf("depth %d: pool[%d] %q for %q: %s",
		e.Depth, e.Index, Identity(e.Candidate.Subject), Identity(e.Cert.Subject), e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StepError) Unwrap() error { return e.Err }
