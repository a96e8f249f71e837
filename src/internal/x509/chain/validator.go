// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"errors"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
)

// Validator searches a trust pool for an issuance path.
//
// A Validator holds only configuration; it keeps no state between calls and
// is safe for concurrent use as long as the certificates and pool slices
// passed to it are not mutated during a call.
type Validator struct {
	log         logger.Logger
	maxDepth    int
	currentTime time.Time
	keyUsages   []x509.ExtKeyUsage
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger routes search progress to l at debug level.
func WithLogger(l logger.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithMaxDepth caps the recursion depth. Zero or a negative value means the
// pool size, which is the deepest an acyclic pool can require.
func WithMaxDepth(depth int) Option {
	return func(v *Validator) { v.maxDepth = depth }
}

// WithCurrentTime fixes the instant used for validity window checks.
// The zero time means the wall clock at each verification.
func WithCurrentTime(t time.Time) Option {
	return func(v *Validator) { v.currentTime = t }
}

// WithKeyUsages restricts the extended key usages a path must allow.
// The default accepts any usage.
func WithKeyUsages(usages ...x509.ExtKeyUsage) Option {
	return func(v *Validator) {
		if len(usages) > 0 {
			v.keyUsages = usages
		}
	}
}

// NewValidator creates a Validator with the given options applied.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		log:       logger.Discard,
		keyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = NewValidator()

// ValidateChain reports whether leaf has an issuance path to a self-signed
// certificate in pool, using default options.
func ValidateChain(leaf *x509.Certificate, pool []*x509.Certificate) bool {
	return defaultValidator.Validate(leaf, pool)
}

// Validate reports whether leaf has an issuance path to a self-signed
// certificate in pool. Every failure, including invalid input and cycles,
// is reported as false.
func (v *Validator) Validate(leaf *x509.Certificate, pool []*x509.Certificate) bool {
	_, err := v.Resolve(leaf, pool)
	return err == nil
}

// Resolve runs the same search as [Validator.Validate] and returns the path it
// found, leaf first and root last.
//
// Returns:
//   - *Path: the first path found in reverse pool order
//   - error: [ErrInvalidInput], [ErrNoTrustPath] or [ErrCycleDetected]
func (v *Validator) Resolve(leaf *x509.Certificate, pool []*x509.Certificate) (*Path, error) {
	path, _, err := v.run(leaf, pool, false)
	return path, err
}

// Trace runs the search and also returns every rejected candidate in the
// order it was visited. The steps are diagnostic; they do not change the
// outcome.
func (v *Validator) Trace(leaf *x509.Certificate, pool []*x509.Certificate) (*Path, []StepError, error) {
	return v.run(leaf, pool, true)
}

func (v *Validator) run(leaf *x509.Certificate, pool []*x509.Certificate, trace bool) (*Path, []StepError, error) {
	if err := checkInput(leaf, pool); err != nil {
		return nil, nil, err
	}

	s := &search{
		v:     v,
		pool:  pool,
		limit: v.maxDepth,
		trace: trace,
	}
	if s.limit <= 0 {
		s.limit = len(pool)
	}

	certs, err := s.walk(leaf, 0)
	if err != nil {
		v.log.Debugf("no trust path for %s: %v", Identity(leaf.Subject), err)
		return nil, s.steps, err
	}
	return &Path{Certs: certs}, s.steps, nil
}

func checkInput(leaf *x509.Certificate, pool []*x509.Certificate) error {
	if leaf == nil || len(leaf.Raw) == 0 {
		return ErrInvalidInput
	}
	for _, c := range pool {
		if c == nil || len(c.Raw) == 0 {
			return ErrInvalidInput
		}
	}
	return nil
}

// search holds the per-call state of one depth-first walk.
type search struct {
	v     *Validator
	pool  []*x509.Certificate
	limit int
	trace bool
	steps []StepError
}

func (s *search) record(depth int, cert *x509.Certificate, i int, reason StepReason, err error) {
	if !s.trace {
		return
	}
	s.steps = append(s.steps, StepError{
		Depth:     depth,
		Cert:      cert,
		Index:     i,
		Candidate: s.pool[i],
		Reason:    reason,
		Err:       err,
	})
}

// walk returns the path from cert to a root, cert first.
func (s *search) walk(cert *x509.Certificate, depth int) ([]*x509.Certificate, error) {
	if depth > s.limit {
		return nil, ErrCycleDetected
	}

	issuer := Identity(cert.Issuer)
	for i := len(s.pool) - 1; i >= 0; i-- {
		candidate := s.pool[i]

		if issuer != Identity(candidate.Subject) {
			s.record(depth, cert, i, IdentityMismatch, nil)
			continue
		}

		if err := s.v.verifyStep(cert, candidate); err != nil {
			s.record(depth, cert, i, VerificationFailed, err)
			continue
		}

		if IsSelfSigned(candidate) {
			s.v.log.Debugf("validating root %s", Identity(candidate.Subject))
			if cert.Equal(candidate) {
				return []*x509.Certificate{cert}, nil
			}
			return []*x509.Certificate{cert, candidate}, nil
		}

		if cert.Equal(candidate) {
			s.record(depth, cert, i, NoProgress, nil)
			continue
		}

		s.v.log.Debugf("validating via %s", Identity(candidate.Subject))
		rest, err := s.walk(candidate, depth+1)
		if err == nil {
			return append([]*x509.Certificate{cert}, rest...), nil
		}
		if errors.Is(err, ErrCycleDetected) {
			return nil, err
		}
		s.record(depth, cert, i, DeadEnd, err)
	}

	return nil, ErrNoTrustPath
}

// verifyStep is the single-step PKIX check: cert must verify against a trust
// set holding only anchor. crypto/x509 never consults revocation data.
func (v *Validator) verifyStep(cert, anchor *x509.Certificate) error {
	roots := x509.NewCertPool()
	roots.AddCert(anchor)

	_, err := cert.Verify(x509.VerifyOptions{
		Roots:       roots,
		CurrentTime: v.currentTime,
		KeyUsages:   v.keyUsages,
	})
	return err
}
