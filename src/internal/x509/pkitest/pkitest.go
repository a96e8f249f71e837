// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pkitest builds throwaway certificate hierarchies for tests: roots,
// intermediates, leaves, cross-signed and rekeyed CAs, and mutually issued
// certificate pairs. Keys are ephemeral P-256.
package pkitest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync/atomic"
	"testing"
	"time"
)

// Issued is a parsed certificate together with the private key matching its
// public key.
type Issued struct {
	Cert *x509.Certificate
	Key  *ecdsa.PrivateKey
}

// Option mutates a certificate template before it is signed.
type Option func(tmpl *x509.Certificate)

// WithValidity overrides the validity window.
func WithValidity(notBefore, notAfter time.Time) Option {
	return func(tmpl *x509.Certificate) {
		tmpl.NotBefore = notBefore
		tmpl.NotAfter = notAfter
	}
}

// WithOrganization sets the subject organization, which changes the identity string.
func WithOrganization(org string) Option {
	return func(tmpl *x509.Certificate) {
		tmpl.Subject.Organization = []string{org}
	}
}

var serial atomic.Int64

// GenerateKey creates an ephemeral P-256 private key.
func GenerateKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func template(cn string, isCA bool, opts []Option) *x509.Certificate {
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(serial.Add(1)),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  isCA,
	}
	if isCA {
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature
	} else {
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature
		tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageAny}
	}
	for _, opt := range opts {
		opt(tmpl)
	}
	return tmpl
}

// create signs tmpl under parent's name with signer and parses the result.
func create(t testing.TB, tmpl, parent *x509.Certificate, key, signer *ecdsa.PrivateKey) *Issued {
	t.Helper()

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, &key.PublicKey, signer)
	if err != nil {
		t.Fatalf("create certificate %q: %v", tmpl.Subject.CommonName, err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse certificate %q: %v", tmpl.Subject.CommonName, err)
	}
	return &Issued{Cert: cert, Key: key}
}

// NewRoot creates a self-signed CA certificate.
func NewRoot(t testing.TB, cn string, opts ...Option) *Issued {
	t.Helper()
	return NewRootWithKey(t, cn, GenerateKey(t), opts...)
}

// NewRootWithKey creates a self-signed CA certificate for an existing key.
func NewRootWithKey(t testing.TB, cn string, key *ecdsa.PrivateKey, opts ...Option) *Issued {
	t.Helper()
	tmpl := template(cn, true, opts)
	return create(t, tmpl, tmpl, key, key)
}

// NewIntermediate creates a CA certificate issued by parent.
func NewIntermediate(t testing.TB, cn string, parent *Issued, opts ...Option) *Issued {
	t.Helper()
	return create(t, template(cn, true, opts), parent.Cert, GenerateKey(t), parent.Key)
}

// NewLeaf creates an end-entity certificate issued by parent.
func NewLeaf(t testing.TB, cn string, parent *Issued, opts ...Option) *Issued {
	t.Helper()
	return create(t, template(cn, false, opts), parent.Cert, GenerateKey(t), parent.Key)
}

// NewSelfSignedLeaf creates a self-signed end-entity certificate.
func NewSelfSignedLeaf(t testing.TB, cn string, opts ...Option) *Issued {
	t.Helper()
	key := GenerateKey(t)
	tmpl := template(cn, false, opts)
	return create(t, tmpl, tmpl, key, key)
}

// NewCrossSigned creates a CA certificate that reuses subject's name and key
// but is issued by parent, the way a cross-certificate is.
func NewCrossSigned(t testing.TB, subject, parent *Issued) *Issued {
	t.Helper()

	tmpl := template(subject.Cert.Subject.CommonName, true, nil)
	tmpl.Subject = subject.Cert.Subject
	tmpl.SubjectKeyId = subject.Cert.SubjectKeyId
	return create(t, tmpl, parent.Cert, subject.Key, parent.Key)
}

// NewRekeyed creates a certificate named like old, with old's subject as both
// subject and issuer, carrying a fresh key and signed by old's key. The result
// is self-issued but not self-signed.
func NewRekeyed(t testing.TB, old *Issued) *Issued {
	t.Helper()

	tmpl := template(old.Cert.Subject.CommonName, true, nil)
	tmpl.Subject = old.Cert.Subject
	return create(t, tmpl, old.Cert, GenerateKey(t), old.Key)
}

// NewMutualPair creates two CA certificates a and b where a is issued by b
// and b is issued by a. Neither is self-signed.
func NewMutualPair(t testing.TB, cnA, cnB string) (a, b *Issued) {
	t.Helper()

	keyA, keyB := GenerateKey(t), GenerateKey(t)
	tmplA, tmplB := template(cnA, true, nil), template(cnB, true, nil)
	tmplA.SubjectKeyId = keyID(t, keyA)
	tmplB.SubjectKeyId = keyID(t, keyB)

	// Unsigned templates stand in as parents: issuance only needs the
	// parent's name and key identifier.
	a = create(t, tmplA, tmplB, keyA, keyB)
	b = create(t, tmplB, tmplA, keyB, keyA)
	return a, b
}

// keyID hashes the uncompressed public point.
func keyID(t testing.TB, key *ecdsa.PrivateKey) []byte {
	t.Helper()
	pub, err := key.PublicKey.ECDH()
	if err != nil {
		t.Fatalf("key id: %v", err)
	}
	sum := sha1.Sum(pub.Bytes())
	return sum[:]
}
