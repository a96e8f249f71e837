// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"crypto/x509/pkix"
)

// Path is an issuance path found in a trust pool, leaf first and self-signed
// root last. A root validated against itself yields a one-element path.
type Path struct {
	Certs []*x509.Certificate
}

// Len returns the number of certificates in the path.
func (p *Path) Len() int { return len(p.Certs) }

// Leaf returns the certificate the search started from.
func (p *Path) Leaf() *x509.Certificate { return p.Certs[0] }

// Root returns the self-signed certificate that terminated the search.
func (p *Path) Root() *x509.Certificate { return p.Certs[len(p.Certs)-1] }

// FilterIntermediates returns every certificate except the leaf and the root,
// or nil when there are none.
func (p *Path) FilterIntermediates() []*x509.Certificate {
	if len(p.Certs) <= 2 {
		return nil
	}
	return p.Certs[1 : len(p.Certs)-1]
}

// Identity returns the identity string compared when matching a certificate's
// issuer against a candidate's subject. It is plain string equality of the
// RFC 2253 rendering, not a canonicalized DN comparison.
func Identity(name pkix.Name) string { return name.String() }

// IsSelfSigned reports whether cert's signature verifies under its own public
// key. Any cryptographic error, such as an unsupported algorithm or a malformed
// key, makes it false.
func IsSelfSigned(cert *x509.Certificate) bool {
	if cert == nil {
		return false
	}
	return cert.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature) == nil
}

// IsRootNode determines if a certificate can terminate a path.
//
// Returns:
//   - bool: true if it's a root certificate (currently checks if self-signed)
func IsRootNode(cert *x509.Certificate) bool { return IsSelfSigned(cert) }

// role determines the role of the certificate at index within the path.
func (p *Path) role(index int) string {
	total := len(p.Certs)
	switch {
	case total == 1:
		return "Self-Signed Root"
	case index == 0:
		return "Leaf Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}
