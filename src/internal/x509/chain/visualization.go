// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the path as an ASCII tree, leaf at the top.
//
// Returns:
//   - string: ASCII tree representation of the path
func (p *Path) RenderASCIITree() string {
	if len(p.Certs) == 0 {
		return "No certificates in path"
	}

	var result strings.Builder
	for i, cert := range p.Certs {
		connector := "├── "
		if i == len(p.Certs)-1 {
			connector = "└── "
		}

		result.WriteString(strings.Repeat("    ", i))
		result.WriteString(connector)
		fmt.Fprintf(&result, "%s (%s)\n", Identity(cert.Subject), p.role(i))
	}

	return result.String()
}

// keyDescription returns the public key algorithm and size.
func keyDescription(cert *x509.Certificate) (string, int) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pub.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	default:
		return cert.PublicKeyAlgorithm.String(), 0
	}
}

// RenderTable renders the path as a markdown table with subject, issuer,
// validity end, key and self-signature columns.
//
// Returns:
//   - string: Markdown table representation of the path
func (p *Path) RenderTable() string {
	if len(p.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key", "Self-Signed"})

	rows := make([][]string, 0, len(p.Certs))
	for i, cert := range p.Certs {
		algo, bits := keyDescription(cert)
		key := algo
		if bits > 0 {
			key = fmt.Sprintf("%d-bit %s", bits, algo)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			p.role(i),
			Identity(cert.Subject),
			Identity(cert.Issuer),
			cert.NotAfter.UTC().Format("2006-01-02"),
			key,
			fmt.Sprintf("%t", IsSelfSigned(cert)),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// CertificateJSON is one path entry in [Path.ToJSON] output.
type CertificateJSON struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	IsCA               bool      `json:"isCA"`
	SelfSigned         bool      `json:"selfSigned"`
}

// RelationshipJSON links a certificate to the one that issued it.
type RelationshipJSON struct {
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
	Type      string `json:"type"`
}

// PathJSON is the document produced by [Path.ToJSON].
type PathJSON struct {
	Trusted       bool               `json:"trusted"`
	PathLength    int                `json:"pathLength"`
	Certificates  []CertificateJSON  `json:"certificates"`
	Relationships []RelationshipJSON `json:"relationships"`
}

// ToJSON converts the path to indented JSON with per-certificate details and
// "issued_by" relationships between neighbours.
func (p *Path) ToJSON() ([]byte, error) {
	data := PathJSON{
		Trusted:       true,
		PathLength:    len(p.Certs),
		Certificates:  make([]CertificateJSON, len(p.Certs)),
		Relationships: make([]RelationshipJSON, 0, len(p.Certs)),
	}

	for i, cert := range p.Certs {
		algo, bits := keyDescription(cert)
		data.Certificates[i] = CertificateJSON{
			Index:              i,
			Role:               p.role(i),
			Subject:            Identity(cert.Subject),
			Issuer:             Identity(cert.Issuer),
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            bits,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			SelfSigned:         IsSelfSigned(cert),
		}
	}

	for i := 0; i < len(p.Certs)-1; i++ {
		data.Relationships = append(data.Relationships, RelationshipJSON{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "issued_by",
		})
	}

	return json.MarshalIndent(data, "", "  ")
}
