// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"context"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	x509chain "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/pkitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeLevelPath(t *testing.T) (*x509chain.Path, []*pkitest.Issued) {
	t.Helper()

	root := pkitest.NewRoot(t, "Path Root")
	inter := pkitest.NewIntermediate(t, "Path Int", root)
	leaf := pkitest.NewLeaf(t, "path.example.com", inter)

	path, err := x509chain.NewValidator().Resolve(leaf.Cert, certs(root, inter))
	require.NoError(t, err)
	return path, []*pkitest.Issued{leaf, inter, root}
}

func TestPath(t *testing.T) {
	path, issued := threeLevelPath(t)

	assert.Equal(t, 3, path.Len())
	assert.True(t, path.Leaf().Equal(issued[0].Cert))
	assert.True(t, path.Root().Equal(issued[2].Cert))

	inters := path.FilterIntermediates()
	require.Len(t, inters, 1)
	assert.True(t, inters[0].Equal(issued[1].Cert))
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name string
		in   pkix.Name
		want string
	}{
		{
			name: "Common Name",
			in:   pkix.Name{CommonName: "CA_ROOT"},
			want: "CN=CA_ROOT",
		},
		{
			name: "Organization",
			in:   pkix.Name{CommonName: "CA_INT", Organization: []string{"Example"}},
			want: "CN=CA_INT,O=Example",
		},
		{
			name: "Escaped Comma",
			in:   pkix.Name{CommonName: "a,b"},
			want: `CN=a\,b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x509chain.Identity(tt.in))
		})
	}
}

func TestIsSelfSigned(t *testing.T) {
	root := pkitest.NewRoot(t, "Self Root")
	inter := pkitest.NewIntermediate(t, "Self Int", root)
	self := pkitest.NewSelfSignedLeaf(t, "self.example.com")

	assert.True(t, x509chain.IsSelfSigned(root.Cert))
	assert.True(t, x509chain.IsRootNode(root.Cert))
	assert.True(t, x509chain.IsSelfSigned(self.Cert), "no CA constraint on self-signature")
	assert.False(t, x509chain.IsSelfSigned(inter.Cert))
	assert.False(t, x509chain.IsSelfSigned(nil))

	tampered := *root.Cert
	tampered.Signature = append([]byte(nil), root.Cert.Signature...)
	tampered.Signature[len(tampered.Signature)-1] ^= 0xff
	assert.False(t, x509chain.IsSelfSigned(&tampered))
}

func TestRendering(t *testing.T) {
	path, _ := threeLevelPath(t)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "ASCII Tree",
			testFunc: func(t *testing.T) {
				tree := path.RenderASCIITree()
				lines := strings.Split(strings.TrimSuffix(tree, "\n"), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, "├── CN=path.example.com (Leaf Certificate)", lines[0])
				assert.Equal(t, "    ├── CN=Path Int (Intermediate CA Certificate)", lines[1])
				assert.Equal(t, "        └── CN=Path Root (Root CA Certificate)", lines[2])
			},
		},
		{
			name: "ASCII Tree Empty",
			testFunc: func(t *testing.T) {
				empty := &x509chain.Path{}
				assert.Equal(t, "No certificates in path", empty.RenderASCIITree())
				assert.Equal(t, "No certificates to display", empty.RenderTable())
			},
		},
		{
			name: "ASCII Tree Single Root",
			testFunc: func(t *testing.T) {
				root := pkitest.NewRoot(t, "Lonely Root")
				single := &x509chain.Path{Certs: certs(root)}
				assert.Equal(t, "└── CN=Lonely Root (Self-Signed Root)\n", single.RenderASCIITree())
			},
		},
		{
			name: "Table",
			testFunc: func(t *testing.T) {
				table := path.RenderTable()
				assert.Contains(t, table, "CN=path.example.com")
				assert.Contains(t, table, "CN=Path Int")
				assert.Contains(t, table, "CN=Path Root")
				assert.Contains(t, table, "256-bit ECDSA")
				assert.Contains(t, table, "|")
			},
		},
		{
			name: "JSON",
			testFunc: func(t *testing.T) {
				data, err := path.ToJSON()
				require.NoError(t, err)

				var doc x509chain.PathJSON
				require.NoError(t, json.Unmarshal(data, &doc))
				assert.True(t, doc.Trusted)
				assert.Equal(t, 3, doc.PathLength)
				require.Len(t, doc.Certificates, 3)
				assert.Equal(t, "CN=path.example.com", doc.Certificates[0].Subject)
				assert.Equal(t, "Root CA Certificate", doc.Certificates[2].Role)
				assert.True(t, doc.Certificates[2].SelfSigned)
				assert.False(t, doc.Certificates[0].IsCA)
				require.Len(t, doc.Relationships, 2)
				assert.Equal(t, "issued_by", doc.Relationships[0].Type)
				assert.Equal(t, 1, doc.Relationships[1].FromIndex)
				assert.Equal(t, 2, doc.Relationships[1].ToIndex)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestTrustedIssuers(t *testing.T) {
	root := pkitest.NewRoot(t, "Issuers Root")
	inter := pkitest.NewIntermediate(t, "Issuers Int", root)
	signerA := pkitest.NewLeaf(t, "signer-a", inter)
	signerB := pkitest.NewLeaf(t, "signer-b", inter)
	signerC := pkitest.NewLeaf(t, "signer-c", root)
	stranger := pkitest.NewLeaf(t, "stranger", pkitest.NewRoot(t, "Foreign Root"))

	pool := certs(root, inter)

	tests := []struct {
		name    string
		signers []*x509.Certificate
		want    []string
	}{
		{
			name:    "Deduplicated In First-Seen Order",
			signers: certs(signerA, stranger, signerC, signerB),
			want:    []string{"CN=Issuers Int", "CN=Issuers Root"},
		},
		{
			name:    "None Trusted",
			signers: certs(stranger),
			want:    nil,
		},
		{
			name:    "Nil Signers Skipped",
			signers: []*x509.Certificate{nil, signerC.Cert},
			want:    []string{"CN=Issuers Root"},
		},
		{
			name: "Empty",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x509chain.TrustedIssuers(tt.signers, pool))
		})
	}
}

func TestFetchRemoteLeaf(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Presented Certificates",
			testFunc: func(t *testing.T) {
				srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
				defer srv.Close()

				u, err := url.Parse(srv.URL)
				require.NoError(t, err)
				host, portStr, err := net.SplitHostPort(u.Host)
				require.NoError(t, err)
				port, err := strconv.Atoi(portStr)
				require.NoError(t, err)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				leaf, presented, err := x509chain.FetchRemoteLeaf(ctx, host, port, 5*time.Second)
				require.NoError(t, err)
				require.NotEmpty(t, presented)
				assert.True(t, leaf.Equal(srv.Certificate()))
				assert.True(t, presented[0].Equal(leaf))
			},
		},
		{
			name: "Connection Refused",
			testFunc: func(t *testing.T) {
				ln, err := net.Listen("tcp", "127.0.0.1:0")
				require.NoError(t, err)
				port := ln.Addr().(*net.TCPAddr).Port
				require.NoError(t, ln.Close())

				_, _, err = x509chain.FetchRemoteLeaf(context.Background(), "127.0.0.1", port, time.Second)
				assert.ErrorContains(t, err, "failed to connect")
			},
		},
		{
			name: "Canceled Context",
			testFunc: func(t *testing.T) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				_, _, err := x509chain.FetchRemoteLeaf(ctx, "127.0.0.1", 443, time.Second)
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
