// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/cli"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	x509certs "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/pkitest"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const version = "1.3.3.7-testing"

type fixture struct {
	dir       string
	trust     string
	leafFile  string
	stranger  string
	signerDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	color.NoColor = true
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvStorePassword, "")

	root := pkitest.NewRoot(t, "CLI Root")
	inter := pkitest.NewIntermediate(t, "CLI Int", root)
	leaf := pkitest.NewLeaf(t, "cli.example.com", inter)
	foreign := pkitest.NewRoot(t, "CLI Foreign")
	stranger := pkitest.NewLeaf(t, "stranger.example.com", foreign)
	enc := x509certs.New()

	dir := t.TempDir()
	f := &fixture{dir: dir}
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	f.trust = write("trust.pem", enc.EncodeMultiplePEM([]*x509.Certificate{root.Cert, inter.Cert}))
	f.leafFile = write("leaf.crt", enc.EncodeDER(leaf.Cert))
	f.stranger = write("stranger.pem", enc.EncodePEM(stranger.Cert))

	f.signerDir = filepath.Join(dir, "signers")
	require.NoError(t, os.Mkdir(f.signerDir, 0o700))
	signerA := pkitest.NewLeaf(t, "signer-a", inter)
	signerB := pkitest.NewLeaf(t, "signer-b", root)
	require.NoError(t, os.WriteFile(filepath.Join(f.signerDir, "a.pem"), enc.EncodePEM(signerA.Cert), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(f.signerDir, "b.pem"), enc.EncodePEM(signerB.Cert), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(f.signerDir, "c.pem"), enc.EncodePEM(stranger.Cert), 0o600))

	return f
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&errOut)

	cmd := cli.NewRootCommand(version, log)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestValidateCommand(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Trusted Text",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "validate", "-t", f.trust, f.leafFile)
				require.NoError(t, err)
				assert.Equal(t, "TRUSTED path: CN=cli.example.com -> CN=CLI Int -> CN=CLI Root\n", out)
				assert.True(t, cli.OperationPerformedSuccessfully)
			},
		},
		{
			name: "Untrusted",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "validate", "-t", f.trust, f.stranger)
				assert.ErrorIs(t, err, cli.ErrUntrusted)
				assert.Contains(t, out, "UNTRUSTED CN=stranger.example.com")
			},
		},
		{
			name: "Untrusted JSON",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "validate", "-t", f.trust, "-f", "json", f.stranger)
				assert.ErrorIs(t, err, cli.ErrUntrusted)

				var doc map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &doc))
				assert.Equal(t, false, doc["trusted"])
				assert.Equal(t, "CN=CLI Foreign", doc["issuer"])
			},
		},
		{
			name: "Tree",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "validate", "-t", f.trust, "--format", "tree", f.leafFile)
				require.NoError(t, err)
				assert.Contains(t, out, "└── CN=CLI Root (Root CA Certificate)")
			},
		},
		{
			name: "Table",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "validate", "-t", f.trust, "-f", "table", f.leafFile)
				require.NoError(t, err)
				assert.Contains(t, out, "CN=CLI Int")
			},
		},
		{
			name: "JSON",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "validate", "-t", f.trust, "-f", "json", f.leafFile)
				require.NoError(t, err)

				var doc struct {
					Trusted    bool `json:"trusted"`
					PathLength int  `json:"pathLength"`
				}
				require.NoError(t, json.Unmarshal([]byte(out), &doc))
				assert.True(t, doc.Trusted)
				assert.Equal(t, 3, doc.PathLength)
			},
		},
		{
			name: "PEM To File",
			testFunc: func(t *testing.T) {
				dest := filepath.Join(t.TempDir(), "path.pem")
				out, _, err := run(t, "validate", "-t", f.trust, "-f", "pem", "-o", dest, f.leafFile)
				require.NoError(t, err)
				assert.Empty(t, out)

				data, err := os.ReadFile(dest)
				require.NoError(t, err)
				assert.Equal(t, 3, strings.Count(string(data), "-----BEGIN CERTIFICATE-----"))
				block, _ := pem.Decode(data)
				require.NotNil(t, block)
			},
		},
		{
			name: "Trace",
			testFunc: func(t *testing.T) {
				_, stderr, err := run(t, "validate", "-t", f.trust, "--trace", f.stranger)
				assert.ErrorIs(t, err, cli.ErrUntrusted)
				assert.Contains(t, stderr, "rejected")
				assert.Contains(t, stderr, "identity mismatch")
			},
		},
		{
			name: "Verbose",
			testFunc: func(t *testing.T) {
				_, stderr, err := run(t, "validate", "-v", "-t", f.trust, f.leafFile)
				require.NoError(t, err)
				assert.Contains(t, stderr, "debug: validating via CN=CLI Int")
			},
		},
		{
			name: "Max Depth",
			testFunc: func(t *testing.T) {
				_, _, err := run(t, "validate", "-t", f.trust, "--max-depth", "1", f.leafFile)
				assert.NoError(t, err, "the root is found while scanning at depth one")

				_, _, err = run(t, "validate", "-t", f.trust, "--max-depth", "65", f.leafFile)
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
			},
		},
		{
			name: "Missing Input",
			testFunc: func(t *testing.T) {
				_, _, err := run(t, "validate", "-t", f.trust)
				assert.ErrorIs(t, err, cli.ErrInputRequired)
			},
		},
		{
			name: "Missing Trust Store",
			testFunc: func(t *testing.T) {
				_, _, err := run(t, "validate", f.leafFile)
				assert.ErrorIs(t, err, cli.ErrTrustStoreRequired)
			},
		},
		{
			name: "Nonexistent Trust Store",
			testFunc: func(t *testing.T) {
				_, _, err := run(t, "validate", "-t", filepath.Join(f.dir, "absent.pem"), f.leafFile)
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
			},
		},
		{
			name: "Invalid Format",
			testFunc: func(t *testing.T) {
				_, _, err := run(t, "validate", "-t", f.trust, "-f", "xml", f.leafFile)
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
			},
		},
		{
			name: "Undecodable Input",
			testFunc: func(t *testing.T) {
				_, _, err := run(t, "validate", "-t", f.trust, f.trust+"-missing")
				assert.ErrorContains(t, err, "error reading input file")

				junk := filepath.Join(t.TempDir(), "junk.der")
				require.NoError(t, os.WriteFile(junk, []byte("junk"), 0o600))
				_, _, err = run(t, "validate", "-t", f.trust, junk)
				assert.ErrorIs(t, err, x509certs.ErrParseCertificate)
			},
		},
		{
			name: "Config File",
			testFunc: func(t *testing.T) {
				cfgPath := filepath.Join(t.TempDir(), "config.yaml")
				content := "trustStore:\n  paths: [\"" + f.trust + "\"]\noutput:\n  format: tree\n"
				require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

				out, _, err := run(t, "--config", cfgPath, "validate", f.leafFile)
				require.NoError(t, err)
				assert.Contains(t, out, "CN=CLI Root")

				out, _, err = run(t, "--config", cfgPath, "validate", "-f", "text", f.leafFile)
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(out, "TRUSTED"), "flags override the file")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestValidateCommand_Host(t *testing.T) {
	newFixture(t)

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	trust := filepath.Join(t.TempDir(), "server.pem")
	require.NoError(t, os.WriteFile(trust, x509certs.New().EncodePEM(srv.Certificate()), 0o600))

	out, _, err := run(t, "validate", "-t", trust, "--host", host, "--port", port)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "TRUSTED"))

	other := pkitest.NewRoot(t, "Unrelated")
	unrelated := filepath.Join(t.TempDir(), "other.pem")
	require.NoError(t, os.WriteFile(unrelated, x509certs.New().EncodePEM(other.Cert), 0o600))

	_, _, err = run(t, "validate", "-t", unrelated, "--host", host, "--port", port)
	assert.ErrorIs(t, err, cli.ErrUntrusted)

	_, _, err = run(t, "validate", "-t", unrelated, "--host", host, "--port", port, "--use-presented")
	assert.ErrorIs(t, err, cli.ErrUntrusted, "a self-signed server presents nothing beyond its leaf")
}

func TestIssuersCommand(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Text",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "issuers", "-s", f.signerDir, "-t", f.trust)
				require.NoError(t, err)
				assert.Equal(t, "CN=CLI Int\nCN=CLI Root\n", out)
			},
		},
		{
			name: "JSON",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "issuers", "-s", f.signerDir, "-t", f.trust, "-f", "json")
				require.NoError(t, err)

				var doc map[string][]string
				require.NoError(t, json.Unmarshal([]byte(out), &doc))
				assert.Equal(t, []string{"CN=CLI Int", "CN=CLI Root"}, doc["issuers"])
			},
		},
		{
			name: "Table",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "issuers", "-s", f.signerDir, "-t", f.trust, "-f", "table")
				require.NoError(t, err)
				assert.Contains(t, out, "CN=CLI Int")
				assert.Contains(t, out, "CN=CLI Root")
			},
		},
		{
			name: "None Trusted",
			testFunc: func(t *testing.T) {
				out, _, err := run(t, "issuers", "-s", f.stranger, "-t", f.trust)
				require.NoError(t, err)
				assert.Equal(t, "no trusted issuers\n", out)

				out, _, err = run(t, "issuers", "-s", f.stranger, "-t", f.trust, "-f", "json")
				require.NoError(t, err)
				assert.JSONEq(t, `{"issuers": []}`, out)
			},
		},
		{
			name: "Unsupported Formats",
			testFunc: func(t *testing.T) {
				for _, format := range []string{"tree", "pem"} {
					out, _, err := run(t, "issuers", "-s", f.signerDir, "-t", f.trust, "-f", format)
					assert.ErrorIs(t, err, cli.ErrUnsupportedFormat, format)
					assert.Empty(t, out, format)
				}

				_, _, err := run(t, "issuers", "-s", f.signerDir, "-t", f.trust, "-f", "yaml")
				assert.Error(t, err)
				assert.NotErrorIs(t, err, cli.ErrUnsupportedFormat, "rejected by config validation first")
			},
		},
		{
			name: "Missing Signers",
			testFunc: func(t *testing.T) {
				_, _, err := run(t, "issuers", "-t", f.trust)
				assert.ErrorIs(t, err, cli.ErrSignersRequired)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestExecute(t *testing.T) {
	f := newFixture(t)

	var logs bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&logs)

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"x509-trust-path", "validate", "-t", f.trust, "-o", filepath.Join(t.TempDir(), "out.txt"), f.leafFile}
	require.NoError(t, cli.Execute(context.Background(), version, log))
	assert.True(t, cli.OperationPerformed)
	assert.True(t, cli.OperationPerformedSuccessfully)

	os.Args = []string{"x509-trust-path", "validate"}
	err := cli.Execute(context.Background(), version, log)
	assert.ErrorIs(t, err, cli.ErrTrustStoreRequired)
	assert.False(t, cli.OperationPerformed)
	assert.Contains(t, logs.String(), "Error: ")

	os.Args = []string{"x509-trust-path", "--version"}
	require.NoError(t, cli.Execute(context.Background(), version, log))
}
