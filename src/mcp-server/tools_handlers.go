// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/keystore"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	errNotFileOrBase64 = errors.New("not a valid file path or base64 data")
	errNoStore         = errors.New("no keystore given and none configured")
)

// handleValidateTrustChain searches the trust store for a path from the
// requested certificate.
//
// The leaf comes from 'certificate' (file path or base64 data) or, when
// 'host' is set, from a TLS handshake. The trust store comes from
// 'truststore' or from trustStore.paths in cfg. An untrusted certificate is
// reported as an error result, not as a protocol error.
func handleValidateTrustChain(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	format := request.GetString("format", cfg.Output.Format)
	if !validFormat(format) {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}

	password := request.GetString("password", cfg.TrustStore.Password)
	store, err := loadStoreInput(ctx, "truststore", request.GetString("truststore", ""), password, cfg.TrustStore.Paths)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load trust store: %v", err)), nil
	}
	pool := store.Certificates()

	var leaf *x509.Certificate
	if host := request.GetString("host", ""); host != "" {
		port := request.GetInt("port", cfg.Remote.Port)
		var presented []*x509.Certificate
		leaf, presented, err = x509chain.FetchRemoteLeaf(ctx, host, port, cfg.RemoteTimeout())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to fetch remote certificate: %v", err)), nil
		}
		if request.GetBool("use_presented", false) {
			pool = append(pool, presented...)
		}
	} else {
		certInput, err := request.RequireString("certificate")
		if err != nil {
			return mcp.NewToolResultError("either certificate or host is required"), nil
		}
		certs, err := readCertificateInput(certInput, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err)), nil
		}
		leaf = certs[0]
	}

	v := x509chain.NewValidator(
		x509chain.WithMaxDepth(cfg.Validation.MaxDepth),
		x509chain.WithLogger(toolLogger(ctx)),
	)
	path, steps, searchErr := v.Trace(leaf, pool)

	var trace string
	if request.GetBool("trace", false) {
		trace = formatSteps(steps)
	}

	if searchErr != nil {
		text, err := renderUntrusted(leaf, searchErr, format)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultError(text + trace), nil
	}

	text, err := renderPath(path, format)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text + trace), nil
}

// handleListTrustedIssuers reports the issuers of signer certificates that
// validate against the trust store, deduplicated in signer order.
func handleListTrustedIssuers(ctx context.Context, request mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	signers, err := loadStoreInput(ctx, "signers",
		request.GetString("signers", ""),
		request.GetString("signer_password", cfg.SignerStore.Password),
		cfg.SignerStore.Paths)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load signers: %v", err)), nil
	}

	trust, err := loadStoreInput(ctx, "truststore",
		request.GetString("truststore", ""),
		request.GetString("password", cfg.TrustStore.Password),
		cfg.TrustStore.Paths)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load trust store: %v", err)), nil
	}

	v := x509chain.NewValidator(
		x509chain.WithMaxDepth(cfg.Validation.MaxDepth),
		x509chain.WithLogger(toolLogger(ctx)),
	)
	issuers := v.TrustedIssuers(signers.Certificates(), trust.Certificates())

	switch request.GetString("format", "text") {
	case "json":
		if issuers == nil {
			issuers = []string{}
		}
		data, err := json.MarshalIndent(map[string][]string{"issuers": issuers}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal issuers: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		if len(issuers) == 0 {
			return mcp.NewToolResultText("no trusted issuers"), nil
		}
		return mcp.NewToolResultText(strings.Join(issuers, "\n")), nil
	}
}

// readCertificateInput tries input as a file path first, then as base64.
func readCertificateInput(input, password string) ([]*x509.Certificate, error) {
	if data, err := gc.ReadFile(input); err == nil {
		return keystore.Decode(input, data, password)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return nil, errNotFileOrBase64
	}
	return keystore.Decode("", decoded, password)
}

// loadStoreInput resolves a keystore argument. An empty input falls back to
// the configured paths; a comma-separated list of existing paths is loaded
// from disk; anything else must be a base64 bundle.
func loadStoreInput(ctx context.Context, name, input, password string, fallback []string) (*keystore.Store, error) {
	if input == "" {
		if len(fallback) == 0 {
			return nil, errNoStore
		}
		return (&keystore.FileSource{Paths: fallback, Password: password}).Load(ctx)
	}

	if paths, ok := existingPaths(input); ok {
		return (&keystore.FileSource{Paths: paths, Password: password}).Load(ctx)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return nil, errNotFileOrBase64
	}
	certs, err := keystore.Decode("", decoded, password)
	if err != nil {
		return nil, err
	}
	return (&keystore.StaticSource{Name: name, Certs: certs}).Load(ctx)
}

// existingPaths splits input on commas and reports whether every element
// names an existing file or directory.
func existingPaths(input string) ([]string, bool) {
	var paths []string
	for p := range strings.SplitSeq(input, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return nil, false
		}
		paths = append(paths, p)
	}
	return paths, len(paths) > 0
}

func validFormat(format string) bool {
	switch format {
	case "text", "tree", "table", "json", "pem":
		return true
	}
	return false
}

// renderPath formats a found path.
func renderPath(path *x509chain.Path, format string) (string, error) {
	switch format {
	case "tree":
		return path.RenderASCIITree(), nil
	case "table":
		return path.RenderTable(), nil
	case "json":
		data, err := path.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to marshal path: %w", err)
		}
		return string(data), nil
	case "pem":
		return string(x509certs.New().EncodeMultiplePEM(path.Certs)), nil
	default:
		names := make([]string, path.Len())
		for i, cert := range path.Certs {
			names[i] = x509chain.Identity(cert.Subject)
		}
		return fmt.Sprintf("TRUSTED path: %s", strings.Join(names, " -> ")), nil
	}
}

type untrustedJSON struct {
	Trusted bool   `json:"trusted"`
	Subject string `json:"subject"`
	Issuer  string `json:"issuer"`
	Error   string `json:"error"`
}

// renderUntrusted formats a failed search.
func renderUntrusted(leaf *x509.Certificate, searchErr error, format string) (string, error) {
	subject := x509chain.Identity(leaf.Subject)
	if format != "json" {
		return fmt.Sprintf("UNTRUSTED %s: %v", subject, searchErr), nil
	}

	data, err := json.MarshalIndent(untrustedJSON{
		Subject: subject,
		Issuer:  x509chain.Identity(leaf.Issuer),
		Error:   searchErr.Error(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

func formatSteps(steps []x509chain.StepError) string {
	var b strings.Builder
	b.WriteString("\n\nRejected candidates:\n")
	if len(steps) == 0 {
		b.WriteString("  none\n")
	}
	for _, step := range steps {
		fmt.Fprintf(&b, "  %s\n", step.Error())
	}
	return b.String()
}
