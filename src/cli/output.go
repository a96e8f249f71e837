// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/helper/gc"
	x509chain "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/keystore"
	"github.com/fatih/color"
)

var (
	trustedColor   = color.New(color.FgGreen, color.Bold)
	untrustedColor = color.New(color.FgRed, color.Bold)
	labelColor     = color.New(color.FgYellow)
	dimColor       = color.New(color.Faint)
)

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	return nil
}

// loadStore loads the keystore at paths, failing with missing when paths is empty.
func loadStore(ctx context.Context, paths []string, password string, missing error) (*keystore.Store, error) {
	if len(paths) == 0 {
		return nil, missing
	}
	return (&keystore.FileSource{Paths: paths, Password: password}).Load(ctx)
}

// readCertificate decodes the first certificate held in file.
func readCertificate(file string) (*x509.Certificate, error) {
	data, err := gc.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	certs, err := keystore.Decode(file, data, "")
	if err != nil {
		return nil, fmt.Errorf("error decoding certificate: %w", err)
	}
	return certs[0], nil
}

// pathSummary renders "leaf -> ... -> root" using identity strings.
func pathSummary(path *x509chain.Path) string {
	names := make([]string, path.Len())
	for i, cert := range path.Certs {
		names[i] = x509chain.Identity(cert.Subject)
	}
	return strings.Join(names, " -> ")
}
