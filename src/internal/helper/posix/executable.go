// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableName returns the base name of os.Args[0] without a ".exe" suffix,
// or fallback when os.Args[0] is unavailable.
//
//   - Linux/macOS: "x509-trust-path" from "/usr/local/bin/x509-trust-path"
//   - Windows: "x509-trust-path" from "C:\bin\x509-trust-path.exe"
func ExecutableName(fallback string) string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return fallback
	}
	return baseName(os.Args[0])
}

func baseName(arg string) string {
	name := filepath.Base(arg)

	// A Windows path seen on Unix keeps its backslashes after filepath.Base
	if strings.ContainsAny(name, `\/`) {
		parts := strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' })
		if len(parts) > 0 {
			name = parts[len(parts)-1]
		}
	}

	return strings.TrimSuffix(name, ".exe")
}
