// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/mcp-server/templates"
)

// Run serves the trust path tools on stdio until stdin closes or the process
// receives SIGINT or SIGTERM.
//
// Parameters:
//   - version: Version string reported to clients
//   - configFile: Default for --config; empty falls back to TRUSTPATH_CONFIG_FILE
//
// Returns:
//   - error: Configuration, build or transport error; an error wrapping
//     [context.Canceled] after a signal
//
// Diagnostics are written to stderr as JSON lines; stdout carries only
// protocol messages.
func Run(version, configFile string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewMCPLogger(os.Stderr, false)

	cf := NewCLIFramework(configFile, ServerDependencies{
		Embed:   templates.MagicEmbed,
		Version: version,
		Logger:  log,
	})
	rootCmd, err := cf.BuildRootCommand()
	if err != nil {
		return err
	}

	err = rootCmd.ExecuteContext(ctx)
	if ctx.Err() != nil && (err == nil || errors.Is(err, context.Canceled)) {
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
	return err
}
