// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// OperationPerformed is set once a command got far enough to run a trust
	// path search.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set when that search produced a result
	// that was written out.
	OperationPerformedSuccessfully bool
)

var (
	// ErrUntrusted is returned by validate when no trust path exists, so the
	// process exits non-zero.
	ErrUntrusted = errors.New("certificate is not trusted")

	// ErrInputRequired indicates that neither a certificate file nor --host was given.
	ErrInputRequired = errors.New("a certificate file or --host is required")

	// ErrTrustStoreRequired indicates that no trust store path was configured.
	ErrTrustStoreRequired = errors.New("at least one trust store path is required (--truststore or trustStore.paths)")

	// ErrSignersRequired indicates that issuers was run without signer certificates.
	ErrSignersRequired = errors.New("at least one signer path is required (--signers or signerStore.paths)")

	// ErrUnsupportedFormat indicates an output format the command cannot render.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// verboseLogger is implemented by loggers with a debug toggle.
type verboseLogger interface {
	SetVerbose(bool)
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool
}

// loadConfig reads the configuration named by --config or the environment.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	return config.Load(g.configPath)
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree, so tests can run several in one process.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   posix.ExecutableName("x509-trust-path"),
		Short: "X.509 trust path validator",
		Long: "Decide whether an X.509 certificate has an issuance path to a self-signed root " +
			"inside a local trust store, scanning the store last entry first.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
			if v, ok := log.(verboseLogger); ok {
				v.SetVerbose(g.verbose)
			}
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "path to configuration file (JSON or YAML)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "print search progress")
	root.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newValidateCommand(g, log),
		newIssuersCommand(g, log),
	)

	return root
}

// Execute runs the command line in os.Args against ctx.
// Errors are returned to the caller, which decides the exit status.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	root := NewRootCommand(version, log)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrUntrusted) {
			log.Printf("Error: %v", err)
		}
		return err
	}
	return nil
}
