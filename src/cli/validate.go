// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	x509certs "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	truststores  []string
	password     string
	host         string
	port         int
	usePresented bool
	format       string
	outputFile   string
	maxDepth     int
	trace        bool
}

func newValidateCommand(g *globalOptions, log logger.Logger) *cobra.Command {
	o := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [CERT_FILE]",
		Short: "Check that a certificate has a trust path in a trust store",
		Long: "Search the trust store for an issuance path from the certificate to a self-signed root.\n" +
			"The store is scanned from its last entry to its first and the first complete path wins.\n" +
			"Exits non-zero when no path exists.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if err := o.apply(cmd, cfg); err != nil {
				return err
			}
			return o.run(cmd, args, cfg, log)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&o.truststores, "truststore", "t", nil, "trust store file or directory (repeatable, loaded in order)")
	f.StringVar(&o.password, "password", "", "trust store password for PKCS12 keystores")
	f.StringVar(&o.host, "host", "", "fetch the leaf certificate from this TLS server instead of a file")
	f.IntVar(&o.port, "port", 0, "TLS port used with --host (default from config, 443)")
	f.BoolVar(&o.usePresented, "use-presented", false, "append certificates presented by --host to the trust pool")
	f.StringVarP(&o.format, "format", "f", "", "output format: text, tree, table, json or pem")
	f.StringVarP(&o.outputFile, "output", "o", "", "write the result to OUTPUT_FILE (default: stdout)")
	f.IntVar(&o.maxDepth, "max-depth", 0, "recursion cap, 0 means the trust store size")
	f.BoolVar(&o.trace, "trace", false, "print every rejected candidate")

	return cmd
}

// apply lets explicitly set flags override the configuration.
func (o *validateOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("truststore") {
		cfg.TrustStore.Paths = o.truststores
	}
	if f.Changed("password") {
		cfg.TrustStore.Password = o.password
	}
	if f.Changed("port") {
		cfg.Remote.Port = o.port
	}
	if f.Changed("format") {
		cfg.Output.Format = o.format
	}
	if f.Changed("max-depth") {
		cfg.Validation.MaxDepth = o.maxDepth
	}
	return cfg.Validate()
}

func (o *validateOptions) leaf(cmd *cobra.Command, args []string, cfg *config.Config, log logger.Logger) (*x509.Certificate, []*x509.Certificate, error) {
	if o.host != "" {
		leaf, presented, err := x509chain.FetchRemoteLeaf(cmd.Context(), o.host, cfg.Remote.Port, cfg.RemoteTimeout())
		if err != nil {
			return nil, nil, err
		}
		log.Debugf("fetched %d certificates from %s:%d", len(presented), o.host, cfg.Remote.Port)
		return leaf, presented[1:], nil
	}

	if len(args) == 0 {
		return nil, nil, ErrInputRequired
	}
	leaf, err := readCertificate(args[0])
	return leaf, nil, err
}

func (o *validateOptions) run(cmd *cobra.Command, args []string, cfg *config.Config, log logger.Logger) error {
	ctx := cmd.Context()

	store, err := loadStore(ctx, cfg.TrustStore.Paths, cfg.TrustStore.Password, ErrTrustStoreRequired)
	if err != nil {
		return err
	}

	leaf, presented, err := o.leaf(cmd, args, cfg, log)
	if err != nil {
		return err
	}

	pool := store.Certificates()
	if o.usePresented {
		pool = append(pool, presented...)
	}
	log.Debugf("trust pool holds %d certificates", len(pool))

	v := x509chain.NewValidator(
		x509chain.WithLogger(log),
		x509chain.WithMaxDepth(cfg.Validation.MaxDepth),
	)

	OperationPerformed = true

	path, steps, searchErr := v.Trace(leaf, pool)
	if o.trace {
		printSteps(cmd.ErrOrStderr(), steps)
	}

	data, err := render(cfg.Output.Format, leaf, path, searchErr)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), o.outputFile, data); err != nil {
		return err
	}

	if searchErr != nil {
		return fmt.Errorf("%w: %w", ErrUntrusted, searchErr)
	}

	OperationPerformedSuccessfully = true
	return nil
}

func printSteps(w io.Writer, steps []x509chain.StepError) {
	for i := range steps {
		dimColor.Fprintf(w, "  rejected %s\n", steps[i].Error())
	}
}

// untrustedJSON is the json document written when no path exists.
type untrustedJSON struct {
	Trusted bool   `json:"trusted"`
	Subject string `json:"subject"`
	Issuer  string `json:"issuer"`
	Error   string `json:"error"`
}

// render formats the search outcome.
func render(format string, leaf *x509.Certificate, path *x509chain.Path, searchErr error) ([]byte, error) {
	if searchErr != nil {
		switch format {
		case "json":
			return json.MarshalIndent(untrustedJSON{
				Subject: x509chain.Identity(leaf.Subject),
				Issuer:  x509chain.Identity(leaf.Issuer),
				Error:   searchErr.Error(),
			}, "", "  ")
		case "pem":
			return nil, nil
		default:
			return []byte(untrustedColor.Sprint("UNTRUSTED") + " " +
				x509chain.Identity(leaf.Subject) + ": " + searchErr.Error() + "\n"), nil
		}
	}

	switch format {
	case "tree":
		return []byte(path.RenderASCIITree()), nil
	case "table":
		return []byte(path.RenderTable()), nil
	case "json":
		return path.ToJSON()
	case "pem":
		return x509certs.New().EncodeMultiplePEM(path.Certs), nil
	default:
		return []byte(trustedColor.Sprint("TRUSTED") + " " +
			labelColor.Sprint("path: ") + pathSummary(path) + "\n"), nil
	}
}
