// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	x509chain "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

type issuersOptions struct {
	signers        []string
	signerPassword string
	truststores    []string
	password       string
	format         string
	outputFile     string
}

func newIssuersCommand(g *globalOptions, log logger.Logger) *cobra.Command {
	o := &issuersOptions{}

	cmd := &cobra.Command{
		Use:   "issuers",
		Short: "List the issuers of signer certificates that have a trust path",
		Long: "Validate every signer certificate against the trust store and print the issuer\n" +
			"of each one that passes, once per issuer, in signer order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if err := o.apply(cmd, cfg); err != nil {
				return err
			}
			return o.run(cmd, cfg, log)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&o.signers, "signers", "s", nil, "signer certificate file or directory (repeatable)")
	f.StringVar(&o.signerPassword, "signer-password", "", "signer keystore password for PKCS12 keystores")
	f.StringArrayVarP(&o.truststores, "truststore", "t", nil, "trust store file or directory (repeatable, loaded in order)")
	f.StringVar(&o.password, "password", "", "trust store password for PKCS12 keystores")
	f.StringVarP(&o.format, "format", "f", "", "output format: text, table or json")
	f.StringVarP(&o.outputFile, "output", "o", "", "write the result to OUTPUT_FILE (default: stdout)")

	return cmd
}

func (o *issuersOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("signers") {
		cfg.SignerStore.Paths = o.signers
	}
	if f.Changed("signer-password") {
		cfg.SignerStore.Password = o.signerPassword
	}
	if f.Changed("truststore") {
		cfg.TrustStore.Paths = o.truststores
	}
	if f.Changed("password") {
		cfg.TrustStore.Password = o.password
	}
	if f.Changed("format") {
		cfg.Output.Format = o.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch cfg.Output.Format {
	case "text", "table", "json":
		return nil
	}
	return fmt.Errorf("%w %q: issuers supports text, table or json", ErrUnsupportedFormat, cfg.Output.Format)
}

func (o *issuersOptions) run(cmd *cobra.Command, cfg *config.Config, log logger.Logger) error {
	ctx := cmd.Context()

	signers, err := loadStore(ctx, cfg.SignerStore.Paths, cfg.SignerStore.Password, ErrSignersRequired)
	if err != nil {
		return err
	}
	trust, err := loadStore(ctx, cfg.TrustStore.Paths, cfg.TrustStore.Password, ErrTrustStoreRequired)
	if err != nil {
		return err
	}
	log.Debugf("checking %d signers against %d trusted certificates", signers.Len(), trust.Len())

	OperationPerformed = true

	v := x509chain.NewValidator(
		x509chain.WithLogger(log),
		x509chain.WithMaxDepth(cfg.Validation.MaxDepth),
	)
	issuers := v.TrustedIssuers(signers.Certificates(), trust.Certificates())

	data, err := renderIssuers(cfg.Output.Format, issuers)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), o.outputFile, data); err != nil {
		return err
	}

	OperationPerformedSuccessfully = true
	return nil
}

func renderIssuers(format string, issuers []string) ([]byte, error) {
	switch format {
	case "json":
		if issuers == nil {
			issuers = []string{}
		}
		return json.MarshalIndent(map[string][]string{"issuers": issuers}, "", "  ")
	case "table":
		var buf strings.Builder
		table := tablewriter.NewTable(&buf,
			tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
		)
		table.Header([]string{"#", "Trusted Issuer"})
		for i, issuer := range issuers {
			table.Append([]string{fmt.Sprintf("%d", i+1), issuer})
		}
		table.Render()
		return []byte(buf.String()), nil
	default:
		if len(issuers) == 0 {
			return []byte(labelColor.Sprint("no trusted issuers") + "\n"), nil
		}
		var b strings.Builder
		for _, issuer := range issuers {
			b.WriteString(issuer)
			b.WriteByte('\n')
		}
		return []byte(b.String()), nil
	}
}
