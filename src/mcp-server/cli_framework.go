// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/config"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// defaultExecutableName is used when the binary name cannot be determined.
const defaultExecutableName = "x509-trust-path-mcp"

var errMissingExamples = errors.New("CLI help template has invalid format - missing '## Examples' section")

// cliHelpData holds the data used to populate cli_help.md.
type cliHelpData struct {
	ExeName              string
	InstructionsFlagName string
	ConfigFlagName       string
	HelpFlagName         string
}

// debugLogger is implemented by loggers that can switch debug output on.
type debugLogger interface {
	SetDebug(bool)
}

// CLIFramework integrates a Cobra root command with the MCP server.
//
// Without flags the command serves MCP on the command's stdin and stdout.
// With --instructions it prints the rendered server instructions and exits,
// in the manner of [gopls].
//
// [gopls]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
type CLIFramework struct {
	configFile string
	embed      templates.EmbedFS
	version    string
	log        logger.Logger
	debug      bool
}

// NewCLIFramework creates a CLI framework. Configuration is loaded when the
// command runs, so the --config flag can override configFile.
func NewCLIFramework(configFile string, deps ServerDependencies) *CLIFramework {
	cf := &CLIFramework{
		configFile: configFile,
		embed:      deps.Embed,
		version:    deps.Version,
		log:        deps.Logger,
	}
	if cf.embed == nil {
		cf.embed = templates.MagicEmbed
	}
	if cf.log == nil {
		cf.log = logger.Discard
	}
	return cf
}

// BuildRootCommand creates the root Cobra command.
//
// Returns:
//   - *cobra.Command: Root command that serves MCP over stdio by default
//   - error: cli_help.md could not be loaded or is malformed
func (cf *CLIFramework) BuildRootCommand() (*cobra.Command, error) {
	exeName := posix.ExecutableName(defaultExecutableName)

	rootCmd := &cobra.Command{
		Use:           exeName,
		Short:         "X.509 trust path validator over the Model Context Protocol",
		Version:       cf.version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// cobra adds the help flag during Execute; the help text needs its name earlier.
	rootCmd.Flags().BoolP("help", "h", false, "help for "+exeName)

	var showInstructions bool
	rootCmd.PersistentFlags().BoolVar(&showInstructions, "instructions", false, "print usage workflows for the trust path tools")
	rootCmd.PersistentFlags().StringVar(&cf.configFile, "config", cf.configFile, "path to configuration file (default: $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().BoolVar(&cf.debug, "debug", false, "log every validation step to stderr")

	instructionsFlagName, configFlagName, helpFlagName := extractFlagNames(rootCmd)
	longDesc, examples, err := cf.loadAndExecuteCLIHelpTemplate(exeName, instructionsFlagName, configFlagName, helpFlagName)
	if err != nil {
		return nil, err
	}
	rootCmd.Long = longDesc
	rootCmd.Example = examples

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if showInstructions {
			instructions, err := loadInstructions(cf.embed, createTools())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), instructions)
			return err
		}
		return cf.serve(cmd)
	}

	return rootCmd, nil
}

// serve builds the server and runs it on the command's stdin and stdout
// until the input closes or the command context is canceled.
func (cf *CLIFramework) serve(cmd *cobra.Command) error {
	cfg, err := config.Load(cf.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	instructions, err := loadInstructions(cf.embed, createTools())
	if err != nil {
		return fmt.Errorf("failed to load instructions: %w", err)
	}

	if d, ok := cf.log.(debugLogger); ok {
		d.SetDebug(cf.debug)
	}

	s, err := NewServerBuilder().
		WithConfig(cfg).
		WithEmbed(cf.embed).
		WithVersion(cf.version).
		WithLogger(cf.log).
		WithDefaultTools().
		WithInstructions(instructions).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	cf.log.Printf("serving %s %s on stdio", serverName, cf.version)
	return server.NewStdioServer(s).Listen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

// loadAndExecuteCLIHelpTemplate renders cli_help.md and splits it into the
// Long description and the Examples section.
func (cf *CLIFramework) loadAndExecuteCLIHelpTemplate(exeName, instructionsFlagName, configFlagName, helpFlagName string) (longDesc, examples string, err error) {
	templateBytes, err := cf.embed.ReadFile("cli_help.md")
	if err != nil {
		return "", "", fmt.Errorf("failed to load CLI help template: %w", err)
	}

	tmpl, err := template.New("cli_help").Parse(string(templateBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse CLI help template: %w", err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, cliHelpData{
		ExeName:              exeName,
		InstructionsFlagName: instructionsFlagName,
		ConfigFlagName:       configFlagName,
		HelpFlagName:         helpFlagName,
	}); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}

	return parseTemplateResult(result.String())
}

// parseTemplateResult splits templateResult at the "## Examples" line.
func parseTemplateResult(templateResult string) (longDesc, examples string, err error) {
	const examplesMarker = "## Examples"
	markerIndex := strings.Index(templateResult, examplesMarker)
	if markerIndex == -1 {
		return "", "", errMissingExamples
	}

	lineStart := strings.LastIndex(templateResult[:markerIndex], "\n") + 1

	lineEnd := strings.Index(templateResult[markerIndex:], "\n")
	if lineEnd == -1 {
		lineEnd = len(templateResult)
	} else {
		lineEnd += markerIndex
	}

	longDesc = strings.TrimSpace(templateResult[:lineStart])
	examples = strings.TrimSpace(templateResult[lineEnd:])
	return longDesc, examples, nil
}

// extractFlagNames looks up the flags named in the help text, falling back
// to their default names.
func extractFlagNames(rootCmd *cobra.Command) (instructionsFlagName, configFlagName, helpFlagName string) {
	instructionsFlagName = "--instructions"
	if f := rootCmd.PersistentFlags().Lookup("instructions"); f != nil {
		instructionsFlagName = "--" + f.Name
	}

	configFlagName = "--config"
	if f := rootCmd.PersistentFlags().Lookup("config"); f != nil {
		configFlagName = "--" + f.Name
	}

	helpFlagName = "--help"
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		helpFlagName = "--" + f.Name
	}

	return instructionsFlagName, configFlagName, helpFlagName
}
