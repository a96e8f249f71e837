// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

var errMissingCertificate = errors.New("certificate argument is required")

// promptTemplateData holds the values substituted into prompt templates.
type promptTemplateData struct {
	Certificate string
	TrustStore  string
	ToolName    string
}

// parsePromptTemplate executes an embedded prompt template and splits the
// result into messages at "### User:" and "### Assistant:" markers. Other
// headers and blank lines are dropped; text before the first marker is
// ignored.
//
// Parameters:
//   - embed: Filesystem holding the template
//   - templateName: Name of the template file (without .md extension)
//   - data: Template data to populate placeholders
//
// Returns:
//   - []mcp.PromptMessage: Parsed MCP messages
//   - error: Any error during template execution or parsing
func parsePromptTemplate(embed templates.EmbedFS, templateName string, data promptTemplateData) ([]mcp.PromptMessage, error) {
	templateContent, err := embed.ReadFile(templateName + ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	tmpl, err := template.New(templateName).Parse(string(templateContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	var (
		messages       []mcp.PromptMessage
		currentRole    mcp.Role
		currentContent strings.Builder
	)
	flush := func() {
		if currentRole != "" && currentContent.Len() > 0 {
			messages = append(messages, mcp.NewPromptMessage(
				currentRole,
				mcp.NewTextContent(strings.TrimSpace(currentContent.String())),
			))
		}
		currentContent.Reset()
	}

	for line := range strings.SplitSeq(buf.String(), "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "### Assistant:"):
			flush()
			currentRole = mcp.RoleAssistant
			continue
		case strings.HasPrefix(trimmed, "### User:"):
			flush()
			currentRole = mcp.RoleUser
			continue
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			continue
		}

		if currentContent.Len() > 0 {
			currentContent.WriteByte('\n')
		}
		currentContent.WriteString(trimmed)
	}
	flush()

	return messages, nil
}

// newTrustPathReviewHandler returns the trust-path-review prompt handler.
//
// Expected arguments in request.Params.Arguments:
//   - certificate: Path to certificate file or base64-encoded certificate data
//   - truststore: Optional comma-separated keystore paths
func newTrustPathReviewHandler(embed templates.EmbedFS) PromptHandler {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		cert := request.Params.Arguments["certificate"]
		if cert == "" {
			return nil, errMissingCertificate
		}

		trustStore := request.Params.Arguments["truststore"]
		if trustStore == "" {
			trustStore = "the configured trust store"
		}

		messages, err := parsePromptTemplate(embed, "trust-path-review", promptTemplateData{
			Certificate: cert,
			TrustStore:  trustStore,
			ToolName:    toolValidateTrustChain,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to parse trust path review template: %w", err)
		}

		return mcp.NewGetPromptResult(
			"Trust Path Review",
			messages,
		), nil
	}
}
