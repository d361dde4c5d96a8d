package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/commitlint/internal/adapters/outbound/config"
	"github.com/abdidvp/commitlint/internal/application"
)

const (
	configURI     = "commitlint://config"
	configTOMLURI = "commitlint://config.toml"
)

// registerResources registers all commitlint MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc *application.LintService) {
	// 1. commitlint://config - effective configuration as JSON
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective commitlint configuration for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, svc),
	)

	// 2. commitlint://config.toml - same configuration in file format
	s.AddResource(
		mcplib.NewResource(
			configTOMLURI,
			"Configuration (TOML)",
			mcplib.WithResourceDescription("Effective commitlint configuration rendered as commitlint.toml"),
			mcplib.WithMIMEType("application/toml"),
		),
		handleConfigTOMLResource(projectPath, svc),
	)
}

func handleConfigResource(projectPath string, svc *application.LintService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.EffectiveConfig(application.Workspace{Dir: projectPath})
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleConfigTOMLResource(projectPath string, svc *application.LintService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.EffectiveConfig(application.Workspace{Dir: projectPath})
		if err != nil {
			return nil, err
		}

		data, err := config.EncodeTOML(cfg)
		if err != nil {
			return nil, err
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configTOMLURI,
				MIMEType: "application/toml",
				Text:     string(data),
			},
		}, nil
	}
}
