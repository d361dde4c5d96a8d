package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/commitlint/internal/application"
)

// NewCommitlintMCPServer creates an MCP server with the commitlint tools and
// resources registered. projectPath is the repository whose configuration
// and history the tools use.
func NewCommitlintMCPServer(projectPath, version string, svc *application.LintService) *server.MCPServer {
	s := server.NewMCPServer(
		"commitlint",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
