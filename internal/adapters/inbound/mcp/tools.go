package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/commitlint/internal/application"
)

// registerTools registers all commitlint MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc *application.LintService) {
	// 1. commitlint_check
	s.AddTool(
		mcplib.NewTool("commitlint_check",
			mcplib.WithDescription("Lint a commit message and return the violations as JSON"),
			mcplib.WithString("message",
				mcplib.Required(),
				mcplib.Description("Full commit message: header, optional body and footer"),
			),
			mcplib.WithString("config", mcplib.Description("Path to a configuration file (defaults to discovery in the project)")),
		),
		handleCheck(projectPath, svc),
	)

	// 2. commitlint_check_commit
	s.AddTool(
		mcplib.NewTool("commitlint_check_commit",
			mcplib.WithDescription("Lint the message of an existing commit of the project repository"),
			mcplib.WithString("rev", mcplib.Description("Revision to check (default: HEAD)")),
			mcplib.WithString("config", mcplib.Description("Path to a configuration file (defaults to discovery in the project)")),
		),
		handleCheckCommit(projectPath, svc),
	)

	// 3. commitlint_check_range
	s.AddTool(
		mcplib.NewTool("commitlint_check_range",
			mcplib.WithDescription("Lint every commit in a revision range, newest first"),
			mcplib.WithString("from", mcplib.Description("Exclusive start revision (default: root commit)")),
			mcplib.WithString("to", mcplib.Description("Inclusive end revision (default: HEAD)")),
			mcplib.WithNumber("last", mcplib.Description("Check at most this many commits")),
			mcplib.WithString("config", mcplib.Description("Path to a configuration file (defaults to discovery in the project)")),
		),
		handleCheckRange(projectPath, svc),
	)

	// 4. commitlint_config
	s.AddTool(
		mcplib.NewTool("commitlint_config",
			mcplib.WithDescription("Returns the effective commitlint configuration for the project"),
		),
		handleConfig(projectPath, svc),
	)
}

func workspace(projectPath string, request mcplib.CallToolRequest) application.Workspace {
	return application.Workspace{Dir: projectPath, ConfigFile: request.GetString("config", "")}
}

func handleCheck(projectPath string, svc *application.LintService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := svc.LintMessage(workspace(projectPath, request), message)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleCheckCommit(projectPath string, svc *application.LintService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rev := request.GetString("rev", "HEAD")

		report, err := svc.LintRevision(workspace(projectPath, request), rev)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheckRange(projectPath string, svc *application.LintService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		from := request.GetString("from", "")
		to := request.GetString("to", "HEAD")
		last := request.GetInt("last", 0)

		reports, err := svc.LintRange(ctx, workspace(projectPath, request), from, to, last)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(reports)
	}
}

func handleConfig(projectPath string, svc *application.LintService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := svc.EffectiveConfig(application.Workspace{Dir: projectPath})
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(cfg)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
