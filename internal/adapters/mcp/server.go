package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/core/ports"
)

const (
	ServerName    = "resume-screening"
	ServerVersion = "1.0.0"

	ToolClassify   = "classify_resume_text"
	ToolCategories = "list_resume_categories"
	ToolModelInfo  = "describe_model"
)

// Tools exposes the classifier to MCP clients. Documents are passed as
// already-decoded text; file handling stays with the HTTP API.
type Tools struct {
	classifier ports.ResumeClassifier
	describer  ports.ModelDescriber
}

func NewTools(classifier ports.ResumeClassifier, describer ports.ModelDescriber) *Tools {
	return &Tools{classifier: classifier, describer: describer}
}

func (t *Tools) NewServer() *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool(ToolClassify,
		mcp.WithDescription("Predicts the job category of a resume from its plain text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Resume text, already decoded.")),
	), t.HandleClassify)

	s.AddTool(mcp.NewTool(ToolCategories,
		mcp.WithDescription("Lists every job category the classifier can predict, ordered by id."),
	), t.HandleCategories)

	s.AddTool(mcp.NewTool(ToolModelInfo,
		mcp.WithDescription("Describes the loaded vectorizer and classifier."),
	), t.HandleModelInfo)

	return s
}

func (t *Tools) HandleClassify(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.classifier.Classify(ctx, text)
	if err != nil {
		slog.Warn("mcp_classify_failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (t *Tools) HandleCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{"categories": domain.Categories()})
}

func (t *Tools) HandleModelInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.describer.ModelInfo())
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
