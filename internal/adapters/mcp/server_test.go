package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

type classifierFake struct {
	got string
	err error
}

func (f *classifierFake) Classify(_ context.Context, text string) (domain.Classification, error) {
	f.got = text
	if f.err != nil {
		return domain.Classification{}, f.err
	}
	return domain.Classification{CategoryID: 15, Category: "Java Developer"}, nil
}

type describerFake struct{}

func (describerFake) ModelInfo() domain.ModelInfo {
	return domain.ModelInfo{VectorizerDim: 7, ClassifierKind: "knn"}
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestHandleClassify(t *testing.T) {
	fake := &classifierFake{}
	tools := NewTools(fake, describerFake{})

	result, err := tools.HandleClassify(context.Background(), callRequest(ToolClassify, map[string]any{"text": "Java Spring Hibernate"}))
	if err != nil {
		t.Fatalf("HandleClassify() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if fake.got != "Java Spring Hibernate" {
		t.Fatalf("unexpected classifier input %q", fake.got)
	}

	var got domain.Classification
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CategoryID != 15 || got.Category != "Java Developer" {
		t.Fatalf("unexpected classification %+v", got)
	}
}

func TestHandleClassifyRequiresText(t *testing.T) {
	tools := NewTools(&classifierFake{}, describerFake{})

	result, err := tools.HandleClassify(context.Background(), callRequest(ToolClassify, map[string]any{}))
	if err != nil {
		t.Fatalf("HandleClassify() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error for missing text")
	}
}

func TestHandleClassifyReportsFailure(t *testing.T) {
	tools := NewTools(&classifierFake{err: errors.New("dimension mismatch")}, describerFake{})

	result, err := tools.HandleClassify(context.Background(), callRequest(ToolClassify, map[string]any{"text": "x"}))
	if err != nil {
		t.Fatalf("HandleClassify() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error")
	}
}

func TestHandleCategoriesAndModelInfo(t *testing.T) {
	tools := NewTools(&classifierFake{}, describerFake{})

	result, err := tools.HandleCategories(context.Background(), callRequest(ToolCategories, nil))
	if err != nil {
		t.Fatalf("HandleCategories() error = %v", err)
	}
	var categories struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &categories); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(categories.Categories) != 25 || categories.Categories[0].Label != "Advocate" {
		t.Fatalf("unexpected categories %+v", categories.Categories)
	}

	result, err = tools.HandleModelInfo(context.Background(), callRequest(ToolModelInfo, nil))
	if err != nil {
		t.Fatalf("HandleModelInfo() error = %v", err)
	}
	var info domain.ModelInfo
	if err := json.Unmarshal([]byte(resultText(t, result)), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.ClassifierKind != "knn" {
		t.Fatalf("unexpected model info %+v", info)
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewTools(&classifierFake{}, describerFake{}).NewServer()
	tools := s.ListTools()
	for _, name := range []string{ToolClassify, ToolCategories, ToolModelInfo} {
		if _, ok := tools[name]; !ok {
			t.Fatalf("expected tool %s to be registered", name)
		}
	}
}
