// Package document implements the document-processing agent: plain-text
// extraction from energy-industry PDFs (utility bills, ESG reports, energy
// audits) (spec §4.2 DOMAIN STACK table).
//
// Grounded on original_source/src/redaptive/agents/content/document_processing.py,
// whose extract_text tool this package ports; the original's AWS
// Textract/S3 dependency is replaced with github.com/ledongthuc/pdf local
// extraction (carried from nevindra-oasis's ingest/extractor_pdf.go), since
// SPEC_FULL.md scopes this agent to local PDF text extraction and does not
// carry forward the AWS Textract/S3 surface (utility-bill/ESG/certificate
// parsing, table/form extraction) the original agent also exposed.
package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/toolerrors"
)

// Name is the registry name this agent is installed under.
const Name = "document-processing"

// Agent extracts text from PDF documents. It has no external service
// dependency, so it is never Degraded.
type Agent struct {
	*agent.Base
}

// New constructs an uninitialized Agent.
func New() *Agent {
	return &Agent{Base: agent.NewBase(Name)}
}

// Factory builds an agent.Factory suitable for registry.Register.
func Factory(ctx context.Context) (agent.Instance, error) {
	a := New()
	if err := a.Init(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Init registers extract_text.
func (a *Agent) Init(context.Context) error {
	a.Register(agent.ToolDescriptor{
		Name:           "extract_text",
		Description:    "Extract text from a PDF document",
		DependencyFree: true,
		Handler:        a.extractText,
	})
	a.SetState(agent.StateReady)
	return nil
}

func (a *Agent) extractText(_ context.Context, params map[string]any) (agent.Output, error) {
	filePath, _ := params["file_path"].(string)
	if filePath == "" {
		return nil, toolerrors.New(toolerrors.KindInvalidArgument, "document-processing: file_path is required")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return agent.Output{
			"status": "error",
			"error":  fmt.Sprintf("file not found: %s", filePath),
		}, nil
	}

	text, pageCount, err := extractPDFText(content)
	if err != nil {
		return agent.Output{
			"status": "error",
			"error":  fmt.Sprintf("failed to extract text: %v", err),
		}, nil
	}

	return agent.Output{
		"status":       "success",
		"file_path":    filePath,
		"full_text":    text,
		"page_count":   pageCount,
		"total_chars":  len(text),
	}, nil
}

func extractPDFText(content []byte) (string, int, error) {
	if len(content) == 0 {
		return "", 0, fmt.Errorf("empty document content")
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}

	var text strings.Builder
	pages := 0
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(pageText)
		pages++
	}
	return strings.TrimSpace(text.String()), pages, nil
}
