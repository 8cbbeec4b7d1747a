package document_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/agents/document"
)

func TestExtractTextMissingFilePathIsInvalidArgument(t *testing.T) {
	a := document.New()
	require.NoError(t, a.Init(context.Background()))

	_, err := a.Invoke(context.Background(), "extract_text", map[string]any{})
	require.Error(t, err)
}

func TestExtractTextReportsMissingFile(t *testing.T) {
	a := document.New()
	require.NoError(t, a.Init(context.Background()))

	out, err := a.Invoke(context.Background(), "extract_text", map[string]any{
		"file_path": "/tmp/does-not-exist-agentcore.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", out["status"])
}

func TestAgentStartsReady(t *testing.T) {
	a := document.New()
	require.NoError(t, a.Init(context.Background()))
	assert.Equal(t, agent.StateReady, a.State())
}
