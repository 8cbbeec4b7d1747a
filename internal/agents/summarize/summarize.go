// Package summarize implements the summarize agent: extractive text
// summarization formatted as structured markdown (spec §4.2 DOMAIN STACK
// table).
//
// Grounded on original_source/src/redaptive/agents/content/summarization.py,
// whose summarize_text tool this package ports; the original's Google Gemini
// call is replaced with a deterministic extractive summarizer (sentence
// selection up to max_length words) whose markdown output is parsed with
// github.com/yuin/goldmark into structured sections, following the AST-walk
// idiom of nevindra-oasis's frontend/telegram/markdown.go (there used to
// render markdown to Telegram HTML; here used to walk the same AST into
// plain-text sections instead of rendering them).
package summarize

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"context"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/toolerrors"
)

// Name is the registry name this agent is installed under.
const Name = "summarize"

const defaultMaxLength = 150

// Agent produces extractive summaries. It has no external dependency.
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

// Init registers summarize_text.
func (a *Agent) Init(context.Context) error {
	a.Register(agent.ToolDescriptor{
		Name:           "summarize_text",
		Description:    "Summarize text content into structured markdown sections",
		DependencyFree: true,
		Handler:        a.summarizeText,
	})
	a.SetState(agent.StateReady)
	return nil
}

func (a *Agent) summarizeText(_ context.Context, params map[string]any) (agent.Output, error) {
	input, _ := params["text"].(string)
	if strings.TrimSpace(input) == "" {
		return nil, toolerrors.New(toolerrors.KindInvalidArgument, "summarize: text is required")
	}
	maxLength := asIntOr(params["max_length"], defaultMaxLength)
	style, _ := params["style"].(string)
	if style == "" {
		style = "concise"
	}

	sentences := splitSentences(input)
	summarySentences := selectSentences(sentences, maxLength)
	markdown := renderMarkdown(summarySentences, style)

	sections := parseSections(markdown)

	summaryText := strings.Join(summarySentences, " ")
	return agent.Output{
		"original_length": len(strings.Fields(input)),
		"summary_length":  len(strings.Fields(summaryText)),
		"summary":         summaryText,
		"style":           style,
		"max_length":      maxLength,
		"sections":        sections,
	}, nil
}

func asIntOr(v any, def int) int {
	switch vv := v.(type) {
	case int:
		return vv
	case float64:
		return int(vv)
	default:
		return def
	}
}

// splitSentences splits on '.', '!', '?' boundaries, trimming whitespace.
// A naive but deterministic approximation of sentence segmentation.
func splitSentences(s string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range s {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			trimmed := strings.TrimSpace(current.String())
			if trimmed != "" {
				sentences = append(sentences, trimmed)
			}
			current.Reset()
		}
	}
	if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
		sentences = append(sentences, trimmed)
	}
	return sentences
}

// selectSentences greedily takes leading sentences until adding the next one
// would exceed maxLength words.
func selectSentences(sentences []string, maxLength int) []string {
	var selected []string
	wordCount := 0
	for _, sentence := range sentences {
		words := len(strings.Fields(sentence))
		if wordCount > 0 && wordCount+words > maxLength {
			break
		}
		selected = append(selected, sentence)
		wordCount += words
	}
	if len(selected) == 0 && len(sentences) > 0 {
		selected = sentences[:1]
	}
	return selected
}

func renderMarkdown(sentences []string, style string) string {
	var b strings.Builder
	b.WriteString("## Summary\n\n")
	switch style {
	case "bullet_points":
		for _, s := range sentences {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	default:
		b.WriteString(strings.Join(sentences, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// section is one heading-delimited block of the generated markdown,
// collapsed to plain text.
type section struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

// parseSections parses markdown with goldmark and walks the resulting AST
// into plain-text sections, one per heading.
func parseSections(markdown string) []agent.Output {
	source := []byte(markdown)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var sections []section
	var current *section

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			sections = append(sections, section{Heading: nodeText(n, source)})
			current = &sections[len(sections)-1]
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph:
			if current == nil {
				sections = append(sections, section{Heading: ""})
				current = &sections[len(sections)-1]
			}
			current.Lines = append(current.Lines, nodeText(n, source))
			return ast.WalkSkipChildren, nil
		case ast.KindListItem:
			if current == nil {
				sections = append(sections, section{Heading: ""})
				current = &sections[len(sections)-1]
			}
			current.Lines = append(current.Lines, nodeText(n, source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	out := make([]agent.Output, 0, len(sections))
	for _, s := range sections {
		out = append(out, agent.Output{
			"heading": s.Heading,
			"lines":   s.Lines,
		})
	}
	return out
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			continue
		}
		b.WriteString(nodeText(c, source))
	}
	return strings.TrimSpace(b.String())
}
