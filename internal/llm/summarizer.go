package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/factview/internal/present"
)

// Summary is an LLM-generated explanation stored beside the verdict
type Summary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider"`
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	Text           string   `json:"text,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Summarizer produces optional summaries; a nil provider disables it
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary summarizes a result view. Provider failures are reported
// as warnings on the returned summary, never as errors.
func (s *Summarizer) GenerateSummary(ctx context.Context, view present.View) (*Summary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}
	if view.Phase != present.PhaseResult || view.Result == nil {
		return nil, fmt.Errorf("no result to summarize (phase %s)", view.Phase)
	}

	summary := &Summary{
		Enabled:        true,
		Provider:       s.provider.Name(),
		Model:          s.config.Model,
		StrictEvidence: s.config.StrictEvidence,
	}

	if !s.provider.IsAvailable(ctx) {
		summary.Enabled = false
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("LLM provider %s is not available", summary.Provider))
		return summary, nil
	}

	urls := EvidenceURLs(*view.Result)
	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:       *view.Result,
		EvidenceURLs: urls,
		Model:        s.config.Model,
		MaxTokens:    s.config.MaxTokens,
	})
	if err != nil {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Summary generation failed: %v", err))
		return summary, nil
	}

	summary.Text = resp.Summary
	if resp.Model != "" {
		summary.Model = resp.Model
	}
	summary.Warnings = append(summary.Warnings,
		fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
		fmt.Sprintf("Verified %d citations against %d shown sources", len(resp.CitedURLs), len(urls)),
	)

	return summary, nil
}

// RenderSeparateMarkdown renders a summary as its own document
func RenderSeparateMarkdown(summary *Summary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("# LLM Summary\n\n")
	sb.WriteString("> **GENERATED CONTENT.** The verdict and its labels were determined independently by the fact-checking service; this text only restates them.\n\n")
	fmt.Fprintf(&sb, "- **Provider:** %s\n", summary.Provider)
	if summary.Model != "" {
		fmt.Fprintf(&sb, "- **Model:** %s\n", summary.Model)
	}
	fmt.Fprintf(&sb, "- **Strict Evidence Mode:** %t\n\n", summary.StrictEvidence)

	if summary.Text == "" {
		sb.WriteString("_No summary generated._\n")
	} else {
		sb.WriteString(summary.Text)
		sb.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	return sb.String()
}
