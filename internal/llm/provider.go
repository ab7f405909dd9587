package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/factview/internal/present"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of a result view
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Result is the classified verdict to summarize
	Result present.ResultView

	// EvidenceURLs is the allowlist of URLs the LLM may cite
	EvidenceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	Summary    string
	CitedURLs  []string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	Model   string
	APIKey  string
	BaseURL string
	Timeout int // seconds

	// StrictEvidence rejects summaries citing URLs outside the allowlist
	StrictEvidence bool

	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:        30,
		StrictEvidence: true,
		MaxTokens:      600,
	}
}

// maxPromptURLs bounds the allowlist printed into the prompt
const maxPromptURLs = 20

// BuildPrompt constructs the default summarization prompt
func BuildPrompt(result present.ResultView, evidenceURLs []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are explaining the verdict of an automated fact-checking service to a general reader. The verdict below is final: do NOT re-judge any claim or contradict its labels.

RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT cite any other source.
3. If a claim has no citations, say that no supporting sources were shown.
4. Describe what the service concluded, not what you believe.

Verdict:
- %s: %s
- %s: %s
`, joinURLs(evidenceURLs), result.Factuality.Title, result.Factuality.Label, result.Credibility.Title, result.Credibility.Label)

	for _, s := range result.Stats {
		fmt.Fprintf(&sb, "- %s: %d\n", s.Label, s.Value)
	}

	if len(result.Claims) > 0 {
		sb.WriteString("\nClaims:\n")
		for _, c := range result.Claims {
			fmt.Fprintf(&sb, "%d. [%s] %s\n", c.ID, c.Status.Label, c.Claim)
			if c.Reasoning != "" {
				fmt.Fprintf(&sb, "   Reasoning: %s\n", c.Reasoning)
			}
			if c.Correction != "" {
				fmt.Fprintf(&sb, "   Correction: %s\n", c.Correction)
			}
		}
	}

	sb.WriteString("\nProvide a 3-4 sentence summary of the verdict.")

	return sb.String()
}

// EvidenceURLs collects the distinct source URLs shown in a result view
func EvidenceURLs(result present.ResultView) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, c := range result.Claims {
		for _, group := range c.Citations {
			for _, s := range group.Sources {
				if s.URL == "" || seen[s.URL] {
					continue
				}
				seen[s.URL] = true
				urls = append(urls, s.URL)
			}
		}
	}
	return urls
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No evidence URLs available)"
	}
	var sb strings.Builder
	for i, u := range urls {
		if i >= maxPromptURLs {
			fmt.Fprintf(&sb, "\n... and %d more URLs", len(urls)-maxPromptURLs)
			break
		}
		fmt.Fprintf(&sb, "\n- %s", u)
	}
	return sb.String()
}
