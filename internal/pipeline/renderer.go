package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/factview/internal/present"
)

// Renderer writes reports as JSON, Markdown and terminal summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown renders the full report document
func (r *Renderer) Markdown(report *Report) string {
	var sb strings.Builder

	sb.WriteString("# Fact Check\n\n")
	for _, line := range strings.Split(strings.TrimSpace(report.Text), "\n") {
		fmt.Fprintf(&sb, "> %s\n", line)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "_Checked %s_\n\n", report.CheckedAt.Format("2006-01-02 15:04 MST"))

	sb.WriteString(present.Markdown(report.View))

	if report.LLM != nil && report.LLM.Text != "" {
		sb.WriteString("\n## Summary (LLM-generated)\n\n")
		sb.WriteString(report.LLM.Text)
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "_Generated by %s/%s. The summary does not affect the verdict above._\n", report.LLM.Provider, report.LLM.Model)
	}

	if r.includeFooter {
		sb.WriteString("\n---\n\n")
		sb.WriteString("_factview displays the verdict of an external fact-checking service. ")
		sb.WriteString("It does not verify facts itself._\n")
	}

	return sb.String()
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(w io.Writer, report *Report) {
	v := report.View

	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Fact Check")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	switch v.Phase {
	case present.PhaseResult:
		res := v.Result
		fmt.Fprintf(w, "  %s: %s %s\n", res.Factuality.Title, res.Factuality.Label, res.Factuality.Icon)
		fmt.Fprintf(w, "  %s: %s %s\n", res.Credibility.Title, res.Credibility.Label, res.Credibility.Icon)
		fmt.Fprintln(w)
		for _, s := range res.Stats {
			fmt.Fprintf(w, "  %-22s %d\n", s.Label+":", s.Value)
		}
		fmt.Fprintln(w)
		for _, c := range res.Claims {
			fmt.Fprintf(w, "  %s %d. %s\n", c.Status.Icon, c.ID, c.Claim)
			if c.Correction != "" {
				fmt.Fprintf(w, "      Correction: %s\n", c.Correction)
			}
			if c.TotalSources > 0 {
				fmt.Fprintf(w, "      Citations: %d of %d shown\n", c.Shown, c.TotalSources)
			}
		}
	default:
		fmt.Fprintf(w, "  %s\n", v.Message)
	}

	fmt.Fprintln(w)
}
