package present

import (
	"fmt"
	"strings"
)

// Markdown renders a view as a Markdown document
func Markdown(v View) string {
	var sb strings.Builder

	switch v.Phase {
	case PhaseIdle:
		sb.WriteString("_Enter a statement to fact-check._\n")
	case PhaseLoading:
		sb.WriteString("_Checking facts..._\n")
	case PhaseInvalid, PhaseFailed, PhaseMeaningless:
		fmt.Fprintf(&sb, "> **%s**\n", v.Message)
	case PhaseResult:
		writeResult(&sb, v.Result)
	}

	return sb.String()
}

func writeResult(sb *strings.Builder, r *ResultView) {
	if r == nil {
		return
	}

	sb.WriteString("| ")
	for _, s := range r.Stats {
		fmt.Fprintf(sb, "%s | ", s.Label)
	}
	sb.WriteString("\n|")
	for range r.Stats {
		sb.WriteString("---|")
	}
	sb.WriteString("\n| ")
	for _, s := range r.Stats {
		fmt.Fprintf(sb, "%d | ", s.Value)
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "**%s:** %s %s  \n", r.Factuality.Title, r.Factuality.Label, r.Factuality.Icon)
	fmt.Fprintf(sb, "**%s:** %s %s\n\n", r.Credibility.Title, r.Credibility.Label, r.Credibility.Icon)

	if len(r.DetectedClaims) > 0 {
		sb.WriteString("## Detected Claims\n\n")
		for i, c := range r.DetectedClaims {
			fmt.Fprintf(sb, "%d. %s\n", i+1, c)
		}
		sb.WriteString("\n")
	}

	if len(r.Claims) == 0 {
		return
	}

	sb.WriteString("## Fact Details\n\n")
	for _, c := range r.Claims {
		WriteClaim(sb, c)
	}
}

// WriteClaim renders one claim card
func WriteClaim(sb *strings.Builder, c ClaimView) {
	fmt.Fprintf(sb, "### %d. %s\n\n", c.ID, c.Claim)
	if c.Status.Label != "" {
		fmt.Fprintf(sb, "%s **%s**\n\n", c.Status.Icon, c.Status.Label)
	}
	if c.Reasoning != "" {
		fmt.Fprintf(sb, "**Reasoning**\n\n%s\n\n", c.Reasoning)
	}
	if c.Error != "" {
		fmt.Fprintf(sb, "**Error**\n\n%s\n\n", c.Error)
	}
	if c.Correction != "" {
		fmt.Fprintf(sb, "**Correction**\n\n%s\n\n", c.Correction)
	}

	if len(c.Citations) > 0 {
		sb.WriteString("**Citations**\n\n")
		WriteCitations(sb, c.Citations)
	}
	if c.Overflow {
		fmt.Fprintf(sb, "_Showing %d of %d citations. %s._\n\n", c.Shown, c.TotalSources, c.ShowAllLabel)
	}
}

// WriteCitations renders citation groups as nested lists
func WriteCitations(sb *strings.Builder, groups []CitationView) {
	for _, g := range groups {
		fmt.Fprintf(sb, "- %s\n", g.Question)
		for _, s := range g.Sources {
			label := s.Host
			if label == "" {
				label = s.URL
			}
			fmt.Fprintf(sb, "  - %s ([%s](%s))\n", truncate(s.Text, 160), label, s.URL)
		}
	}
	sb.WriteString("\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
