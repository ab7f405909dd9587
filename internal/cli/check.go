package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/factview/internal/llm"
	"github.com/ppiankov/factview/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outJSON    string
	outMD      string
	timeout    time.Duration
	noFooter   bool
	llmEnabled bool
	llmModel   string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <text>",
	Short: "Fact-check a text sample and print the verdict",
	Long: `Check submits one text sample (3 to 1000 characters) to the evaluation
service and prints the verdict: overall factuality, credibility, and
each detected claim with its citations.

Example:
  factview check "Jupiter is the smallest planet"
  factview check "The Eiffel Tower is in Rome" --json report.json --md report.md
  factview check "Water boils at 100C at sea level" --llm --llm-model gpt-4o-mini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "add an LLM-generated plain-language summary")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := requireAPI()
	if err != nil {
		return err
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if llmEnabled {
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("--llm requires OPENAI_API_KEY (or FACTVIEW_LLM_API_KEY) to be set")
		}
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictEvidence = true
	}

	text := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	logger.Debug("checking text", zap.Int("length", len(text)), zap.String("service", cfg.API.BaseURL))

	p := pipeline.NewPipeline(cfg, logger)
	report, err := p.Check(ctx, text)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	renderer.RenderSummary(os.Stdout, report)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ JSON report: %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", outMD)

		if md := llm.RenderSeparateMarkdown(report.LLM); md != "" {
			path := strings.TrimSuffix(outMD, ".md") + ".llm.md"
			if err := os.WriteFile(path, []byte(md), 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "✓ LLM summary: %s\n", path)
		}
	}

	if !report.Succeeded() {
		return fmt.Errorf("check failed: %s", report.View.Message)
	}
	return nil
}
