package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/factview/internal/evaluate"
	"github.com/ppiankov/factview/internal/llm"
	"github.com/ppiankov/factview/internal/model"
	"github.com/ppiankov/factview/internal/present"
	"github.com/ppiankov/factview/internal/session"
	"go.uber.org/zap"
)

// Pipeline runs one-shot checks: submit, classify, present, optionally summarize
type Pipeline struct {
	evaluator  session.Evaluator
	builder    *present.Builder
	summarizer *llm.Summarizer // nil if disabled
	config     *model.Config
	logger     *zap.Logger
}

// NewPipeline creates a pipeline talking to the configured evaluation service
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewPipelineWithEvaluator(cfg, evaluate.NewClient(cfg, logger), logger)
}

// NewPipelineWithEvaluator creates a pipeline around an existing evaluator
func NewPipelineWithEvaluator(cfg *model.Config, evaluator session.Evaluator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			logger.Warn("LLM summaries disabled", zap.Error(err))
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		evaluator:  evaluator,
		builder:    present.NewBuilder(cfg.Citations.Cap),
		summarizer: summarizer,
		config:     cfg,
		logger:     logger.Named("pipeline"),
	}
}

// Check runs one full submission cycle for text.
// Service failures are reported in the report's view; only invalid input returns an error.
func (p *Pipeline) Check(ctx context.Context, text string) (*Report, error) {
	controller := session.NewController(p.evaluator, p.logger)

	if _, err := controller.SubmitAndWait(ctx, text); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	report := &Report{
		Text:      text,
		CheckedAt: time.Now().UTC(),
		Service:   p.config.API.BaseURL,
		View:      p.builder.Build(controller.Snapshot()),
	}

	// Summary runs after classification and never changes the view
	if p.summarizer != nil && p.summarizer.IsEnabled() && report.View.Phase == present.PhaseResult {
		summary, err := p.summarizer.GenerateSummary(ctx, report.View)
		if err != nil {
			p.logger.Warn("LLM summary generation failed", zap.Error(err))
		} else {
			report.LLM = summary
		}
	}

	return report, nil
}
