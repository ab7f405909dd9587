package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/factview/internal/pipeline"
)

// Checker runs one fact check
type Checker interface {
	Check(ctx context.Context, text string) (*pipeline.Report, error)
}

// CheckJob is one text of a batch
type CheckJob struct {
	Index   int
	Text    string
	Checker Checker
	Limiter *Limiter // nil disables limiting
	Key     string
}

// Execute waits for rate limit clearance and runs the check
func (j *CheckJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.WaitKey(ctx, j.Key); err != nil {
			return &CheckResult{Index: j.Index, Text: j.Text, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	report, err := j.Checker.Check(ctx, j.Text)
	return &CheckResult{
		Index:  j.Index,
		Text:   j.Text,
		Report: report,
		Error:  err,
	}
}

// CheckResult is the outcome of one batch entry
type CheckResult struct {
	Index  int
	Text   string
	Report *pipeline.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks many texts concurrently against one service
type BatchProcessor struct {
	checker     Checker
	concurrency int
	limiter     *Limiter
	key         string
}

// NewBatchProcessor creates a new batch processor. A non-positive rps
// disables rate limiting; all requests share the apiURL host's bucket.
func NewBatchProcessor(checker Checker, concurrency int, rps float64, burst int, apiURL string) *BatchProcessor {
	b := &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
	if rps > 0 {
		b.limiter = NewLimiter(rps, burst)
		if host, err := extractDomain(apiURL); err == nil {
			b.key = host
		}
	}
	return b
}

// ProcessTexts checks texts concurrently. Results keep input order.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string) []*CheckResult {
	if len(texts) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, text := range texts {
			job := &CheckJob{
				Index:   i,
				Text:    text,
				Checker: b.checker,
				Limiter: b.limiter,
				Key:     b.key,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	results := make([]*CheckResult, 0, len(texts))
	for r := range pool.Results() {
		results = append(results, r.(*CheckResult))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// ProcessFile reads texts from a file and checks them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*CheckResult, error) {
	texts, err := ReadTextsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read texts: %w", err)
	}

	return b.ProcessTexts(ctx, texts), nil
}

// ReadTextsFromFile reads texts from a file (one per line)
func ReadTextsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			texts = append(texts, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return texts, nil
}
