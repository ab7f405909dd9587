// Package evaluate is the client for the external fact-checking service.
package evaluate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/factview/internal/model"
	"github.com/ppiankov/factview/internal/util"
	"github.com/ppiankov/factview/internal/validate"
	"go.uber.org/zap"
)

const (
	evaluatePath   = "/evaluate-response"
	componentsPath = "/available-components"
)

// Client submits texts to the evaluation service.
// It issues exactly one request per call and never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBytes   int64
	logger     *zap.Logger
}

// NewClient creates a client from configuration
func NewClient(cfg *model.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := cfg.API.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = model.DefaultConfig().API.MaxBodyBytes
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
		},
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  maxBytes,
		logger:    logger.Named("evaluate"),
	}
}

// Evaluate submits text for fact-checking and decodes the verdict.
// Errors are *StatusError, *TransportError or *MalformedResponseError.
func (c *Client) Evaluate(ctx context.Context, text string) (*model.Verdict, error) {
	body, err := json.Marshal(model.NewEvaluationRequest(text))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	start := time.Now()
	data, err := c.do(ctx, http.MethodPost, evaluatePath, body)
	if err != nil {
		c.logger.Warn("evaluation failed",
			zap.Int("text_len", len(text)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &MalformedResponseError{Err: fmt.Errorf("expected a JSON object")}
	}

	if err := validate.VerdictShape(data); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	var verdict model.Verdict
	if err := json.Unmarshal(data, &verdict); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if err := validate.Verdict(&verdict); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	c.logger.Debug("evaluation complete",
		zap.Int("claims", len(verdict.DetailedClaims)),
		zap.Float64("credibility", verdict.OverallCredibility),
		zap.Duration("elapsed", time.Since(start)))

	return &verdict, nil
}

// Components lists the pipeline stages the service supports
func (c *Client) Components(ctx context.Context) (*model.Components, error) {
	data, err := c.do(ctx, http.MethodGet, componentsPath, nil)
	if err != nil {
		return nil, err
	}

	var components model.Components
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return &components, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	// Read one byte past the limit to detect truncation
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(data)) > c.maxBytes {
		return nil, &MalformedResponseError{Err: fmt.Errorf("response exceeds %d bytes", c.maxBytes)}
	}

	return data, nil
}
