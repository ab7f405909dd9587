// Package session owns the submission lifecycle of one user session.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ppiankov/factview/internal/model"
	"github.com/ppiankov/factview/internal/validate"
	"go.uber.org/zap"
)

// Evaluator is the external fact-checking collaborator
type Evaluator interface {
	Evaluate(ctx context.Context, text string) (*model.Verdict, error)
}

// ValidationError is a field-scoped input error; it never reaches the network
type ValidationError = validate.FieldError

// Ticket identifies one accepted submission
type Ticket struct {
	Seq     uint64
	Request model.EvaluationRequest
}

// Outcome is the raw result of an evaluation call
type Outcome struct {
	Verdict *model.Verdict
	Err     error
}

// Snapshot is a consistent copy of the controller's cells
type Snapshot struct {
	State      State
	Validation *ValidationError
	Text       string // text of the latest accepted submission
}

// Controller drives the lifecycle state machine.
// Every accepted submission gets a new sequence number and only the
// outcome of the latest one is applied, so a slow earlier response can
// never overwrite a newer result.
type Controller struct {
	mu         sync.Mutex
	evaluator  Evaluator
	logger     *zap.Logger
	state      State
	validation *ValidationError
	seq        uint64
	text       string
}

// NewController creates a controller in the Idle state
func NewController(evaluator Evaluator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		evaluator: evaluator,
		logger:    logger.Named("session"),
		state:     Idle{},
	}
}

// Submit validates text and, if accepted, moves to Submitting.
// Invalid text returns a *ValidationError and leaves the state untouched.
func (c *Controller) Submit(text string) (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validate.Request(text); err != nil {
		var fieldErr *validate.FieldError
		if errors.As(err, &fieldErr) {
			c.validation = fieldErr
		}
		c.logger.Debug("submission rejected", zap.Error(err))
		return Ticket{}, err
	}

	c.validation = nil
	c.seq++
	c.text = text
	c.state = Submitting{Seq: c.seq}

	c.logger.Debug("submission accepted", zap.Uint64("seq", c.seq), zap.Int("text_len", len(text)))
	return Ticket{Seq: c.seq, Request: model.NewEvaluationRequest(text)}, nil
}

// Execute performs the single outbound call for a ticket.
// It does not touch controller state, so it can run off the UI loop.
func (c *Controller) Execute(ctx context.Context, t Ticket) Outcome {
	verdict, err := c.evaluator.Evaluate(ctx, t.Request.Text)
	return Outcome{Verdict: verdict, Err: err}
}

// Resolve applies an outcome if its ticket is the latest submission.
// Applying it also clears the validation cell, so an invalid edit made
// while the request was in flight does not hide the new result.
// It returns false when the outcome was stale and dropped.
func (c *Controller) Resolve(t Ticket, o Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.Seq != c.seq {
		c.logger.Info("dropping stale evaluation result",
			zap.Uint64("seq", t.Seq),
			zap.Uint64("latest", c.seq))
		return false
	}

	c.state = Classify(o.Verdict, o.Err)
	c.validation = nil
	if o.Err != nil {
		c.logger.Warn("evaluation failed", zap.Uint64("seq", t.Seq), zap.Error(o.Err))
	} else {
		c.logger.Debug("evaluation resolved", zap.Uint64("seq", t.Seq), zap.String("state", string(c.state.Kind())))
	}
	return true
}

// SubmitAndWait runs a full submission cycle and returns the resulting state
func (c *Controller) SubmitAndWait(ctx context.Context, text string) (State, error) {
	ticket, err := c.Submit(text)
	if err != nil {
		return c.State(), err
	}
	c.Resolve(ticket, c.Execute(ctx, ticket))
	return c.State(), nil
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the lifecycle state and validation cell together
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Validation: c.validation, Text: c.text}
}

// ClearValidation drops the current validation error, e.g. when the user edits the input
func (c *Controller) ClearValidation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validation = nil
}
