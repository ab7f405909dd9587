// Package validate holds the input grammar for submissions and the
// shape checks applied to decoded service responses.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ppiankov/factview/internal/model"
)

// Text length bounds, in characters
const (
	MinTextLength = 3
	MaxTextLength = 1000
)

// FieldError is a validation failure tied to one input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *FieldError) Error() string {
	return e.Message
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		instance = v
	})
	return instance
}

// Request validates the text of a submission.
// The returned error is a *FieldError with a user-facing message.
func Request(text string) error {
	req := model.NewEvaluationRequest(text)
	err := get().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate request: %w", err)
	}
	return &FieldError{Field: "text", Message: textMessage(fieldErrs[0])}
}

func textMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Text must be at least %d characters", MinTextLength)
	case "max":
		return fmt.Sprintf("Text must be at most %d characters", MaxTextLength)
	default:
		return "Text is required"
	}
}

// requiredVerdictKeys are always present in a verdict body; the claim lists may be absent
var requiredVerdictKeys = []string{
	"evidence_count",
	"supported_claims",
	"conflicted_claims",
	"controversial_claims",
	"unverified_claims",
	"overall_factuality",
	"overall_credibility",
}

// VerdictShape checks that a raw response object carries the verdict keys,
// so an unrelated object such as an error envelope is not decoded as an empty verdict.
func VerdictShape(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("expected a JSON object")
	}
	for _, key := range requiredVerdictKeys {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("missing field %s", key)
		}
	}
	return nil
}

// Verdict checks a decoded response for values outside the documented shape
func Verdict(v *model.Verdict) error {
	if v == nil {
		return errors.New("empty verdict")
	}
	if err := get().Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("field %s failed %s=%s (value %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return err
	}

	seen := make(map[int]bool, len(v.DetailedClaims))
	for _, c := range v.DetailedClaims {
		if seen[c.ID] {
			return fmt.Errorf("duplicate claim id %d", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
