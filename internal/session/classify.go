package session

import (
	"github.com/ppiankov/factview/internal/evaluate"
	"github.com/ppiankov/factview/internal/model"
)

// Classify turns the outcome of an evaluation call into a terminal state
func Classify(verdict *model.Verdict, err error) State {
	if err != nil {
		return Failed{Message: evaluate.FailureMessage(err), Err: err}
	}
	if verdict == nil {
		return Failed{Message: evaluate.GenericFailureMessage}
	}
	if IsMeaningless(verdict) {
		return SucceededMeaningless{}
	}
	return Succeeded{Verdict: verdict}
}

// IsMeaningless reports whether the verdict is the service's sentinel for
// input that contains no checkable factual statement: every counter and
// the credibility are zero, no claims were found, and the overall
// factuality is true.
func IsMeaningless(v *model.Verdict) bool {
	return v.ConflictedClaims == 0 &&
		v.ControversialClaims == 0 &&
		v.EvidenceCount == 0 &&
		v.OverallCredibility == 0 &&
		v.SupportedClaims == 0 &&
		v.UnverifiedClaims == 0 &&
		len(v.DetailedClaims) == 0 &&
		len(v.DetectedClaims) == 0 &&
		v.OverallFactuality == model.FactualityTrue
}
