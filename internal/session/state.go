package session

import "github.com/ppiankov/factview/internal/model"

// Kind names a lifecycle state
type Kind string

const (
	KindIdle        Kind = "idle"
	KindSubmitting  Kind = "submitting"
	KindSucceeded   Kind = "succeeded"
	KindMeaningless Kind = "meaningless"
	KindFailed      Kind = "failed"
)

// State is the lifecycle of one submission cycle.
// It is one of Idle, Submitting, Succeeded, SucceededMeaningless or Failed.
type State interface {
	Kind() Kind
	sealed()
}

// Idle means nothing has been submitted yet
type Idle struct{}

// Submitting means a request is in flight
type Submitting struct {
	Seq uint64
}

// Succeeded holds a meaningful verdict
type Succeeded struct {
	Verdict *model.Verdict
}

// SucceededMeaningless means the service found nothing checkable in the text
type SucceededMeaningless struct{}

// Failed holds the user-facing failure message and its cause
type Failed struct {
	Message string
	Err     error
}

func (Idle) Kind() Kind                 { return KindIdle }
func (Submitting) Kind() Kind           { return KindSubmitting }
func (Succeeded) Kind() Kind            { return KindSucceeded }
func (SucceededMeaningless) Kind() Kind { return KindMeaningless }
func (Failed) Kind() Kind               { return KindFailed }

func (Idle) sealed()                 {}
func (Submitting) sealed()           {}
func (Succeeded) sealed()            {}
func (SucceededMeaningless) sealed() {}
func (Failed) sealed()               {}
