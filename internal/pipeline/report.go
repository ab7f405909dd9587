package pipeline

import (
	"time"

	"github.com/ppiankov/factview/internal/llm"
	"github.com/ppiankov/factview/internal/present"
)

// Report is the persisted output of one check
type Report struct {
	Text      string       `json:"text"`
	CheckedAt time.Time    `json:"checked_at"`
	Service   string       `json:"service"`
	View      present.View `json:"view"`
	LLM       *llm.Summary `json:"llm,omitempty"` // never affects the verdict
}

// Succeeded reports whether the check produced a usable answer
func (r *Report) Succeeded() bool {
	return r.View.Phase == present.PhaseResult || r.View.Phase == present.PhaseMeaningless
}
