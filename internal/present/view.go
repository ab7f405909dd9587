// Package present composes lifecycle state, classifications and citation
// windows into the immutable structure the renderers consume.
package present

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/ppiankov/factview/internal/citation"
	"github.com/ppiankov/factview/internal/classify"
	"github.com/ppiankov/factview/internal/model"
	"github.com/ppiankov/factview/internal/session"
)

// MeaninglessMessage is shown when the service found nothing checkable
const MeaninglessMessage = "Sorry, we couldn't understand that. Please enter a factual statement to check."

// Phase is the single thing a view shows
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseLoading     Phase = "loading"
	PhaseInvalid     Phase = "invalid"
	PhaseFailed      Phase = "failed"
	PhaseMeaningless Phase = "meaningless"
	PhaseResult      Phase = "result"
)

// View is everything a renderer needs. Exactly one of Message or Result is
// meaningful, selected by Phase.
type View struct {
	Phase   Phase       `json:"phase"`
	Text    string      `json:"text,omitempty"`
	Message string      `json:"message,omitempty"`
	Result  *ResultView `json:"result,omitempty"`
}

// ResultView is the rendered verdict
type ResultView struct {
	Stats          []Stat      `json:"stats"`
	Factuality     Badge       `json:"factuality"`
	Credibility    Badge       `json:"credibility"`
	DetectedClaims []string    `json:"detected_claims"`
	Claims         []ClaimView `json:"claims"`
}

// Stat is one counter tile
type Stat struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Badge is a labelled, classified value
type Badge struct {
	Title   string           `json:"title"`
	Label   string           `json:"label"`
	Variant classify.Variant `json:"variant"`
	Icon    string           `json:"icon"`
	Class   string           `json:"class"`
	Tier    classify.Tier    `json:"tier,omitempty"`
}

// ClaimView is one claim card
type ClaimView struct {
	ID           int            `json:"id"`
	Claim        string         `json:"claim"`
	Status       Badge          `json:"status"`
	Reasoning    string         `json:"reasoning,omitempty"`
	Error        string         `json:"error,omitempty"`
	Correction   string         `json:"correction,omitempty"`
	Citations    []CitationView `json:"citations"`
	Shown        int            `json:"shown"`
	TotalSources int            `json:"total_sources"`
	Overflow     bool           `json:"overflow"`
	ShowAllLabel string         `json:"show_all_label,omitempty"`
}

// CitationView is one evidence group's slice of citations
type CitationView struct {
	EvidenceIndex int          `json:"evidence_index"`
	Question      string       `json:"question"`
	Sources       []SourceView `json:"sources"`
}

// SourceView is one displayable citation
type SourceView struct {
	Text string `json:"text"`
	URL  string `json:"url"`
	Host string `json:"host,omitempty"`
}

// Builder composes views; it holds the citation cap and sanitizer
type Builder struct {
	cap      int
	sanitize *bluemonday.Policy
}

// NewBuilder creates a builder showing at most limit citations per claim
func NewBuilder(limit int) *Builder {
	if limit <= 0 {
		limit = citation.DefaultCap
	}
	return &Builder{
		cap:      limit,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Build composes a view from a controller snapshot
func (b *Builder) Build(snap session.Snapshot) View {
	view := View{Text: snap.Text}

	if _, ok := snap.State.(session.Submitting); ok {
		view.Phase = PhaseLoading
		return view
	}
	if snap.Validation != nil {
		view.Phase = PhaseInvalid
		view.Message = snap.Validation.Message
		return view
	}

	switch s := snap.State.(type) {
	case session.Succeeded:
		view.Phase = PhaseResult
		view.Result = b.result(s.Verdict)
	case session.SucceededMeaningless:
		view.Phase = PhaseMeaningless
		view.Message = MeaninglessMessage
	case session.Failed:
		view.Phase = PhaseFailed
		view.Message = s.Message
	default:
		view.Phase = PhaseIdle
	}
	return view
}

// Citations returns every valid citation of a claim, for the "show all" view
func (b *Builder) Citations(detail model.DetailedClaim) []CitationView {
	return b.citations(citation.All(detail))
}

func (b *Builder) result(v *model.Verdict) *ResultView {
	credTier := classify.CredibilityTier(v.OverallCredibility)
	credVariant := classify.TierVariant(credTier)
	factVariant := classify.FactualityVariant(v.OverallFactuality)

	r := &ResultView{
		Stats: []Stat{
			{"Detected Claims", len(v.DetectedClaims)},
			{"Retrieved Evidences", v.EvidenceCount},
			{"Supported Claims", v.SupportedClaims},
			{"Conflicted Claims", v.ConflictedClaims},
			{"Controversial Claims", v.ControversialClaims},
			{"Unverified Claims", v.UnverifiedClaims},
		},
		Factuality: Badge{
			Title:   "Overall Fact-check",
			Label:   classify.Label(v.OverallFactuality),
			Variant: factVariant,
			Icon:    classify.Icon(factVariant),
			Class:   classify.Class(factVariant),
		},
		Credibility: Badge{
			Title:   "Overall Credibility",
			Label:   classify.FormatCredibility(v.OverallCredibility),
			Variant: credVariant,
			Icon:    classify.Icon(credVariant),
			Class:   classify.Class(credVariant),
			Tier:    credTier,
		},
		DetectedClaims: append([]string(nil), v.DetectedClaims...),
		Claims:         make([]ClaimView, 0, len(v.DetailedClaims)),
	}

	for _, c := range v.DetailedClaims {
		r.Claims = append(r.Claims, b.claim(c))
	}
	return r
}

func (b *Builder) claim(c model.DetailedClaim) ClaimView {
	variant := classify.FactualityVariant(c.FactualityStatus)
	windows := citation.Select(c, b.cap)
	total := citation.TotalSources(c)

	cv := ClaimView{
		ID:    c.ID,
		Claim: c.Claim,
		Status: Badge{
			Label:   classify.Label(c.FactualityStatus),
			Variant: variant,
			Icon:    classify.Icon(variant),
			Class:   classify.Class(variant),
		},
		Reasoning:    c.Reasoning,
		Citations:    b.citations(windows),
		Shown:        citation.Count(windows),
		TotalSources: total,
		Overflow:     total > b.cap,
	}

	// Error and correction are only meaningful for refuted claims
	if c.FactualityStatus == model.FactualityFalse {
		cv.Error = c.ErrorText()
		cv.Correction = c.CorrectionText()
	}
	if cv.Overflow {
		cv.ShowAllLabel = fmt.Sprintf("Show all %d citations", total)
	}
	return cv
}

func (b *Builder) citations(windows []citation.Window) []CitationView {
	out := make([]CitationView, 0, len(windows))
	for _, w := range windows {
		cv := CitationView{
			EvidenceIndex: w.EvidenceIndex,
			Question:      w.Question,
			Sources:       make([]SourceView, 0, len(w.Sources)),
		}
		for _, s := range w.Sources {
			cv.Sources = append(cv.Sources, SourceView{
				Text: b.clean(s.Text),
				URL:  s.Link(),
				Host: s.Host(),
			})
		}
		out = append(out, cv)
	}
	return out
}

// clean strips markup from retrieved snippets and collapses whitespace
func (b *Builder) clean(s string) string {
	s = html.UnescapeString(b.sanitize.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
