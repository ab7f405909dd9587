package model

// Pipeline stage identifiers sent with every evaluation request.
// They are fixed; the service supports others but factview does not expose them.
const (
	ClaimProcessor = "factool_claimprocessor"
	Retriever      = "factool_retriever"
	Verifier       = "factool_verifier"
)

// EvaluationRequest is the body of POST /evaluate-response
type EvaluationRequest struct {
	Text           string `json:"text" validate:"notblank,min=3,max=1000"`
	ClaimProcessor string `json:"claimprocessor"`
	Retriever      string `json:"retriever"`
	Verifier       string `json:"verifier"`
}

// NewEvaluationRequest builds a request carrying the fixed pipeline stages
func NewEvaluationRequest(text string) EvaluationRequest {
	return EvaluationRequest{
		Text:           text,
		ClaimProcessor: ClaimProcessor,
		Retriever:      Retriever,
		Verifier:       Verifier,
	}
}

// Verdict is the complete structured response for one submission
type Verdict struct {
	Pipeline            []string        `json:"pipeline,omitempty"`
	DetectedClaims      []string        `json:"detected_claims"`
	EvidenceCount       int             `json:"evidence_count" validate:"gte=0"`
	SupportedClaims     int             `json:"supported_claims" validate:"gte=0"`
	ConflictedClaims    int             `json:"conflicted_claims" validate:"gte=0"`
	ControversialClaims int             `json:"controversial_claims" validate:"gte=0"`
	UnverifiedClaims    int             `json:"unverified_claims" validate:"gte=0"`
	OverallFactuality   FactualityTag   `json:"overall_factuality"`
	OverallCredibility  float64         `json:"overall_credibility" validate:"gte=0,lte=1"`
	DetailedClaims      []DetailedClaim `json:"detailed_claims"`
}

// Claim returns the detailed claim with the given id
func (v *Verdict) Claim(id int) (DetailedClaim, bool) {
	if v == nil {
		return DetailedClaim{}, false
	}
	for _, c := range v.DetailedClaims {
		if c.ID == id {
			return c, true
		}
	}
	return DetailedClaim{}, false
}

// Components lists the pipeline stages the service offers
type Components struct {
	ClaimProcessors []string `json:"claimprocessors"`
	Retrievers      []string `json:"retrievers"`
	Verifiers       []string `json:"verifiers"`
}
