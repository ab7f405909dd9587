package model

import (
	"encoding/json"
	"strings"
)

// FactualityTag is the service's verdict for a claim or a whole text
type FactualityTag string

const (
	FactualityTrue          FactualityTag = "true"
	FactualityFalse         FactualityTag = "false"
	FactualityUnverified    FactualityTag = "unverified"
	FactualityControversial FactualityTag = "controversial"
)

// UnmarshalJSON accepts null (empty tag) and normalizes case
func (t *FactualityTag) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = FactualityTag(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// DetailedClaim is one verified claim with its reasoning and evidence
type DetailedClaim struct {
	ID               int             `json:"id"`
	Claim            string          `json:"claim"`
	FactualityStatus FactualityTag   `json:"factuality_status"`
	Error            *string         `json:"error"`
	Reasoning        string          `json:"reasoning"`
	Correction       *string         `json:"correction"`
	Evidences        []EvidenceGroup `json:"evidences"`
}

// ErrorText returns the error description or "" when absent
func (c DetailedClaim) ErrorText() string {
	return optional(c.Error)
}

// CorrectionText returns the correction or "" when absent
func (c DetailedClaim) CorrectionText() string {
	return optional(c.Correction)
}

// optional unwraps nullable service strings; the service writes "None" for missing values
func optional(s *string) string {
	if s == nil || *s == "None" {
		return ""
	}
	return *s
}
