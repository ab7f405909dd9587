// Package classify maps raw verdict values to display categories.
// All functions are pure and total.
package classify

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/factview/internal/model"
)

// HighCredibilityThreshold is the inclusive lower bound of the High tier
const HighCredibilityThreshold = 0.9

// Tier is the coarse credibility bucket
type Tier string

const (
	TierHigh Tier = "high"
	TierLow  Tier = "low"
)

// Variant is the semantic display category of a verdict value
type Variant string

const (
	VariantPositive Variant = "positive"
	VariantNegative Variant = "negative"
	VariantPending  Variant = "pending"
	VariantUnknown  Variant = "unknown"
)

// variants is the total dispatch table for factuality tags.
// Tags missing from the table classify as VariantUnknown.
var variants = map[model.FactualityTag]Variant{
	model.FactualityTrue:          VariantPositive,
	model.FactualityFalse:         VariantNegative,
	model.FactualityControversial: VariantPending,
	model.FactualityUnverified:    VariantUnknown,
}

type presentation struct {
	icon  string
	class string
}

var presentations = map[Variant]presentation{
	VariantPositive: {icon: "👍", class: "true"},
	VariantNegative: {icon: "👎", class: "false"},
	VariantPending:  {icon: "⚖", class: "controversial"},
	VariantUnknown:  {icon: "?", class: "unverified"},
}

// CredibilityTier buckets a credibility score
func CredibilityTier(c float64) Tier {
	if c >= HighCredibilityThreshold {
		return TierHigh
	}
	return TierLow
}

// TierVariant gives the variant used for the credibility badge
func TierVariant(t Tier) Variant {
	if t == TierHigh {
		return VariantPositive
	}
	return VariantNegative
}

// FactualityVariant maps a factuality tag to its variant
func FactualityVariant(tag model.FactualityTag) Variant {
	if v, ok := variants[tag]; ok {
		return v
	}
	return VariantUnknown
}

// Label capitalizes a tag for display. The empty tag renders as "".
func Label(tag model.FactualityTag) string {
	s := string(tag)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Icon returns the glyph shown next to a variant
func Icon(v Variant) string {
	return lookup(v).icon
}

// Class returns the semantic class name of a variant
func Class(v Variant) string {
	return lookup(v).class
}

func lookup(v Variant) presentation {
	if p, ok := presentations[v]; ok {
		return p
	}
	return presentations[VariantUnknown]
}

// FormatCredibility renders a score as a percentage with one decimal.
// Zero renders as "0".
func FormatCredibility(c float64) string {
	if c == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f%%", c*100)
}
