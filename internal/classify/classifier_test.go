package classify

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/ppiankov/factview/internal/model"
)

func TestCredibilityTier_Boundary(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{0.9, TierHigh},
		{math.Nextafter(0.9, 0), TierLow},
		{0.8999999, TierLow},
		{0.95, TierHigh},
		{1, TierHigh},
		{0, TierLow},
		{0.5, TierLow},
	}

	for _, tt := range tests {
		if got := CredibilityTier(tt.score); got != tt.want {
			t.Errorf("CredibilityTier(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestFactualityVariant_Total(t *testing.T) {
	tests := []struct {
		tag  model.FactualityTag
		want Variant
	}{
		{model.FactualityTrue, VariantPositive},
		{model.FactualityFalse, VariantNegative},
		{model.FactualityControversial, VariantPending},
		{model.FactualityUnverified, VariantUnknown},
		{"unknown", VariantUnknown},
		{"", VariantUnknown},
	}

	valid := map[Variant]bool{VariantPositive: true, VariantNegative: true, VariantPending: true, VariantUnknown: true}
	for _, tt := range tests {
		got := FactualityVariant(tt.tag)
		if got != tt.want {
			t.Errorf("FactualityVariant(%q) = %s, want %s", tt.tag, got, tt.want)
		}
		if !valid[got] {
			t.Errorf("FactualityVariant(%q) returned undefined variant %q", tt.tag, got)
		}
		if Icon(got) == "" || Class(got) == "" {
			t.Errorf("variant %s has no icon or class", got)
		}
	}
}

func TestHighCredibilityUsesPositiveIcon(t *testing.T) {
	v := TierVariant(CredibilityTier(0.95))
	if v != VariantPositive {
		t.Fatalf("expected positive variant, got %s", v)
	}
	if Icon(v) != "👍" {
		t.Errorf("expected thumbs up, got %q", Icon(v))
	}
	if TierVariant(TierLow) != VariantNegative {
		t.Error("expected low tier to be negative")
	}
}

func TestLabel(t *testing.T) {
	tests := map[model.FactualityTag]string{
		model.FactualityTrue:          "True",
		model.FactualityControversial: "Controversial",
		"":                            "",
		"élevé":                       "Élevé",
		"über":                        "Über",
	}
	for tag, want := range tests {
		got := Label(tag)
		if got != want {
			t.Errorf("Label(%q) = %q, want %q", tag, got, want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Label(%q) produced invalid UTF-8", tag)
		}
	}
}

func TestFormatCredibility(t *testing.T) {
	if got := FormatCredibility(0); got != "0" {
		t.Errorf("FormatCredibility(0) = %q", got)
	}
	if got := FormatCredibility(0.5); got != "50.0%" {
		t.Errorf("FormatCredibility(0.5) = %q", got)
	}
	if got := FormatCredibility(0.956); got != "95.6%" {
		t.Errorf("FormatCredibility(0.956) = %q", got)
	}
}
