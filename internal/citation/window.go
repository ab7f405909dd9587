// Package citation selects the sources shown inline for a claim.
//
// A claim's evidence is a sequence of groups, each holding ordered
// sources. Only valid sources (see model.Source.Valid) are citations.
// Window picks at most a fixed number of them greedily in group order, truncating
// a group mid-way when needed, and TotalSources reports the full count
// so callers can offer a "show all" view.
package citation

import "github.com/ppiankov/factview/internal/model"

// DefaultCap is the number of citations shown inline
const DefaultCap = 5

// Window is the slice of one evidence group selected for display
type Window struct {
	EvidenceIndex int            `json:"evidence_index"` // index of the group in the claim's evidences
	Question      string         `json:"question"`
	Sources       []model.Source `json:"sources"`
}

// Select returns at most limit valid sources of the claim, grouped by
// evidence group, preserving group order and source order.
// Groups without valid sources are skipped; a non-positive limit selects nothing.
func Select(detail model.DetailedClaim, limit int) []Window {
	var windows []Window
	shown := 0

	for i, group := range detail.Evidences {
		if shown >= limit {
			break
		}

		valid := validSources(group.Sources)
		take := min(len(valid), limit-shown)
		if take == 0 {
			continue
		}

		windows = append(windows, Window{
			EvidenceIndex: i,
			Question:      group.Question,
			Sources:       valid[:take:take],
		})
		shown += take
	}

	return windows
}

// All returns every valid source of the claim grouped by evidence group
func All(detail model.DetailedClaim) []Window {
	var windows []Window
	for i, group := range detail.Evidences {
		valid := validSources(group.Sources)
		if len(valid) == 0 {
			continue
		}
		windows = append(windows, Window{
			EvidenceIndex: i,
			Question:      group.Question,
			Sources:       valid,
		})
	}
	return windows
}

// TotalSources counts the valid sources across all groups, independent of any cap
func TotalSources(detail model.DetailedClaim) int {
	total := 0
	for _, group := range detail.Evidences {
		for _, s := range group.Sources {
			if s.Valid() {
				total++
			}
		}
	}
	return total
}

// Overflow reports whether the claim has more citations than the window shows
func Overflow(detail model.DetailedClaim, limit int) bool {
	return TotalSources(detail) > limit
}

// Count returns the number of sources across windows
func Count(windows []Window) int {
	n := 0
	for _, w := range windows {
		n += len(w.Sources)
	}
	return n
}

func validSources(sources []model.Source) []model.Source {
	valid := make([]model.Source, 0, len(sources))
	for _, s := range sources {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	return valid
}
