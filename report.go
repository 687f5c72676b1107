package imgvault

import (
	"fmt"
	"strings"
)

// MatchReport is the outcome of one corpus scan. AllMatches is
// authoritative and ordered by discovery; the First* fields exist for
// single-match callers and point at the first record of each type.
type MatchReport struct {
	IsDuplicate bool          `json:"is_duplicate"`
	AllMatches  []MatchRecord `json:"all_matches"`

	FirstContextMatch *MatchRecord `json:"first_context_match,omitempty"`
	FirstExactMatch   *MatchRecord `json:"first_exact_match,omitempty"`
	FirstVisualMatch  *MatchRecord `json:"first_visual_match,omitempty"`
}

// maxSummaryExamples caps how many matched ids a summary lists per type
// before collapsing the rest into an "and N more" suffix.
const maxSummaryExamples = 3

// CountByType tallies matches per MatchType.
func (r *MatchReport) CountByType() map[MatchType]int {
	counts := make(map[MatchType]int, 3)
	for _, m := range r.AllMatches {
		counts[m.Type]++
	}
	return counts
}

// Summary renders a one-paragraph human-readable breakdown of the report:
// per-type counts with up to three example ids each. Suitable for the
// extension popup and for 409 responses.
func (r *MatchReport) Summary() string {
	if !r.IsDuplicate {
		return "no duplicates found"
	}

	var parts []string
	for _, mt := range []MatchType{MatchContext, MatchExact, MatchVisual} {
		ids := make([]string, 0, maxSummaryExamples)
		total := 0
		for _, m := range r.AllMatches {
			if m.Type != mt {
				continue
			}
			total++
			if len(ids) < maxSummaryExamples {
				ids = append(ids, m.MatchedID)
			}
		}
		if total == 0 {
			continue
		}
		part := fmt.Sprintf("%d %s (%s", total, mt, strings.Join(ids, ", "))
		if rest := total - len(ids); rest > 0 {
			part += fmt.Sprintf(" …and %d more", rest)
		}
		part += ")"
		parts = append(parts, part)
	}
	return "duplicates found: " + strings.Join(parts, "; ")
}
