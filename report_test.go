package imgvault

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report MatchReport
		want   []string // substrings expected in the summary
	}{
		{
			name:   "clean report",
			report: MatchReport{},
			want:   []string{"no duplicates found"},
		},
		{
			name: "single exact match",
			report: MatchReport{
				IsDuplicate: true,
				AllMatches: []MatchRecord{
					{Type: MatchExact, MatchedID: "img-1"},
				},
			},
			want: []string{"1 exact (img-1)"},
		},
		{
			name: "overflow collapses into and-N-more",
			report: MatchReport{
				IsDuplicate: true,
				AllMatches: []MatchRecord{
					{Type: MatchVisual, MatchedID: "a"},
					{Type: MatchVisual, MatchedID: "b"},
					{Type: MatchVisual, MatchedID: "c"},
					{Type: MatchVisual, MatchedID: "d"},
					{Type: MatchVisual, MatchedID: "e"},
				},
			},
			want: []string{"5 visual (a, b, c …and 2 more)"},
		},
		{
			name: "mixed types in fixed order",
			report: MatchReport{
				IsDuplicate: true,
				AllMatches: []MatchRecord{
					{Type: MatchVisual, MatchedID: "v1"},
					{Type: MatchContext, MatchedID: "c1"},
				},
			},
			want: []string{"1 context (c1); 1 visual (v1)"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.report.Summary()
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Errorf("Summary() = %q, want substring %q", got, w)
				}
			}
		})
	}
}

func TestCountByType(t *testing.T) {
	t.Parallel()

	report := MatchReport{
		IsDuplicate: true,
		AllMatches: []MatchRecord{
			{Type: MatchContext, MatchedID: "a"},
			{Type: MatchExact, MatchedID: "b"},
			{Type: MatchExact, MatchedID: "c"},
		},
	}
	counts := report.CountByType()
	if counts[MatchContext] != 1 || counts[MatchExact] != 2 || counts[MatchVisual] != 0 {
		t.Errorf("CountByType() = %v", counts)
	}
}
