// Package stats summarizes a finished classification batch.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"workorder-classifier-go/internal/types"
)

type Summary struct {
	Total          int            `json:"total"`
	ByCategory     map[string]int `json:"by_category"`
	ByMethod       map[string]int `json:"by_method"`
	AvgConfidence  float64        `json:"avg_confidence"`
	NeedsReviewPct float64        `json:"needs_review_pct"`
}

// Advisory is a single follow-up recommendation derived from the batch.
type Advisory struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
}

func Aggregate(results []types.ClassificationResult) Summary {
	s := Summary{
		ByCategory: map[string]int{},
		ByMethod:   map[string]int{},
	}
	var confSum int
	for _, r := range results {
		s.Total++
		s.ByCategory[string(r.Category)]++
		s.ByMethod[string(r.Method)]++
		confSum += r.Confidence
	}
	if s.Total > 0 {
		s.AvgConfidence = float64(confSum) / float64(s.Total)
		s.NeedsReviewPct = float64(s.ByCategory[string(types.CategoryNeedsReview)]) / float64(s.Total)
	}
	return s
}

// Advise flags a batch where too large a share landed in manual review.
func Advise(s Summary, reviewShareAlert float64) Advisory {
	if s.Total > 0 && s.NeedsReviewPct >= reviewShareAlert {
		return Advisory{
			Insight: fmt.Sprintf("%.0f%% of records need manual review", s.NeedsReviewPct*100),
			Action:  "Check input date columns and extend the reference corpus for the dominant service texts",
		}
	}
	return Advisory{
		Insight: "Classification coverage within expected range",
		Action:  "No intervention needed",
	}
}

// Format renders the console summary for the CLI run.
func Format(s Summary) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 50) + "\n")

	cats := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		n := s.ByCategory[c]
		pct := float64(n) / float64(s.Total) * 100
		fmt.Fprintf(&b, "%-35s %4d (%.1f%%)\n", c, n, pct)
	}

	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "TOTAL: %d work orders\n", s.Total)
	fmt.Fprintf(&b, "Average confidence: %.1f%%\n", s.AvgConfidence)
	return b.String()
}
