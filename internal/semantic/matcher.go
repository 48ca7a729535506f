// Package semantic is the fallback classifier: nearest reference
// embedding by cosine similarity. It never fails past its own boundary;
// anything that goes wrong degrades to NEEDS_REVIEW.
package semantic

import (
	"context"
	"math"

	"workorder-classifier-go/internal/corpus"
	"workorder-classifier-go/internal/embedding"
	"workorder-classifier-go/internal/logger"
	"workorder-classifier-go/internal/types"
)

type Matcher struct {
	store     *corpus.Store
	provider  embedding.Provider
	threshold float64
	minLen    int
}

func New(store *corpus.Store, provider embedding.Provider, threshold float64, minLen int) *Matcher {
	return &Matcher{store: store, provider: provider, threshold: threshold, minLen: minLen}
}

// Match classifies by nearest reference vector. Ties break to the first
// example at max similarity, which is deterministic because the store
// iterates in a fixed order.
func (m *Matcher) Match(ctx context.Context, normalizedText string) types.ClassificationResult {
	if len(normalizedText) < m.minLen {
		return types.ClassificationResult{
			Category:   types.CategoryNeedsReview,
			Confidence: 0,
			Method:     types.MethodNone,
			Rationale:  "text too short",
		}
	}

	vec, err := m.provider.Embed(ctx, normalizedText)
	if err != nil || len(vec) == 0 {
		if err != nil {
			logger.NewComponent("semantic").WithField("error", err.Error()).Warn("embedding unavailable")
		}
		return types.ClassificationResult{
			Category:   types.CategoryNeedsReview,
			Confidence: 0,
			Method:     types.MethodNone,
			Rationale:  "embedding unavailable",
		}
	}

	best := math.Inf(-1)
	var bestCat types.Category
	for _, ex := range m.store.AllExamples() {
		if sim := Cosine(vec, ex.Vector); sim > best {
			best = sim
			bestCat = ex.Category
		}
	}

	confidence := clampConfidence(best)
	if best < m.threshold {
		return types.ClassificationResult{
			Category:   types.CategoryNeedsReview,
			Confidence: confidence,
			Method:     types.MethodNone,
			Rationale:  "low semantic confidence",
		}
	}
	return types.ClassificationResult{
		Category:   bestCat,
		Confidence: confidence,
		Method:     types.MethodSemantic,
		Rationale:  "semantic match to reference corpus",
	}
}

// Cosine is dot(a,b)/(|a||b|), 0 when either norm is 0 or lengths
// differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clampConfidence(sim float64) int {
	c := int(math.Round(sim * 100))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
