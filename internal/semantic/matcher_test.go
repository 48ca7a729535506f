package semantic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workorder-classifier-go/internal/corpus"
	"workorder-classifier-go/internal/embedding"
	"workorder-classifier-go/internal/types"
)

func storeFrom(t *testing.T, byCategory map[string][][]float64) *corpus.Store {
	t.Helper()
	content := "{"
	first := true
	for cat, vecs := range byCategory {
		if !first {
			content += ","
		}
		first = false
		content += fmt.Sprintf("%q: [", cat)
		for i, v := range vecs {
			if i > 0 {
				content += ","
			}
			vec := "["
			for j, x := range v {
				if j > 0 {
					vec += ","
				}
				vec += fmt.Sprintf("%g", x)
			}
			vec += "]"
			content += fmt.Sprintf(`{"frase": "exemplo %d", "embedding": %s}`, i, vec)
		}
		content += "]"
	}
	content += "}"

	path := filepath.Join(t.TempDir(), "embeddings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	store, err := corpus.Load(path)
	require.NoError(t, err)
	return store
}

func TestMatchPicksNearestCategory(t *testing.T) {
	store := storeFrom(t, map[string][][]float64{
		"SCHEDULED_CORRECTIVE": {{0.8, 0.6}},
		"PREVENTIVE":           {{0, 1}},
	})
	provider := &embedding.Mock{Default: []float64{1, 0}}
	m := New(store, provider, 0.55, 3)

	res := m.Match(context.Background(), "troca de peca desgastada")
	assert.Equal(t, types.CategoryScheduledCorrective, res.Category)
	assert.Equal(t, 80, res.Confidence)
	assert.Equal(t, types.MethodSemantic, res.Method)
}

func TestMatchBelowThreshold(t *testing.T) {
	store := storeFrom(t, map[string][][]float64{
		"PREVENTIVE": {{0.4, 0.916515138991168}},
	})
	provider := &embedding.Mock{Default: []float64{1, 0}}
	m := New(store, provider, 0.55, 3)

	res := m.Match(context.Background(), "texto ambiguo qualquer")
	assert.Equal(t, types.CategoryNeedsReview, res.Category)
	assert.Equal(t, 40, res.Confidence)
	assert.Equal(t, types.MethodNone, res.Method)
	assert.Equal(t, "low semantic confidence", res.Rationale)
}

func TestMatchShortTextSkipsProvider(t *testing.T) {
	store := storeFrom(t, map[string][][]float64{"PREVENTIVE": {{1, 0}}})
	provider := &embedding.Mock{Default: []float64{1, 0}}
	m := New(store, provider, 0.55, 3)

	res := m.Match(context.Background(), "ab")
	assert.Equal(t, types.CategoryNeedsReview, res.Category)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, types.MethodNone, res.Method)
	assert.Equal(t, "text too short", res.Rationale)
	assert.Equal(t, 0, provider.Calls())
}

func TestMatchProviderError(t *testing.T) {
	store := storeFrom(t, map[string][][]float64{"PREVENTIVE": {{1, 0}}})
	provider := &embedding.Mock{Err: errors.New("quota exhausted")}
	m := New(store, provider, 0.55, 3)

	res := m.Match(context.Background(), "texto valido para embed")
	assert.Equal(t, types.CategoryNeedsReview, res.Category)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, types.MethodNone, res.Method)
	assert.Equal(t, "embedding unavailable", res.Rationale)
}

func TestMatchTieBreakFirstWins(t *testing.T) {
	// Identical vectors in two categories: the first in iteration order
	// (sorted category names) must win.
	store := storeFrom(t, map[string][][]float64{
		"PREVENTIVE":           {{1, 0}},
		"SCHEDULED_CORRECTIVE": {{1, 0}},
	})
	provider := &embedding.Mock{Default: []float64{1, 0}}
	m := New(store, provider, 0.55, 3)

	res := m.Match(context.Background(), "texto empatado entre categorias")
	assert.Equal(t, types.CategoryPreventive, res.Category)
	assert.Equal(t, 100, res.Confidence)
}

func TestMatchNegativeSimilarityClampedToZero(t *testing.T) {
	store := storeFrom(t, map[string][][]float64{"PREVENTIVE": {{-1, 0}}})
	provider := &embedding.Mock{Default: []float64{1, 0}}
	m := New(store, provider, 0.55, 3)

	res := m.Match(context.Background(), "texto oposto ao corpus")
	assert.Equal(t, types.CategoryNeedsReview, res.Category)
	assert.Equal(t, 0, res.Confidence)
}

func TestCosine(t *testing.T) {
	a := []float64{0.3, -0.7, 0.2}
	b := []float64{0.1, 0.5, 0.9}

	assert.InDelta(t, 1.0, Cosine(a, a), 1e-9, "self-similarity is 1")
	assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-12, "symmetric")
	assert.Equal(t, 0.0, Cosine(a, []float64{0, 0, 0}), "zero norm yields 0")
	assert.Equal(t, 0.0, Cosine(a, []float64{1, 2}), "length mismatch yields 0")
	assert.Equal(t, 0.0, Cosine(nil, nil))

	got := Cosine(a, b)
	assert.True(t, got >= -1 && got <= 1)
	assert.InDelta(t, -1.0, Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)

	// Scale invariance within floating tolerance.
	scaled := []float64{0.2, 1.0, 1.8}
	assert.InDelta(t, Cosine(a, b), Cosine(a, scaled), 1e-9)
}
