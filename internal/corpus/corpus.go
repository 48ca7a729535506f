// Package corpus loads the precomputed category reference embeddings.
// The file is produced offline (cmd/generate) and read once at startup;
// the store is immutable for the life of the process.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"workorder-classifier-go/internal/types"
)

// Store holds every reference example in a fixed order: categories
// sorted by name, examples in file order within each category. The
// order matters for deterministic tie-breaking in the matcher.
type Store struct {
	examples []types.ReferenceExample
}

type fileEntry struct {
	Phrase string    `json:"frase"`
	Vector []float64 `json:"embedding"`
}

// Load reads an embeddings.json in the corpus format
// {category: [{frase, embedding}, ...]}. Any problem here is fatal to
// startup: a classifier without a corpus must not serve.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var raw map[string][]fileEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	categories := make([]string, 0, len(raw))
	for cat := range raw {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var examples []types.ReferenceExample
	for _, cat := range categories {
		for _, e := range raw[cat] {
			if e.Phrase == "" || len(e.Vector) == 0 {
				continue
			}
			examples = append(examples, types.ReferenceExample{
				Phrase:   e.Phrase,
				Vector:   e.Vector,
				Category: types.Category(cat),
			})
		}
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("corpus %s has no usable examples", path)
	}
	return &Store{examples: examples}, nil
}

// AllExamples returns the reference examples for read-only iteration.
// Callers must not mutate the returned slice.
func (s *Store) AllExamples() []types.ReferenceExample {
	return s.examples
}

func (s *Store) Len() int {
	return len(s.examples)
}
