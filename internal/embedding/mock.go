package embedding

import (
	"context"
	"errors"
	"sync/atomic"
)

// Mock is a test/demo provider. Vectors maps exact input text to the
// vector returned; unknown text falls back to Default, and if that is
// empty too the call errors.
type Mock struct {
	Vectors map[string][]float64
	Default []float64
	Err     error

	calls atomic.Int64
}

func (m *Mock) Embed(_ context.Context, text string) ([]float64, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	if len(m.Default) > 0 {
		return m.Default, nil
	}
	return nil, errors.New("mock: no vector for input")
}

// Calls reports how many times Embed was invoked.
func (m *Mock) Calls() int {
	return int(m.calls.Load())
}
