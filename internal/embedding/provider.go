// Package embedding talks to the external text-embedding provider.
package embedding

import "context"

// Provider turns a text into a fixed-length vector. Implementations
// must return an error on network/quota/model failure; retries happen
// inside the implementation and exhaustion surfaces as one error.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
