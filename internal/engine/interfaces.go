// Package engine implements query routing and hybrid retrieval over the
// expense ledger: intent classification, structured pre-filtering, the
// deterministic aggregation path, the semantic similarity path and answer
// assembly. Every answer is grounded in an explicit record subset.
package engine

import "context"

// Embedder turns texts into fixed-dimension vectors. Inputs are trimmed and
// empty strings dropped before embedding.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentExtractor maps a free-text question to a raw structured object
// (JSON, possibly wrapped in markdown fences). Its output is untrusted; the
// Classifier is the validation boundary.
type IntentExtractor interface {
	Extract(ctx context.Context, question string) (string, error)
}

// Generator produces best-effort prose from a prompt. It is never a source
// of numeric truth.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
