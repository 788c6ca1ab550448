package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

// fakeExtractor returns a canned raw payload or error.
type fakeExtractor struct {
	raw   string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.raw, f.err
}

// fakeEmbedder returns one canned vector per input text.
type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

// fakeGenerator echoes a canned answer and records the prompt it received.
type fakeGenerator struct {
	answer string
	err    error
	prompt string
	calls  int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func record(id int, description, status, reference, category, amount string) models.ExpenseRecord {
	return models.ExpenseRecord{
		ID:          id,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Status:      status,
		Reference:   reference,
		Category:    category,
	}
}
