package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		err          error
		expectedOp   models.Operation
		expectedFlts models.Filters
	}{
		{
			name:       "well-formed payload",
			raw:        `{"operation": "total_pago", "filters": {"reference_period": "marco", "vendor_contains": null, "status": null, "category": null}}`,
			expectedOp: models.OperationTotalPago,
			expectedFlts: models.Filters{
				ReferencePeriod: "marco",
			},
		},
		{
			name:       "payload wrapped in markdown fences",
			raw:        "```json\n{\"operation\": \"list\", \"filters\": {}}\n```",
			expectedOp: models.OperationList,
		},
		{
			name:       "uppercase operation is normalized",
			raw:        `{"operation": "TOTAL", "filters": {}}`,
			expectedOp: models.OperationTotal,
		},
		{
			name:       "unknown operation falls through keyword heuristic",
			raw:        `{"operation": "sum_of_everything", "filters": {}}`,
			expectedOp: models.OperationTotal,
		},
		{
			name:       "extractor error defaults to search",
			err:        errors.New("model unavailable"),
			expectedOp: models.OperationSearch,
		},
		{
			name:       "garbage payload defaults to search",
			raw:        "I could not understand the question",
			expectedOp: models.OperationSearch,
		},
		{
			name:       "empty payload defaults to search",
			raw:        "",
			expectedOp: models.OperationSearch,
		},
		{
			name:       "missing fields default to null",
			raw:        `{"operation": "search"}`,
			expectedOp: models.OperationSearch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewClassifier(&fakeExtractor{raw: tt.raw, err: tt.err}, &logging.MockLogger{})

			intent := classifier.Classify(context.Background(), "quanto gastei?")

			assert.Equal(t, tt.expectedOp, intent.Operation)
			assert.Equal(t, tt.expectedFlts, intent.Filters)
			assert.True(t, intent.Operation.IsKnown())
		})
	}
}

func TestNormalizeOperation(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Operation
	}{
		{input: "search", expected: models.OperationSearch},
		{input: "list", expected: models.OperationList},
		{input: "total", expected: models.OperationTotal},
		{input: "total_pago", expected: models.OperationTotalPago},
		{input: "total_pendente", expected: models.OperationTotalPendente},
		{input: " Total ", expected: models.OperationTotal},
		{input: "grand_total", expected: models.OperationTotal},
		{input: "sum", expected: models.OperationTotal},
		{input: "list_expenses", expected: models.OperationList},
		{input: "find stuff", expected: models.OperationSearch},
		{input: "", expected: models.OperationSearch},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeOperation(tt.input), tt.input)
	}
}

func TestClassifyOperationClass(t *testing.T) {
	deterministic := []string{
		"total", "total_pago", "total_pendente", "sum", "count",
		"average", "media", "max", "min", "TOTAL_PAGO", " total ",
	}
	for _, op := range deterministic {
		assert.Equal(t, models.ClassDeterministic, ClassifyOperationClass(op), op)
	}

	semantic := []string{"", "search", "list", "describe", "rent"}
	for _, op := range semantic {
		assert.Equal(t, models.ClassSemantic, ClassifyOperationClass(op), op)
	}
}

func TestClassifyOperationClass_IsPure(t *testing.T) {
	// Same input, same output, with no collaborator involved.
	for i := 0; i < 3; i++ {
		assert.Equal(t, models.ClassDeterministic, ClassifyOperationClass("total"))
		assert.Equal(t, models.ClassSemantic, ClassifyOperationClass("search"))
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONObject("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSONObject(`prefix {"a":1} suffix`))
	assert.Equal(t, "no braces here", extractJSONObject("no braces here"))
}
