package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanrezendeee/retechfin-rag/internal/ledger"
	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

func TestBuildIndex(t *testing.T) {
	records := []models.ExpenseRecord{
		record(0, "Aluguel", "pago", "marco", "outros", "1500"),
		record(1, "Mercado", "pago", "marco", "outros", "350"),
		record(2, "Internet", "", "abril", "outros", "99.9"),
	}
	store := ledger.NewStore(records, 0)
	embedder := &fakeEmbedder{vector: []float32{1, 2}}

	index, err := BuildIndex(context.Background(), store, embedder, 2, &logging.MockLogger{})
	require.NoError(t, err)

	assert.Equal(t, 3, index.Len())
	assert.Equal(t, 2, index.Dim())
	// 3 records in batches of 2: two embedding calls.
	assert.Equal(t, 2, embedder.calls)
}

func TestBuildIndex_EmptyStore(t *testing.T) {
	store := ledger.NewStore(nil, 0)

	_, err := BuildIndex(context.Background(), store, &fakeEmbedder{vector: []float32{1}}, 10, &logging.MockLogger{})
	var buildErr *ragerror.IndexBuildError
	assert.ErrorAs(t, err, &buildErr)
}

func TestBuildIndex_EmbedderFailureIsFatal(t *testing.T) {
	records := []models.ExpenseRecord{
		record(0, "Aluguel", "pago", "marco", "outros", "1500"),
	}
	store := ledger.NewStore(records, 0)
	embErr := &ragerror.EmbeddingError{Text: "x", Err: assert.AnError}

	_, err := BuildIndex(context.Background(), store, &fakeEmbedder{err: embErr}, 10, &logging.MockLogger{})
	var target *ragerror.EmbeddingError
	assert.ErrorAs(t, err, &target)
}

func TestBuildIndex_NonPositiveBatchSizeEmbedsEverythingAtOnce(t *testing.T) {
	records := []models.ExpenseRecord{
		record(0, "A", "pago", "marco", "outros", "1"),
		record(1, "B", "pago", "marco", "outros", "2"),
	}
	store := ledger.NewStore(records, 0)
	embedder := &fakeEmbedder{vector: []float32{0.5}}

	index, err := BuildIndex(context.Background(), store, embedder, 0, &logging.MockLogger{})
	require.NoError(t, err)
	assert.Equal(t, 2, index.Len())
	assert.Equal(t, 1, embedder.calls)
}
