package engine

import (
	"context"

	"github.com/alanrezendeee/retechfin-rag/internal/ledger"
	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
	"github.com/alanrezendeee/retechfin-rag/internal/vectorindex"
)

// BuildIndex embeds every record's projection and builds the similarity
// index over the vectors, in store order. Embedding runs in batches of
// batchSize. The index must be fully built before the process serves
// requests; any failure here is fatal to startup, not to a request.
func BuildIndex(ctx context.Context, store *ledger.Store, embedder Embedder, batchSize int, log logging.Logger) (*vectorindex.Index, error) {
	records := store.Records()
	if len(records) == 0 {
		return nil, &ragerror.IndexBuildError{Reason: "record store is empty"}
	}
	if batchSize <= 0 {
		batchSize = len(records)
	}

	texts := ledger.ProjectAll(records)

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := embedder.EmbedTexts(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)

		log.Debug("Embedded batch",
			logging.F("from", start),
			logging.F("to", end))
	}

	// Projections are never empty (descriptions are required), so the
	// embedder must return exactly one vector per record.
	if len(vectors) != len(records) {
		return nil, &ragerror.IndexBuildError{
			Reason: "embedding count does not match record count",
		}
	}

	index, err := vectorindex.Build(vectors)
	if err != nil {
		return nil, err
	}

	log.Info("Similarity index built",
		logging.F("vectors", index.Len()),
		logging.F("dim", index.Dim()))

	return index, nil
}
