// Package vectorindex implements a flat (brute-force) nearest-neighbor index
// over fixed-dimension float32 vectors, using squared Euclidean distance.
// The index is built once at startup and is immutable afterwards, so
// concurrent searches need no locking.
package vectorindex

import (
	"fmt"
	"sort"

	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

// Hit is one search result: the position of the vector in build order and
// its squared-L2 distance to the query.
type Hit struct {
	Position int
	Distance float32
}

// Index holds the indexed vectors.
type Index struct {
	vectors [][]float32
	dim     int
}

// Build constructs an index over the given vectors. All vectors must share
// the same dimension and positions follow input order.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, &ragerror.IndexBuildError{Reason: "no vectors to index"}
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, &ragerror.IndexBuildError{Reason: "zero-dimension vectors"}
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, &ragerror.IndexBuildError{
				Reason: fmt.Sprintf("dimension mismatch at position %d: got %d, want %d", i, len(v), dim),
			}
		}
	}

	return &Index{vectors: vectors, dim: dim}, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	return len(idx.vectors)
}

// Dim returns the vector dimension the index was built with.
func (idx *Index) Dim() int {
	return idx.dim
}

// Search returns the k nearest vectors to the query in ascending distance
// order. Ties keep build order (stable). k is clamped to the index size; a
// non-positive k returns nil. Queries of the wrong dimension return nil.
func (idx *Index) Search(query []float32, k int) []Hit {
	if k <= 0 || len(query) != idx.dim {
		return nil
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	hits := make([]Hit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = Hit{Position: i, Distance: squaredL2(query, v)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})

	return hits[:k]
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
