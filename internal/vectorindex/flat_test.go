package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

func TestBuild(t *testing.T) {
	t.Run("valid vectors", func(t *testing.T) {
		idx, err := Build([][]float32{{1, 0}, {0, 1}})
		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, 2, idx.Dim())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Build(nil)
		var buildErr *ragerror.IndexBuildError
		assert.ErrorAs(t, err, &buildErr)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Build([][]float32{{1, 0}, {0, 1, 2}})
		var buildErr *ragerror.IndexBuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Contains(t, err.Error(), "dimension mismatch")
	})

	t.Run("zero dimension", func(t *testing.T) {
		_, err := Build([][]float32{{}})
		assert.Error(t, err)
	})
}

func TestIndex_Search(t *testing.T) {
	idx, err := Build([][]float32{
		{0, 0}, // distance 0 to origin query
		{3, 0}, // distance 9
		{1, 0}, // distance 1
		{0, 2}, // distance 4
	})
	require.NoError(t, err)

	hits := idx.Search([]float32{0, 0}, 3)
	require.Len(t, hits, 3)

	assert.Equal(t, 0, hits[0].Position)
	assert.Equal(t, float32(0), hits[0].Distance)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, float32(1), hits[1].Distance)
	assert.Equal(t, 3, hits[2].Position)
	assert.Equal(t, float32(4), hits[2].Distance)
}

func TestIndex_Search_TiesAreStable(t *testing.T) {
	// Three identical vectors: ascending positions despite equal distances.
	idx, err := Build([][]float32{{1, 1}, {1, 1}, {1, 1}})
	require.NoError(t, err)

	hits := idx.Search([]float32{0, 0}, 3)
	require.Len(t, hits, 3)
	assert.Equal(t, 0, hits[0].Position)
	assert.Equal(t, 1, hits[1].Position)
	assert.Equal(t, 2, hits[2].Position)
}

func TestIndex_Search_ClampsAndRejects(t *testing.T) {
	idx, err := Build([][]float32{{1}, {2}})
	require.NoError(t, err)

	assert.Len(t, idx.Search([]float32{0}, 10), 2) // k clamped to size
	assert.Nil(t, idx.Search([]float32{0}, 0))
	assert.Nil(t, idx.Search([]float32{0}, -1))
	assert.Nil(t, idx.Search([]float32{0, 0}, 1)) // wrong dimension
}
