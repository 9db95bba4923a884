package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatrix() [][]float64 {
	return [][]float64{
		{1, 0},
		{0.9, 0.1},
		{0, 1},
		{0, 0}, // degenerate row
	}
}

func TestEngine_TopKOrderingAndExclusion(t *testing.T) {
	e := NewEngine(testMatrix())

	got, err := e.TopK(0, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// row 1 is nearly parallel, rows 2 and 3 both score 0 and the tie
	// resolves by ascending row index
	assert.Equal(t, 1, got[0].Row)
	assert.Equal(t, 2, got[1].Row)
	assert.Equal(t, 3, got[2].Row)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestEngine_SeedExcluded(t *testing.T) {
	e := NewEngine(testMatrix())
	for query := 0; query < e.Len(); query++ {
		got, err := e.TopK(query, 10)
		require.NoError(t, err)
		for _, c := range got {
			assert.NotEqual(t, query, c.Row)
		}
	}
}

func TestEngine_ZeroNormRow(t *testing.T) {
	e := NewEngine(testMatrix())

	got, err := e.TopK(3, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// all scores are 0, rows come back in ascending order
	assert.Equal(t, 0, got[0].Row)
	assert.Equal(t, 1, got[1].Row)
	assert.Zero(t, got[0].Score)
	assert.Zero(t, got[1].Score)
}

func TestEngine_KBounds(t *testing.T) {
	e := NewEngine(testMatrix())

	got, err := e.TopK(0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = e.TopK(0, 100)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = e.TopK(0, -1)
	assert.Error(t, err)

	_, err = e.TopK(-1, 5)
	assert.Error(t, err)
	_, err = e.TopK(4, 5)
	assert.Error(t, err)
}

func TestEngine_ScoreSymmetricBounded(t *testing.T) {
	e := NewEngine(testMatrix())
	for i := 0; i < e.Len(); i++ {
		for j := 0; j < e.Len(); j++ {
			s := e.Score(i, j)
			assert.Equal(t, s, e.Score(j, i))
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0+1e-12)
		}
	}
	assert.InDelta(t, 1.0, e.Score(0, 0), 1e-12)
	// zero-norm row scores 0 even against itself
	assert.Zero(t, e.Score(3, 3))
}

func TestEngine_PairwiseMatchesScore(t *testing.T) {
	e := NewEngine(testMatrix())
	pairwise := e.Pairwise()
	require.Len(t, pairwise, e.Len())
	for i := 0; i < e.Len(); i++ {
		for j := 0; j < e.Len(); j++ {
			assert.Equal(t, e.Score(i, j), pairwise[i][j])
		}
	}
}
