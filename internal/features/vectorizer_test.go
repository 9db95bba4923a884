package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizer_FitLexicalOrder(t *testing.T) {
	v := NewVectorizer(0, 1, 1, 1)
	require.NoError(t, v.Fit([]string{"zebra apple", "apple mango"}))

	assert.Equal(t, []string{"apple", "mango", "zebra"}, v.Terms())
	assert.Equal(t, 3, v.Dimension())
}

func TestVectorizer_StopwordsRemoved(t *testing.T) {
	v := NewVectorizer(0, 1, 1, 1)
	require.NoError(t, v.Fit([]string{"the hacker and the machine"}))

	assert.NotContains(t, v.Terms(), "the")
	assert.NotContains(t, v.Terms(), "and")
	assert.Contains(t, v.Terms(), "hacker")
	assert.Contains(t, v.Terms(), "machine")
}

func TestVectorizer_Ngrams(t *testing.T) {
	v := NewVectorizer(0, 1, 2, 1)
	require.NoError(t, v.Fit([]string{"space opera adventure"}))

	terms := v.Terms()
	assert.Contains(t, terms, "space")
	assert.Contains(t, terms, "space opera")
	assert.Contains(t, terms, "opera adventure")
	assert.NotContains(t, terms, "space opera adventure")
}

func TestVectorizer_MinDocumentFrequency(t *testing.T) {
	v := NewVectorizer(0, 1, 1, 2)
	require.NoError(t, v.Fit([]string{"shared unique", "shared other"}))

	assert.Equal(t, []string{"shared"}, v.Terms())
}

func TestVectorizer_MaxFeaturesKeepsMostFrequent(t *testing.T) {
	v := NewVectorizer(2, 1, 1, 1)
	require.NoError(t, v.Fit([]string{"alpha alpha beta", "alpha gamma"}))

	// alpha wins on frequency; beta beats gamma lexically on the tie.
	assert.Equal(t, []string{"alpha", "beta"}, v.Terms())
}

func TestVectorizer_Deterministic(t *testing.T) {
	docs := []string{
		"a hacker discovers reality is a simulation",
		"explorers travel through a wormhole",
		"an enduring love story",
	}
	a := NewVectorizer(0, 1, 2, 1)
	b := NewVectorizer(0, 1, 2, 1)
	require.NoError(t, a.Fit(docs))
	require.NoError(t, b.Fit(docs))

	require.Equal(t, a.Terms(), b.Terms())
	require.Equal(t, a.IDF(), b.IDF())
	for _, doc := range docs {
		va, err := a.Vector(doc)
		require.NoError(t, err)
		vb, err := b.Vector(doc)
		require.NoError(t, err)
		assert.Equal(t, va, vb)
	}
}

func TestVectorizer_EmptyTextYieldsZeroVector(t *testing.T) {
	v := NewVectorizer(0, 1, 2, 1)
	require.NoError(t, v.Fit([]string{"some overview text", ""}))

	vec, err := v.Vector("")
	require.NoError(t, err)
	require.Len(t, vec, v.Dimension())
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestVectorizer_AllEmptyCorpusAllowed(t *testing.T) {
	v := NewVectorizer(0, 1, 2, 1)
	require.NoError(t, v.Fit([]string{"", ""}))
	assert.Equal(t, 0, v.Dimension())

	vec, err := v.Vector("anything")
	require.NoError(t, err)
	assert.Empty(t, vec)
}

func TestVectorizer_VectorBeforeFit(t *testing.T) {
	v := NewVectorizer(0, 1, 2, 1)
	_, err := v.Vector("text")
	assert.Error(t, err)
}

func TestVectorizer_L2Normalized(t *testing.T) {
	v := NewVectorizer(0, 1, 1, 1)
	require.NoError(t, v.Fit([]string{"robots fight aliens", "aliens invade earth"}))

	vec, err := v.Vector("robots fight aliens")
	require.NoError(t, err)
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}
