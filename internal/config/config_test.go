package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, 5000, cfg.Features.MaxFeatures)
	assert.Equal(t, 1, cfg.Features.NgramMin)
	assert.Equal(t, 2, cfg.Features.NgramMax)
	assert.Equal(t, 0.3, cfg.Preferences.GenreWeight)
	assert.Equal(t, 0.2, cfg.Preferences.LanguageWeight)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinerec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: my/movies.csv\ntop_k: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my/movies.csv", cfg.DataPath)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 5000, cfg.Features.MaxFeatures)
	assert.Equal(t, 0.3, cfg.Preferences.GenreWeight)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	cases := map[string]string{
		"negative top_k":        "top_k: -1\n",
		"negative genre weight": "preferences:\n  genre_weight: -0.5\n",
		"min rating over scale": "preferences:\n  min_rating: 11\n",
		"ngram max below min":   "features:\n  ngram_min: 2\n  ngram_max: 1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cinerec.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinerec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: [not an int\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cinerec.yaml")
	want := defaultConfig()
	want.DataPath = "elsewhere.csv"
	want.TopK = 25
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
