package features

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// ErrCacheInvalid marks a cache artifact that cannot serve the live corpus:
// missing file, corrupt payload, fingerprint or parameter mismatch. Callers
// recover by rebuilding; it is never a user-visible failure.
var ErrCacheInvalid = errors.New("feature cache invalid")

// cacheRecord is the on-disk cache artifact. It captures everything needed to
// restore a fitted builder, the feature matrix, and the index map without
// touching the corpus text again.
type cacheRecord struct {
	Fingerprint string      `json:"fingerprint"`
	Params      Params      `json:"params"`
	Vocabulary  []string    `json:"vocabulary"`
	IDF         []float64   `json:"idf"`
	Genres      []string    `json:"genres"`
	IDs         []int       `json:"ids"`
	Matrix      [][]float64 `json:"matrix"`
}

// SaveCache persists the fitted builder state, matrix, and index map keyed by
// the corpus fingerprint. The write is atomic: a temp file is renamed into
// place so a reader never observes a half-written artifact.
func SaveCache(path string, b *Builder, matrix [][]float64, index *IndexMap, fingerprint string) error {
	if !b.fitted {
		return errors.New("cannot cache an unfitted builder")
	}
	rec := cacheRecord{
		Fingerprint: fingerprint,
		Params:      b.params,
		Vocabulary:  b.vectorizer.Terms(),
		IDF:         b.vectorizer.IDF(),
		Genres:      b.GenreLabels(),
		IDs:         index.IDs(),
		Matrix:      matrix,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode feature cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadCache restores a fitted builder, matrix, and index map from disk. Any
// defect -- absence, corruption, a fingerprint that does not match the live
// corpus, or parameters that differ from the requested ones -- yields
// ErrCacheInvalid so the caller falls back to a full rebuild.
func LoadCache(path, fingerprint string, params Params, logger zerolog.Logger) (*Builder, [][]float64, *IndexMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrCacheInvalid, err)
	}
	var rec cacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: corrupt payload: %v", ErrCacheInvalid, err)
	}
	if rec.Fingerprint != fingerprint {
		return nil, nil, nil, fmt.Errorf("%w: corpus fingerprint mismatch", ErrCacheInvalid)
	}
	if rec.Params != params {
		return nil, nil, nil, fmt.Errorf("%w: feature parameters changed", ErrCacheInvalid)
	}
	if len(rec.Vocabulary) != len(rec.IDF) || len(rec.IDs) != len(rec.Matrix) {
		return nil, nil, nil, fmt.Errorf("%w: inconsistent payload", ErrCacheInvalid)
	}
	wantCols := len(rec.Vocabulary) + len(rec.Genres) + 1
	for _, row := range rec.Matrix {
		if len(row) != wantCols {
			return nil, nil, nil, fmt.Errorf("%w: matrix column count drifted", ErrCacheInvalid)
		}
	}
	index, err := indexMapFromIDs(rec.IDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrCacheInvalid, err)
	}
	b := NewBuilder(rec.Params, logger)
	b.vectorizer = restoreVectorizer(rec.Params.MaxFeatures, rec.Params.NgramMin, rec.Params.NgramMax, rec.Params.MinDF, rec.Vocabulary, rec.IDF)
	b.genres = rec.Genres
	b.genreIndex = make(map[string]int, len(rec.Genres))
	for i, g := range rec.Genres {
		b.genreIndex[g] = i
	}
	b.fitted = true
	return b, rec.Matrix, index, nil
}
