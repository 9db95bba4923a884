package features

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"cinerec/internal/domain"
)

// Params configures feature construction: the TF-IDF dimensionality cap, the
// word n-gram span, and the minimum document frequency.
type Params struct {
	MaxFeatures int
	NgramMin    int
	NgramMax    int
	MinDF       int
}

// DefaultParams returns the stock feature parameters.
func DefaultParams() Params {
	return Params{MaxFeatures: 5000, NgramMin: 1, NgramMax: 2, MinDF: 1}
}

// Builder turns a movie corpus into a numeric feature matrix. Columns are the
// TF-IDF text block, a multi-hot genre block over the corpus-wide genre
// vocabulary, and one normalized-rating scalar. Fit consumes the entire corpus
// at once; vocabulary and genre labels are corpus-wide statistics, so adding a
// single movie requires a full refit.
type Builder struct {
	params     Params
	vectorizer *Vectorizer
	genres     []string
	genreIndex map[string]int
	fitted     bool
	logger     zerolog.Logger
}

// NewBuilder creates an unfitted feature builder.
func NewBuilder(params Params, logger zerolog.Logger) *Builder {
	return &Builder{
		params: params,
		logger: logger.With().Str("component", "features").Logger(),
	}
}

// Fit learns the text vocabulary and the sorted genre label set from the
// corpus. The column layout is fixed from here on.
func (b *Builder) Fit(corpus []domain.Movie) error {
	if len(corpus) == 0 {
		return fmt.Errorf("%w: corpus must not be empty", domain.ErrInvalidConfig)
	}
	overviews := make([]string, len(corpus))
	genreSet := make(map[string]struct{})
	for i, m := range corpus {
		overviews[i] = m.Overview
		for _, g := range m.Genres {
			genreSet[g] = struct{}{}
		}
	}
	vectorizer := NewVectorizer(b.params.MaxFeatures, b.params.NgramMin, b.params.NgramMax, b.params.MinDF)
	if err := vectorizer.Fit(overviews); err != nil {
		return err
	}
	genres := make([]string, 0, len(genreSet))
	for g := range genreSet {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	b.vectorizer = vectorizer
	b.genres = genres
	b.genreIndex = make(map[string]int, len(genres))
	for i, g := range genres {
		b.genreIndex[g] = i
	}
	b.fitted = true
	b.logger.Info().
		Int("movies", len(corpus)).
		Int("vocabulary", vectorizer.Dimension()).
		Int("genres", len(genres)).
		Msg("feature builder fitted")
	return nil
}

// Transform builds the feature matrix and index map for the corpus. It is a
// pure function of the corpus and the fitted state: identical inputs produce
// bit-identical output. Genres unseen at fit time map to the zero vector in
// the genre block.
func (b *Builder) Transform(corpus []domain.Movie) ([][]float64, *IndexMap, error) {
	if !b.fitted {
		return nil, nil, errors.New("feature builder not fitted")
	}
	index, err := NewIndexMap(corpus)
	if err != nil {
		return nil, nil, err
	}
	textDim := b.vectorizer.Dimension()
	matrix := make([][]float64, len(corpus))
	for i, m := range corpus {
		text, err := b.vectorizer.Vector(m.Overview)
		if err != nil {
			return nil, nil, err
		}
		row := make([]float64, textDim+len(b.genres)+1)
		copy(row, text)
		for _, g := range m.Genres {
			if j, ok := b.genreIndex[g]; ok {
				row[textDim+j] = 1
			}
		}
		row[textDim+len(b.genres)] = m.Rating / 10.0
		matrix[i] = row
	}
	b.logger.Debug().Int("rows", len(matrix)).Int("cols", b.Dimension()).Msg("feature matrix built")
	return matrix, index, nil
}

// Dimension returns the total column count of a transformed matrix.
func (b *Builder) Dimension() int {
	if !b.fitted {
		return 0
	}
	return b.vectorizer.Dimension() + len(b.genres) + 1
}

// GenreLabels returns the fitted genre column labels in order.
func (b *Builder) GenreLabels() []string {
	out := make([]string, len(b.genres))
	copy(out, b.genres)
	return out
}
