package preferences

import (
	"sort"

	"github.com/rs/zerolog"

	"cinerec/internal/domain"
)

// Engine re-ranks similarity candidates using soft, continuous preference
// weighting. No candidate is ever dropped: preferences scale scores, they do
// not filter. Fusion is multiplicative so a strong base similarity dominates
// weak preference signals and scores never go negative.
type Engine struct {
	byID   map[int]domain.Movie
	logger zerolog.Logger
}

// NewEngine indexes the corpus by movie ID for metadata lookups.
func NewEngine(corpus []domain.Movie, logger zerolog.Logger) *Engine {
	byID := make(map[int]domain.Movie, len(corpus))
	for _, m := range corpus {
		byID[m.ID] = m
	}
	return &Engine{
		byID:   byID,
		logger: logger.With().Str("component", "preferences").Logger(),
	}
}

// Apply rescales every candidate score as
//
//	score' = s * (1 + genre_weight*g) * (1 + language_weight*l) * rating_factor(r)
//
// where g is the preferred-genre overlap fraction, l the language match
// indicator, and rating_factor a linear penalty for movies below the soft
// minimum rating. With empty/default preferences the scores come back
// unchanged. The result is re-sorted descending with ties broken by ascending
// row, the same rule the similarity stage uses.
func (e *Engine) Apply(candidates []domain.Candidate, prefs domain.UserPreferences) ([]domain.Candidate, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	genreSet := make(map[string]struct{}, len(prefs.PreferredGenres))
	for _, g := range prefs.PreferredGenres {
		genreSet[g] = struct{}{}
	}
	langSet := make(map[string]struct{}, len(prefs.PreferredLanguages))
	for _, l := range prefs.PreferredLanguages {
		langSet[l] = struct{}{}
	}

	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		movie, ok := e.byID[c.ID]
		if !ok {
			e.logger.Warn().Int("movie_id", c.ID).Msg("candidate not in corpus, skipping")
			continue
		}
		g := genreOverlap(movie.Genres, genreSet)
		l := 0.0
		if _, ok := langSet[movie.Language]; ok {
			l = 1.0
		}
		c.Score = c.Score *
			(1 + prefs.GenreWeight*g) *
			(1 + prefs.LanguageWeight*l) *
			ratingFactor(movie.Rating, prefs.MinRating)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Row < out[j].Row
	})
	return out, nil
}

// genreOverlap is |movie genres ∩ preferred| / |preferred|, and 0 when no
// genres are preferred.
func genreOverlap(genres []string, preferred map[string]struct{}) float64 {
	if len(preferred) == 0 {
		return 0
	}
	overlap := 0
	for _, g := range genres {
		if _, ok := preferred[g]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(preferred))
}

// ratingFactor scales linearly from 1 at the threshold down to 0 ten rating
// points below it. There is no hard cutoff.
func ratingFactor(rating, minRating float64) float64 {
	if rating >= minRating {
		return 1
	}
	f := 1 - (minRating-rating)/10.0
	if f < 0 {
		return 0
	}
	return f
}
