package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"cinerec/internal/domain"
	"cinerec/internal/features"
	"cinerec/internal/preferences"
	"cinerec/internal/similarity"
)

// Config holds the orchestrator settings supplied by the caller.
type Config struct {
	// Features parameterizes TF-IDF construction.
	Features features.Params
	// CachePath is the on-disk feature cache artifact. Empty disables caching.
	CachePath string
}

// Recommender drives the full pipeline: feature construction (load-or-build),
// similarity retrieval, preference re-ranking, and result formatting. After
// Init the matrix and index map are immutable, so concurrent Recommend calls
// need no locking. Init is the single mutating step and must not race another
// Init against the same cache path.
type Recommender struct {
	corpus []domain.Movie
	cfg    Config
	logger zerolog.Logger

	builder *features.Builder
	matrix  [][]float64
	index   *features.IndexMap
	sim     *similarity.Engine
	prefs   *preferences.Engine
	byID    map[int]domain.Movie
	titles  map[string]int
	ready   bool
}

// NewRecommender validates the corpus and prepares an uninitialized
// recommender. Call Init before serving requests.
func NewRecommender(corpus []domain.Movie, cfg Config, logger zerolog.Logger) (*Recommender, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: corpus must not be empty", domain.ErrInvalidConfig)
	}
	return &Recommender{
		corpus: corpus,
		cfg:    cfg,
		logger: logger.With().Str("component", "recommender").Logger(),
	}, nil
}

// Init loads the feature cache or rebuilds it from the corpus. A stale or
// corrupt cache is never an error: it triggers a transparent rebuild, and the
// fresh artifact is written back atomically.
func (r *Recommender) Init() error {
	fingerprint := features.Fingerprint(r.corpus)

	var (
		builder *features.Builder
		matrix  [][]float64
		index   *features.IndexMap
	)
	if r.cfg.CachePath != "" {
		var err error
		builder, matrix, index, err = features.LoadCache(r.cfg.CachePath, fingerprint, r.cfg.Features, r.logger)
		if err != nil {
			if !errors.Is(err, features.ErrCacheInvalid) {
				return err
			}
			r.logger.Info().Err(err).Msg("feature cache unusable, rebuilding")
			builder = nil
		} else {
			r.logger.Info().Str("path", r.cfg.CachePath).Msg("feature cache loaded")
		}
	}
	if builder == nil {
		builder = features.NewBuilder(r.cfg.Features, r.logger)
		if err := builder.Fit(r.corpus); err != nil {
			return err
		}
		var err error
		matrix, index, err = builder.Transform(r.corpus)
		if err != nil {
			return err
		}
		if r.cfg.CachePath != "" {
			if err := features.SaveCache(r.cfg.CachePath, builder, matrix, index, fingerprint); err != nil {
				r.logger.Warn().Err(err).Str("path", r.cfg.CachePath).Msg("feature cache write failed")
			}
		}
	}

	byID := make(map[int]domain.Movie, len(r.corpus))
	titles := make(map[string]int, len(r.corpus))
	for _, m := range r.corpus {
		byID[m.ID] = m
		key := strings.ToLower(m.Title)
		if _, ok := titles[key]; !ok {
			titles[key] = m.ID
		}
	}

	r.builder = builder
	r.matrix = matrix
	r.index = index
	r.sim = similarity.NewEngine(matrix)
	r.prefs = preferences.NewEngine(r.corpus, r.logger)
	r.byID = byID
	r.titles = titles
	r.ready = true
	r.logger.Info().Int("movies", len(r.corpus)).Int("features", builder.Dimension()).Msg("recommender initialized")
	return nil
}

// Close discards the in-memory matrix and derived state. The recommender must
// be re-initialized before further use.
func (r *Recommender) Close() {
	r.builder = nil
	r.matrix = nil
	r.index = nil
	r.sim = nil
	r.prefs = nil
	r.byID = nil
	r.titles = nil
	r.ready = false
}

// Recommend resolves the seed title, retrieves an over-fetched candidate pool,
// applies preference re-ranking, and returns the top-k results. The seed movie
// never appears in its own results.
func (r *Recommender) Recommend(title string, prefs domain.UserPreferences, topK int) ([]domain.Recommendation, error) {
	movie, err := r.Resolve(title)
	if err != nil {
		return nil, err
	}
	return r.RecommendByID(movie.ID, prefs, topK)
}

// RecommendByID is Recommend with the seed already resolved.
func (r *Recommender) RecommendByID(id int, prefs domain.UserPreferences, topK int) ([]domain.Recommendation, error) {
	if !r.ready {
		return nil, errors.New("recommender not initialized")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidConfig, topK)
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	row, ok := r.index.Row(id)
	if !ok {
		return nil, fmt.Errorf("%w: movie id %d", domain.ErrNotFound, id)
	}

	// Over-fetch before re-ranking: preferences can pull the tail into the
	// requested window.
	pool, err := r.sim.TopK(row, topK*2)
	if err != nil {
		return nil, err
	}
	for i := range pool {
		cid, ok := r.index.ID(pool[i].Row)
		if !ok {
			return nil, fmt.Errorf("row %d missing from index map", pool[i].Row)
		}
		pool[i].ID = cid
	}
	ranked, err := r.prefs.Apply(pool, prefs)
	if err != nil {
		return nil, err
	}
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}

	results := make([]domain.Recommendation, 0, len(ranked))
	for _, c := range ranked {
		m := r.movieByID(c.ID)
		results = append(results, domain.Recommendation{
			MovieID:  m.ID,
			Title:    m.Title,
			Score:    c.Score,
			Rating:   m.Rating,
			Genres:   m.Genres,
			Language: m.Language,
		})
	}
	return results, nil
}

// Resolve maps a seed title to a movie: exact case-insensitive match first,
// then substring containment, then bounded edit distance. Failure is a
// NotFound error, never an empty success.
func (r *Recommender) Resolve(title string) (domain.Movie, error) {
	if !r.ready {
		return domain.Movie{}, errors.New("recommender not initialized")
	}
	query := strings.ToLower(strings.TrimSpace(title))
	if query == "" {
		return domain.Movie{}, fmt.Errorf("%w: empty title", domain.ErrNotFound)
	}
	if id, ok := r.titles[query]; ok {
		return r.movieByID(id), nil
	}
	for _, m := range r.corpus {
		if strings.Contains(strings.ToLower(m.Title), query) {
			return m, nil
		}
	}
	best, bestDist := domain.Movie{}, maxEditDistance(query)+1
	for _, m := range r.corpus {
		d := levenshtein.ComputeDistance(query, strings.ToLower(m.Title))
		if d < bestDist {
			best, bestDist = m, d
		}
	}
	if bestDist <= maxEditDistance(query) {
		return best, nil
	}
	return domain.Movie{}, fmt.Errorf("%w: %q", domain.ErrNotFound, title)
}

// Genres returns the sorted set of genres present in the corpus.
func (r *Recommender) Genres() []string {
	set := make(map[string]struct{})
	for _, m := range r.corpus {
		for _, g := range m.Genres {
			set[g] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Languages returns the sorted set of language codes present in the corpus.
func (r *Recommender) Languages() []string {
	set := make(map[string]struct{})
	for _, m := range r.corpus {
		set[m.Language] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (r *Recommender) movieByID(id int) domain.Movie {
	return r.byID[id]
}

// maxEditDistance tolerates roughly one typo per four characters of query.
func maxEditDistance(query string) int {
	d := len(query) / 4
	if d < 1 {
		d = 1
	}
	return d
}
