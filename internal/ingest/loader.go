package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"cinerec/internal/domain"
)

// requiredColumns is the canonical movie CSV schema.
var requiredColumns = []string{"movie_id", "title", "genres", "overview", "language", "rating"}

// Loader reads a movie CSV and produces validated, normalized Movie records.
// No ML logic lives here; the core layers only ever see the canonical output.
type Loader struct {
	path   string
	logger zerolog.Logger
}

// NewLoader creates a loader for the given CSV path.
func NewLoader(path string, logger zerolog.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// Load parses the CSV, validates the schema, and returns canonical movies.
// Rows with unusable IDs are dropped; duplicate IDs keep the first occurrence.
func (l *Loader) Load() ([]domain.Movie, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open movie data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var movies []domain.Movie
	seen := make(map[int]struct{})
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		line++
		id, err := strconv.Atoi(strings.TrimSpace(field(record, cols["movie_id"])))
		if err != nil || id <= 0 {
			l.logger.Warn().Int("line", line).Msg("dropping row with invalid movie_id")
			continue
		}
		if _, ok := seen[id]; ok {
			l.logger.Warn().Int("line", line).Int("movie_id", id).Msg("dropping duplicate movie_id")
			continue
		}
		seen[id] = struct{}{}

		title := strings.TrimSpace(field(record, cols["title"]))
		if title == "" {
			title = "Unknown Title"
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(field(record, cols["rating"])), 64)
		if err != nil {
			rating = 0
		}
		movie := domain.Movie{
			ID:       id,
			Title:    title,
			Genres:   splitGenres(field(record, cols["genres"])),
			Overview: strings.TrimSpace(field(record, cols["overview"])),
			Language: strings.TrimSpace(field(record, cols["language"])),
			Rating:   rating,
		}.Normalize()
		movies = append(movies, movie)
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("no valid movies in %s", l.path)
	}
	l.logger.Info().Int("movies", len(movies)).Str("path", l.path).Msg("corpus loaded")
	return movies, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// splitGenres handles both comma- and pipe-separated genre strings.
func splitGenres(s string) []string {
	sep := ","
	if strings.Contains(s, "|") {
		sep = "|"
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
