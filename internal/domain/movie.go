package domain

import "strings"

// Movie is the canonical movie record the recommendation pipeline operates on.
// Ingestion is responsible for producing validated Movie values; the core
// layers never see raw rows or column names.
type Movie struct {
	ID       int
	Title    string
	Genres   []string
	Overview string
	Language string
	Rating   float64
}

// Normalize applies the canonical field rules: trimmed, deduplicated genre
// labels, a lowercased language code ("unknown" when empty), and a rating
// reset to 0 when it falls outside the 0-10 scale.
func (m Movie) Normalize() Movie {
	genres := make([]string, 0, len(m.Genres))
	seen := make(map[string]struct{}, len(m.Genres))
	for _, g := range m.Genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}
	m.Genres = genres
	if m.Language == "" {
		m.Language = "unknown"
	} else {
		m.Language = strings.ToLower(m.Language)
	}
	if m.Rating < 0 || m.Rating > 10 {
		m.Rating = 0
	}
	return m
}

// Candidate pairs a feature-matrix row with a movie ID and a score. The
// similarity stage fills Row and Score; the orchestrator resolves ID before
// preference re-ranking.
type Candidate struct {
	Row   int
	ID    int
	Score float64
}

// Recommendation is one entry of the final ranked result set. It carries
// enough metadata for any presentation layer to render without recomputation.
type Recommendation struct {
	MovieID  int
	Title    string
	Score    float64
	Rating   float64
	Genres   []string
	Language string
}
