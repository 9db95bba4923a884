package similarity

import (
	"fmt"
	"math"
	"sort"

	"cinerec/internal/domain"
)

// Engine computes cosine similarity of one matrix row against all others.
// The matrix is treated as immutable shared state; Engine itself holds no
// locks and every method is safe for concurrent use.
type Engine struct {
	matrix [][]float64
	norms  []float64
}

// NewEngine wraps a feature matrix, precomputing row norms.
func NewEngine(matrix [][]float64) *Engine {
	norms := make([]float64, len(matrix))
	for i, row := range matrix {
		sum := 0.0
		for _, x := range row {
			sum += x * x
		}
		norms[i] = math.Sqrt(sum)
	}
	return &Engine{matrix: matrix, norms: norms}
}

// Len returns the number of rows.
func (e *Engine) Len() int { return len(e.matrix) }

// TopK ranks all rows by cosine similarity to the query row, excluding the
// query row itself. Ordering is descending by score with ties broken by
// ascending row index, so results are deterministic. Asking for more rows
// than exist returns everything available.
func (e *Engine) TopK(queryRow, k int) ([]domain.Candidate, error) {
	if queryRow < 0 || queryRow >= len(e.matrix) {
		return nil, fmt.Errorf("query row %d out of bounds [0, %d)", queryRow, len(e.matrix))
	}
	if k < 0 {
		return nil, fmt.Errorf("k must be >= 0, got %d", k)
	}
	candidates := make([]domain.Candidate, 0, len(e.matrix)-1)
	for row := range e.matrix {
		if row == queryRow {
			continue
		}
		candidates = append(candidates, domain.Candidate{Row: row, Score: e.Score(queryRow, row)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Row < candidates[j].Row
	})
	if k < len(candidates) {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// Score returns the cosine similarity between two rows. A zero-norm row
// scores 0 against everything; there is no division by zero.
func (e *Engine) Score(a, b int) float64 {
	na, nb := e.norms[a], e.norms[b]
	if na == 0 || nb == 0 {
		return 0
	}
	return dot(e.matrix[a], e.matrix[b]) / (na * nb)
}

// Pairwise precomputes the full similarity matrix for amortized batch use.
// Entries match Score exactly.
func (e *Engine) Pairwise() [][]float64 {
	n := len(e.matrix)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		out[i][i] = e.Score(i, i)
		for j := i + 1; j < n; j++ {
			s := e.Score(i, j)
			out[i][j] = s
			out[j][i] = s
		}
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
