package features

import (
	"fmt"

	"cinerec/internal/domain"
)

// IndexMap is the bijection between movie IDs and feature-matrix rows. It is
// built together with a matrix and stays valid for exactly as long as that
// matrix does; rebuilding the corpus regenerates it.
type IndexMap struct {
	idToRow map[int]int
	rowToID []int
}

// NewIndexMap maps each movie to its corpus position. Duplicate IDs break the
// bijection and are rejected.
func NewIndexMap(corpus []domain.Movie) (*IndexMap, error) {
	m := &IndexMap{
		idToRow: make(map[int]int, len(corpus)),
		rowToID: make([]int, len(corpus)),
	}
	for row, movie := range corpus {
		if prev, ok := m.idToRow[movie.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate movie id %d at rows %d and %d", domain.ErrInvalidConfig, movie.ID, prev, row)
		}
		m.idToRow[movie.ID] = row
		m.rowToID[row] = movie.ID
	}
	return m, nil
}

// Row returns the matrix row for a movie ID.
func (m *IndexMap) Row(id int) (int, bool) {
	row, ok := m.idToRow[id]
	return row, ok
}

// ID returns the movie ID stored at a matrix row.
func (m *IndexMap) ID(row int) (int, bool) {
	if row < 0 || row >= len(m.rowToID) {
		return 0, false
	}
	return m.rowToID[row], true
}

// Len returns the number of mapped movies.
func (m *IndexMap) Len() int { return len(m.rowToID) }

// IDs returns the movie IDs in row order.
func (m *IndexMap) IDs() []int {
	out := make([]int, len(m.rowToID))
	copy(out, m.rowToID)
	return out
}

func indexMapFromIDs(ids []int) (*IndexMap, error) {
	m := &IndexMap{
		idToRow: make(map[int]int, len(ids)),
		rowToID: make([]int, len(ids)),
	}
	for row, id := range ids {
		if prev, ok := m.idToRow[id]; ok {
			return nil, fmt.Errorf("duplicate movie id %d at rows %d and %d", id, prev, row)
		}
		m.idToRow[id] = row
		m.rowToID[row] = id
	}
	return m, nil
}
