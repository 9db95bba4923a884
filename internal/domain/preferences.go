package domain

import "fmt"

// UserPreferences holds the soft preference signals used to re-rank similarity
// candidates. Values are per request and immutable; the zero value plus
// DefaultPreferences weights leaves every similarity score untouched.
type UserPreferences struct {
	PreferredGenres    []string
	PreferredLanguages []string
	GenreWeight        float64
	LanguageWeight     float64
	MinRating          float64
}

// DefaultPreferences returns preferences with the stock weights and no
// preferred genres or languages. Applying them is a no-op re-rank.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		GenreWeight:    0.3,
		LanguageWeight: 0.2,
		MinRating:      0,
	}
}

// Validate rejects negative weights before any computation runs.
func (p UserPreferences) Validate() error {
	if p.GenreWeight < 0 {
		return fmt.Errorf("%w: genre_weight must be >= 0, got %g", ErrInvalidConfig, p.GenreWeight)
	}
	if p.LanguageWeight < 0 {
		return fmt.Errorf("%w: language_weight must be >= 0, got %g", ErrInvalidConfig, p.LanguageWeight)
	}
	return nil
}
