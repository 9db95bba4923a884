package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Basic(t *testing.T) {
	path := writeCSV(t, `movie_id,title,genres,overview,language,rating
1,Movie A,"Action, Drama",Overview A,en,8.5
2,Movie B,Comedy,Overview B,en,7.2
`)
	movies, err := NewLoader(path, zerolog.Nop()).Load()
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, 1, movies[0].ID)
	assert.Equal(t, "Movie A", movies[0].Title)
	assert.Equal(t, []string{"Action", "Drama"}, movies[0].Genres)
	assert.Equal(t, "en", movies[0].Language)
	assert.Equal(t, 8.5, movies[0].Rating)
}

func TestLoader_MissingColumns(t *testing.T) {
	path := writeCSV(t, "movie_id,title\n1,Movie A\n")
	_, err := NewLoader(path, zerolog.Nop()).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestLoader_FileNotFound(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), zerolog.Nop()).Load()
	assert.Error(t, err)
}

func TestLoader_PipeSeparatedGenres(t *testing.T) {
	path := writeCSV(t, `movie_id,title,genres,overview,language,rating
1,Movie A,Action|Sci-Fi|Thriller,Overview,en,8.0
`)
	movies, err := NewLoader(path, zerolog.Nop()).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Sci-Fi", "Thriller"}, movies[0].Genres)
}

func TestLoader_Normalization(t *testing.T) {
	path := writeCSV(t, `movie_id,title,genres,overview,language,rating
1,Movie A,Drama,Overview,EN,15.0
2,Movie B,Drama,Overview,,not-a-number
3,,Drama,Overview,en,7.0
`)
	movies, err := NewLoader(path, zerolog.Nop()).Load()
	require.NoError(t, err)
	require.Len(t, movies, 3)

	// out-of-range rating resets, language lowercases
	assert.Equal(t, "en", movies[0].Language)
	assert.Equal(t, 0.0, movies[0].Rating)
	// unparsable rating and empty language fall back
	assert.Equal(t, 0.0, movies[1].Rating)
	assert.Equal(t, "unknown", movies[1].Language)
	// empty title gets the placeholder
	assert.Equal(t, "Unknown Title", movies[2].Title)
}

func TestLoader_DropsInvalidAndDuplicateIDs(t *testing.T) {
	path := writeCSV(t, `movie_id,title,genres,overview,language,rating
0,Zero,Drama,Overview,en,5.0
x,Bad,Drama,Overview,en,5.0
1,Movie A,Drama,Overview,en,5.0
1,Movie A Again,Drama,Overview,en,6.0
`)
	movies, err := NewLoader(path, zerolog.Nop()).Load()
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Movie A", movies[0].Title)
}

func TestLoader_EmptyData(t *testing.T) {
	path := writeCSV(t, "movie_id,title,genres,overview,language,rating\n")
	_, err := NewLoader(path, zerolog.Nop()).Load()
	assert.Error(t, err)
}
