package features

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"cinerec/internal/domain"
)

// Fingerprint computes a reproducible digest of a corpus snapshot: item
// count, sorted movie IDs, and a per-movie content digest. Reordering the
// corpus does not change the fingerprint; changing any field of any movie does.
func Fingerprint(corpus []domain.Movie) string {
	sorted := make([]domain.Movie, len(corpus))
	copy(sorted, corpus)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := sha256.New()
	fmt.Fprintf(h, "n=%d;", len(sorted))
	for _, m := range sorted {
		genres := make([]string, len(m.Genres))
		copy(genres, m.Genres)
		sort.Strings(genres)
		fmt.Fprintf(h, "%d\x1f%s\x1f%s\x1f%s\x1f%s\x1f%.6f\x1e",
			m.ID, m.Title, strings.Join(genres, ","), m.Overview, m.Language, m.Rating)
	}
	return hex.EncodeToString(h.Sum(nil))
}
