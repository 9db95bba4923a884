package features

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorizer is a TF-IDF vectorizer over movie overviews. It builds a
// corpus-wide vocabulary of word n-grams and computes smoothed IDF values.
// Column order is lexical, never first-seen, so a refit of the same corpus
// reproduces the exact same layout.
type Vectorizer struct {
	maxFeatures int
	ngramMin    int
	ngramMax    int
	minDF       int

	vocabulary   map[string]int
	terms        []string
	idf          []float64
	fitted       bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewVectorizer creates an unfitted vectorizer. Out-of-range parameters fall
// back to the stock values (5000 features, 1-2 grams, min document frequency 1).
func NewVectorizer(maxFeatures, ngramMin, ngramMax, minDF int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 5000
	}
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	if minDF < 1 {
		minDF = 1
	}
	return &Vectorizer{
		maxFeatures:  maxFeatures,
		ngramMin:     ngramMin,
		ngramMax:     ngramMax,
		minDF:        minDF,
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Fit builds the vocabulary and IDF values from the whole corpus at once.
// Terms below the minimum document frequency are dropped; when more terms
// survive than maxFeatures, the most frequent ones win (ties lexical).
// A corpus with no usable text yields an empty vocabulary, not an error.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("empty corpus for tf-idf fit")
	}
	df := make(map[string]int)
	cf := make(map[string]int)
	for _, text := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.ngrams(text) {
			cf[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	candidates := make([]string, 0, len(df))
	for term, n := range df {
		if n >= v.minDF {
			candidates = append(candidates, term)
		}
	}
	if len(candidates) > v.maxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if cf[candidates[i]] != cf[candidates[j]] {
				return cf[candidates[i]] > cf[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:v.maxFeatures]
	}
	// Lexical ordering fixes the column layout.
	sort.Strings(candidates)
	v.terms = candidates
	v.vocabulary = make(map[string]int, len(candidates))
	v.idf = make([]float64, len(candidates))
	N := float64(len(docs))
	for i, term := range candidates {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+N)/(1+float64(df[term]))) + 1.0
	}
	v.fitted = true
	return nil
}

// Dimension returns the size of the text-feature block.
func (v *Vectorizer) Dimension() int { return len(v.terms) }

// Terms returns the vocabulary in column order.
func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF returns the IDF values in column order.
func (v *Vectorizer) IDF() []float64 {
	out := make([]float64, len(v.idf))
	copy(out, v.idf)
	return out
}

// Vector computes the L2-normalized TF-IDF vector for the given text.
// Text with no in-vocabulary terms yields the zero vector.
func (v *Vectorizer) Vector(text string) ([]float64, error) {
	if !v.fitted {
		return nil, errors.New("tf-idf vectorizer not fitted")
	}
	vec := make([]float64, len(v.terms))
	tf := make(map[int]int)
	total := 0
	for _, term := range v.ngrams(text) {
		if idx, ok := v.vocabulary[term]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// ngrams tokenizes the text (lowercased, stopwords removed) and expands the
// token stream into word n-grams within the configured span.
func (v *Vectorizer) ngrams(text string) []string {
	lower := strings.ToLower(text)
	raw := v.tokenPattern.FindAllString(lower, -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		tokens = append(tokens, t)
	}
	if len(tokens) == 0 {
		return nil
	}
	var out []string
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// restoreVectorizer rebuilds a fitted vectorizer from persisted state.
func restoreVectorizer(maxFeatures, ngramMin, ngramMax, minDF int, terms []string, idf []float64) *Vectorizer {
	v := NewVectorizer(maxFeatures, ngramMin, ngramMax, minDF)
	v.terms = terms
	v.idf = idf
	v.vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
	}
	v.fitted = true
	return v
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
