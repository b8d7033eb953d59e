package model

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Tokens are runs of two or more word characters, matching the trained
// vectorizer's token pattern
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// TFIDFVectorizer reproduces a fitted TF-IDF vectorizer: a fixed term to
// column mapping with per-term inverse document frequencies and l2 row
// normalization. Immutable after construction and safe for concurrent use.
type TFIDFVectorizer struct {
	vocabulary map[string]int
	idf        []float64
	sublinear  bool
	names      []string
}

// NewTFIDFVectorizer builds a vectorizer from a fitted vocabulary and idf
// weights
func NewTFIDFVectorizer(vocabulary map[string]int, idf []float64, sublinear bool) *TFIDFVectorizer {
	names := make([]string, len(idf))
	terms := make([]string, 0, len(vocabulary))
	for term := range vocabulary {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for _, term := range terms {
		if i := vocabulary[term]; i >= 0 && i < len(names) {
			names[i] = term
		}
	}
	return &TFIDFVectorizer{
		vocabulary: vocabulary,
		idf:        idf,
		sublinear:  sublinear,
		names:      names,
	}
}

// NumFeatures returns the number of output columns
func (v *TFIDFVectorizer) NumFeatures() int {
	return len(v.idf)
}

// FeatureNames returns the vocabulary terms ordered by column index
func (v *TFIDFVectorizer) FeatureNames() []string {
	return v.names
}

// Transform maps a text to its dense TF-IDF row. Text with no known terms
// yields an all-zero row.
func (v *TFIDFVectorizer) Transform(text string) []float64 {
	row := make([]float64, len(v.idf))

	counts := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if i, ok := v.vocabulary[token]; ok && i < len(row) {
			counts[i]++
		}
	}

	norm := 0.0
	for i, tf := range counts {
		if v.sublinear {
			tf = 1 + math.Log(tf)
		}
		weighted := tf * v.idf[i]
		row[i] = weighted
		norm += weighted * weighted
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range counts {
			row[i] /= norm
		}
	}

	return row
}
