package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/elmehdi/phishmail/internal/core"
)

// LogisticModel is the content classifier: a fitted logistic regression
// over the content TF-IDF columns followed by the numeric meta columns.
// It implements core.ContentClassifier.
type LogisticModel struct {
	vectorizer   *TFIDFVectorizer
	coefficients []float64
	intercept    float64
}

// NewLogisticModel wraps a fitted vectorizer and coefficient vector. The
// coefficients must cover every vectorizer column plus at least one meta
// column.
func NewLogisticModel(vectorizer *TFIDFVectorizer, coefficients []float64, intercept float64) (*LogisticModel, error) {
	if len(coefficients) <= vectorizer.NumFeatures() {
		return nil, fmt.Errorf("content model has %d coefficients for %d vectorizer columns",
			len(coefficients), vectorizer.NumFeatures())
	}
	return &LogisticModel{
		vectorizer:   vectorizer,
		coefficients: coefficients,
		intercept:    intercept,
	}, nil
}

// MetaColumns returns how many meta features the model expects after the
// vectorizer columns
func (m *LogisticModel) MetaColumns() int {
	return len(m.coefficients) - m.vectorizer.NumFeatures()
}

// PredictProba returns the phishing probability for the cleaned text and
// its meta features
func (m *LogisticModel) PredictProba(cleanedText string, meta []float64) (float64, error) {
	if len(meta) != m.MetaColumns() {
		return 0, fmt.Errorf("content model expects %d meta features, got %d", m.MetaColumns(), len(meta))
	}

	z := m.intercept
	for i, value := range m.vectorizer.Transform(cleanedText) {
		z += m.coefficients[i] * value
	}
	offset := m.vectorizer.NumFeatures()
	for i, value := range meta {
		z += m.coefficients[offset+i] * value
	}

	return 1 / (1 + math.Exp(-z)), nil
}

// TopFeatures ranks the vectorizer vocabulary by learned coefficient and
// returns the n most phishing-indicative (positive) or most
// legitimate-indicative (negative) terms
func (m *LogisticModel) TopFeatures(n int, positive bool) []core.WeightedFeature {
	names := m.vectorizer.FeatureNames()
	features := make([]core.WeightedFeature, len(names))
	for i, name := range names {
		features[i] = core.WeightedFeature{Name: name, Weight: m.coefficients[i]}
	}

	sort.SliceStable(features, func(i, j int) bool {
		if positive {
			return features[i].Weight > features[j].Weight
		}
		return features[i].Weight < features[j].Weight
	})

	if n > len(features) {
		n = len(features)
	}
	return features[:n]
}
