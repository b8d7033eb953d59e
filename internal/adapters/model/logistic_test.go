package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogistic(t *testing.T) *LogisticModel {
	t.Helper()
	vectorizer := newTestVectorizer(false)
	// Three vectorizer columns plus two meta columns
	m, err := NewLogisticModel(vectorizer, []float64{1.5, -0.5, 2.0, 0.25, -1.0}, -0.1)
	require.NoError(t, err)
	return m
}

func TestNewLogisticModelRejectsShortCoefficients(t *testing.T) {
	vectorizer := newTestVectorizer(false)

	_, err := NewLogisticModel(vectorizer, []float64{1, 2, 3}, 0)
	assert.Error(t, err)
}

func TestLogisticPredictProba(t *testing.T) {
	m := newTestLogistic(t)

	proba, err := m.PredictProba("", []float64{1, 2})
	require.NoError(t, err)

	// z = intercept + 0.25*1 + (-1.0)*2 = -1.95
	want := 1 / (1 + math.Exp(1.95))
	assert.InDelta(t, want, proba, 1e-9)
}

func TestLogisticPredictProbaUsesTextColumns(t *testing.T) {
	m := newTestLogistic(t)

	low, err := m.PredictProba("", []float64{0, 0})
	require.NoError(t, err)
	high, err := m.PredictProba("password password", []float64{0, 0})
	require.NoError(t, err)

	// password carries a strongly positive coefficient
	assert.Greater(t, high, low)
	assert.GreaterOrEqual(t, low, 0.0)
	assert.LessOrEqual(t, high, 1.0)
}

func TestLogisticPredictProbaMetaMismatch(t *testing.T) {
	m := newTestLogistic(t)

	_, err := m.PredictProba("account", []float64{1})
	assert.Error(t, err)
	assert.Equal(t, 2, m.MetaColumns())
}

func TestLogisticTopFeatures(t *testing.T) {
	m := newTestLogistic(t)

	positive := m.TopFeatures(2, true)
	require.Len(t, positive, 2)
	assert.Equal(t, "password", positive[0].Name)
	assert.Equal(t, "account", positive[1].Name)

	negative := m.TopFeatures(1, false)
	require.Len(t, negative, 1)
	assert.Equal(t, "verify", negative[0].Name)

	// Requests beyond the vocabulary are clamped
	assert.Len(t, m.TopFeatures(10, true), 3)
}
