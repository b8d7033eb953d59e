package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVectorizer(sublinear bool) *TFIDFVectorizer {
	return NewTFIDFVectorizer(
		map[string]int{"account": 0, "verify": 1, "password": 2},
		[]float64{1.0, 2.0, 3.0},
		sublinear,
	)
}

func TestTransformUnknownTermsYieldZeroRow(t *testing.T) {
	v := newTestVectorizer(false)
	assert.Equal(t, []float64{0, 0, 0}, v.Transform("completely unrelated words"))
	assert.Equal(t, []float64{0, 0, 0}, v.Transform(""))
}

func TestTransformL2Normalizes(t *testing.T) {
	v := newTestVectorizer(false)
	row := v.Transform("verify account account")

	// tf(account)=2 idf=1, tf(verify)=1 idf=2 -> (2, 2) normalized
	require.Len(t, row, 3)
	assert.InDelta(t, 2/math.Sqrt(8), row[0], 1e-9)
	assert.InDelta(t, 2/math.Sqrt(8), row[1], 1e-9)
	assert.Zero(t, row[2])

	norm := 0.0
	for _, x := range row {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestTransformSublinearTF(t *testing.T) {
	v := newTestVectorizer(true)
	row := v.Transform("account account account")

	// Single active column normalizes to 1 regardless of tf damping
	assert.InDelta(t, 1.0, row[0], 1e-9)
}

func TestTransformLowercasesAndTokenizes(t *testing.T) {
	v := newTestVectorizer(false)

	// Single-letter tokens never match; case is folded
	withUpper := v.Transform("VERIFY a b c")
	assert.Positive(t, withUpper[1])
}

func TestFeatureNamesOrderedByColumn(t *testing.T) {
	v := newTestVectorizer(false)
	assert.Equal(t, []string{"account", "verify", "password"}, v.FeatureNames())
	assert.Equal(t, 3, v.NumFeatures())
}
