package urlfeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaDropsIdentifierColumns(t *testing.T) {
	schema := NewSchema([]string{"URL", "Domain", "URLLength", "TLD", "IsHTTPS", "PathQuery", "label"})
	assert.Equal(t, []string{"URLLength", "IsHTTPS"}, schema.Names())
	assert.Equal(t, 2, schema.Len())
}

func TestNewSchemaDeduplicatesKeepingFirst(t *testing.T) {
	schema := NewSchema([]string{"URLLength", "IsHTTPS", "URLLength"})
	assert.Equal(t, []string{"URLLength", "IsHTTPS"}, schema.Names())
}

func TestSchemaAlign(t *testing.T) {
	schema := NewSchema([]string{"IsHTTPS", "URLLength"})

	v := NewFeatureVector()
	v.Set("URLLength", 42)
	v.Set("IsHTTPS", 1)
	v.Set("Extra", 7)

	row, ok := schema.Align(v)
	require.True(t, ok)
	// Extra produced features are ignored; order follows the schema
	assert.Equal(t, []float64{1, 42}, row)
}

func TestSchemaAlignMissingFeature(t *testing.T) {
	schema := NewSchema([]string{"IsHTTPS", "URLLength", "TokenCount"})

	v := NewFeatureVector()
	v.Set("IsHTTPS", 1)
	v.Set("URLLength", 42)

	row, ok := schema.Align(v)
	assert.False(t, ok)
	assert.Nil(t, row)
}

func TestFeatureVectorFirstOccurrenceWins(t *testing.T) {
	v := NewFeatureVector()
	v.Set("URLLength", 10)
	v.Set("URLLength", 99)

	value, ok := v.Get("URLLength")
	require.True(t, ok)
	assert.Equal(t, 10.0, value)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, []string{"URLLength"}, v.Names())
}
