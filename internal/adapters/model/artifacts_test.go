package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeValidArtifacts(t *testing.T, dir string) {
	t.Helper()
	writeArtifact(t, dir, ContentVectorizerFile,
		`{"vocabulary":{"account":0,"verify":1},"idf":[1.2,2.4],"sublinear_tf":true}`)
	writeArtifact(t, dir, ContentModelFile,
		`{"coefficients":[0.5,-0.2,1,1,1,1,1,1,1,1],"intercept":-0.3}`)
	writeArtifact(t, dir, URLVectorizerFile,
		`{"vocabulary":{"login":0},"idf":[1.5],"sublinear_tf":false}`)
	writeArtifact(t, dir, TLDEncoderFile,
		`{"classes":["com","net","tk"]}`)
	writeArtifact(t, dir, URLSchemaFile,
		`{"features":["URL","URLLength","IsHTTPS","label"]}`)
	writeArtifact(t, dir, URLModelFile,
		`{"trees":[{"nodes":[{"feature":0,"threshold":10,"left":1,"right":2},`+
			`{"feature":0,"threshold":0,"left":-1,"right":-1,"value":[8,2]},`+
			`{"feature":0,"threshold":0,"left":-1,"right":-1,"value":[1,4]}]}],`+
			`"feature_importances":[0.9,0.1]}`)
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)

	artifacts, err := LoadArtifacts(dir, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, artifacts.ContentVectorizer.NumFeatures())
	assert.Equal(t, 8, artifacts.ContentModel.MetaColumns())
	assert.Equal(t, []string{"URLLength", "IsHTTPS"}, artifacts.URLSchema.Names())
	assert.Equal(t, 2, artifacts.URLModel.NumFeatures())
	assert.Equal(t, 2, artifacts.TLDEncoder.Encode("tk"))
	assert.Equal(t, UnseenClass, artifacts.TLDEncoder.Encode("xyz"))

	proba, err := artifacts.URLModel.PredictProba([]float64{42, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, proba, 1e-9)
}

func TestLoadArtifactsMissingFileFailsFast(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, URLModelFile)))

	_, err := LoadArtifacts(dir, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), URLModelFile)
}

func TestLoadArtifactsCorruptJSONFailsFast(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	writeArtifact(t, dir, TLDEncoderFile, `{"classes":`)

	_, err := LoadArtifacts(dir, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), TLDEncoderFile)
}

func TestLoadArtifactsInconsistentModelFailsFast(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	// Fewer coefficients than vectorizer columns
	writeArtifact(t, dir, ContentModelFile, `{"coefficients":[0.5],"intercept":0}`)

	_, err := LoadArtifacts(dir, zap.NewNop())
	assert.Error(t, err)
}
