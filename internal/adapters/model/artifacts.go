package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/urlfeat"
)

// Stable artifact identifiers under the model directory
const (
	ContentVectorizerFile = "content_vectorizer.json"
	ContentModelFile      = "content_model.json"
	URLModelFile          = "url_model.json"
	URLVectorizerFile     = "url_vectorizer.json"
	TLDEncoderFile        = "tld_encoder.json"
	URLSchemaFile         = "url_schema.json"
)

// Artifacts bundles the pretrained models, vectorizers and encoders loaded
// once at process start. All members are immutable after load and safe for
// concurrent inference.
type Artifacts struct {
	ContentVectorizer *TFIDFVectorizer
	ContentModel      *LogisticModel
	URLModel          *ForestModel
	URLVectorizer     *TFIDFVectorizer
	TLDEncoder        *LabelEncoder
	URLSchema         *urlfeat.Schema
}

type vectorizerDoc struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Sublinear  bool           `json:"sublinear_tf"`
}

type logisticDoc struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

type forestDoc struct {
	Trees       []Tree    `json:"trees"`
	Importances []float64 `json:"feature_importances"`
}

type encoderDoc struct {
	Classes []string `json:"classes"`
}

type schemaDoc struct {
	Features []string `json:"features"`
}

// LoadArtifacts loads every pretrained artifact from dir. Loading is
// fail-fast: a missing or corrupt artifact aborts startup rather than
// degrading silently.
func LoadArtifacts(dir string, logger *zap.Logger) (*Artifacts, error) {
	var contentVec vectorizerDoc
	if err := readArtifact(dir, ContentVectorizerFile, &contentVec); err != nil {
		return nil, err
	}
	contentVectorizer := NewTFIDFVectorizer(contentVec.Vocabulary, contentVec.IDF, contentVec.Sublinear)

	var contentDoc logisticDoc
	if err := readArtifact(dir, ContentModelFile, &contentDoc); err != nil {
		return nil, err
	}
	contentModel, err := NewLogisticModel(contentVectorizer, contentDoc.Coefficients, contentDoc.Intercept)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", ContentModelFile, err)
	}

	var urlVec vectorizerDoc
	if err := readArtifact(dir, URLVectorizerFile, &urlVec); err != nil {
		return nil, err
	}
	urlVectorizer := NewTFIDFVectorizer(urlVec.Vocabulary, urlVec.IDF, urlVec.Sublinear)

	var encoder encoderDoc
	if err := readArtifact(dir, TLDEncoderFile, &encoder); err != nil {
		return nil, err
	}

	var schema schemaDoc
	if err := readArtifact(dir, URLSchemaFile, &schema); err != nil {
		return nil, err
	}
	urlSchema := urlfeat.NewSchema(schema.Features)

	var forest forestDoc
	if err := readArtifact(dir, URLModelFile, &forest); err != nil {
		return nil, err
	}
	urlModel, err := NewForestModel(forest.Trees, urlSchema.Names(), forest.Importances)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", URLModelFile, err)
	}

	logger.Info("Loaded model artifacts",
		zap.String("dir", dir),
		zap.Int("content_vocabulary", contentVectorizer.NumFeatures()),
		zap.Int("content_meta_columns", contentModel.MetaColumns()),
		zap.Int("url_features", urlSchema.Len()),
		zap.Int("url_trees", len(forest.Trees)),
		zap.Int("tld_classes", len(encoder.Classes)))

	return &Artifacts{
		ContentVectorizer: contentVectorizer,
		ContentModel:      contentModel,
		URLModel:          urlModel,
		URLVectorizer:     urlVectorizer,
		TLDEncoder:        NewLabelEncoder(encoder.Classes),
		URLSchema:         urlSchema,
	}, nil
}

func readArtifact(dir, name string, out interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}
	return nil
}
