package core

import (
	"context"
)

// ContentClassifier scores the textual content of an email. Implementations
// wrap a pretrained vectorizer and classifier and must be safe for
// concurrent use once loaded.
type ContentClassifier interface {
	// PredictProba returns the phishing probability for the cleaned email
	// text combined with its numeric meta features
	PredictProba(cleanedText string, meta []float64) (float64, error)

	// TopFeatures returns the n features with the largest positive
	// (phishing-indicative) or most negative (legitimate-indicative)
	// learned coefficients
	TopFeatures(n int, positive bool) []WeightedFeature
}

// URLClassifier scores a single URL from its ordered feature vector
type URLClassifier interface {
	// PredictProba returns the phishing probability for a feature vector
	// aligned to the expected URL feature schema
	PredictProba(features []float64) (float64, error)

	// TopImportances returns the n features with the highest impurity-based
	// importance
	TopImportances(n int) []WeightedFeature
}

// EmailRepository persists analyzed emails. The core only hands results to
// it and has no knowledge of the backing store.
type EmailRepository interface {
	// Save stores an analyzed email
	Save(ctx context.Context, email *AnalyzedEmail) error

	// Get retrieves an analyzed email by id
	Get(ctx context.Context, id string) (*AnalyzedEmail, error)

	// List returns analyzed emails, newest first
	List(ctx context.Context) ([]*AnalyzedEmail, error)

	// Delete removes an analyzed email
	Delete(ctx context.Context, id string) error
}
