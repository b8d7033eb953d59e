package core

import (
	"time"

	"github.com/elmehdi/phishmail/internal/textproc"
)

// Email represents an email message submitted for analysis
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
	Headers map[string][]string
}

// Verdict is the human-facing classification of an analyzed email
type Verdict string

const (
	VerdictLegitimate Verdict = "LEGITIMATE"
	VerdictSuspect    Verdict = "SUSPECT"
	VerdictFraudulent Verdict = "FRAUDULENT"
)

// Prediction codes for each verdict
const (
	PredictionLegitimate = 0
	PredictionFraudulent = 1
	PredictionSuspect    = -1
)

// PredictionVerdict maps a numeric prediction code to its verdict
func PredictionVerdict(prediction int) Verdict {
	switch prediction {
	case PredictionFraudulent:
		return VerdictFraudulent
	case PredictionSuspect:
		return VerdictSuspect
	default:
		return VerdictLegitimate
	}
}

// ScoreBundle is the fused result of the content and URL classifiers.
// It is created once by the fusion engine and never mutated.
type ScoreBundle struct {
	EmailProba      float64
	PerURLProbas    []float64
	FinalScore      float64
	FinalPrediction int
	Verdict         Verdict
}

// URLStats aggregates the per-URL probabilities for reporting
type URLStats struct {
	Count         int
	PhishingCount int
	PhishingRatio float64
	MaxScore      float64
	MeanScore     float64
	StdScore      float64
}

// AnalysisResult carries everything an analysis call produced: the fused
// scores, the signals extracted from the raw text, the URLs that were
// actually scored and the aggregate URL statistics.
type AnalysisResult struct {
	Bundle     ScoreBundle
	Signals    textproc.EmailSignals
	ScoredURLs []string
	URLStats   URLStats
	AnalyzedAt time.Time
}

// AnalyzedEmail is a persisted analysis record
type AnalyzedEmail struct {
	ID              string
	Sender          string
	Subject         string
	Body            string
	Verdict         Verdict
	Report          string
	FinalScore      float64
	FinalPrediction int
	URLs            []string
	CreatedAt       time.Time
}

// WeightedFeature is a model feature paired with its learned weight or
// importance, used only for report introspection.
type WeightedFeature struct {
	Name   string
	Weight float64
}
