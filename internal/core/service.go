package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/textproc"
	"github.com/elmehdi/phishmail/internal/urlfeat"
)

// AnalyzerService is the core phishing analysis pipeline: it extracts the
// email signals, scores the content, scores each detected URL and fuses
// both signals into a verdict. The service is stateless apart from the
// read-only model artifacts, so concurrent calls are safe.
type AnalyzerService struct {
	content   ContentClassifier
	urlModel  URLClassifier
	extractor *urlfeat.Extractor
	schema    *urlfeat.Schema
	policy    FusionPolicy
	logger    *zap.Logger
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(
	content ContentClassifier,
	urlModel URLClassifier,
	extractor *urlfeat.Extractor,
	schema *urlfeat.Schema,
	policy FusionPolicy,
	logger *zap.Logger,
) *AnalyzerService {
	return &AnalyzerService{
		content:   content,
		urlModel:  urlModel,
		extractor: extractor,
		schema:    schema,
		policy:    policy,
		logger:    logger,
	}
}

// AnalyzeEmail runs the full pipeline for one email. It always returns a
// verdict for well-formed text input: per-URL failures are skipped, and an
// email without usable URLs is scored on content alone.
func (s *AnalyzerService) AnalyzeEmail(ctx context.Context, email *Email) (*AnalysisResult, error) {
	signals := textproc.ExtractSignals(email.Subject, email.Body)

	emailProba, err := s.content.PredictProba(signals.CleanedText, signals.MetaVector())
	if err != nil {
		return nil, err
	}

	scoredURLs, urlProbas := s.scoreURLs(signals.RawURLs)

	bundle := s.policy.Fuse(emailProba, urlProbas)
	stats := ComputeURLStats(urlProbas, s.policy.URLPhishingCutoff)

	s.logger.Debug("Email analyzed",
		zap.Float64("email_proba", emailProba),
		zap.Int("urls_detected", len(signals.RawURLs)),
		zap.Int("urls_scored", stats.Count),
		zap.Float64("final_score", bundle.FinalScore),
		zap.String("verdict", string(bundle.Verdict)))

	return &AnalysisResult{
		Bundle:     bundle,
		Signals:    signals,
		ScoredURLs: scoredURLs,
		URLStats:   stats,
		AnalyzedAt: time.Now(),
	}, nil
}

// scoreURLs extracts and classifies every detected URL. A URL whose feature
// vector does not match the expected schema, or whose classification fails,
// is silently dropped from scoring; failure is per-URL, never per-request.
func (s *AnalyzerService) scoreURLs(rawURLs []string) ([]string, []float64) {
	var scored []string
	var probas []float64

	for _, rawURL := range rawURLs {
		vector := s.extractor.Extract(rawURL)
		row, ok := s.schema.Align(vector)
		if !ok {
			s.logger.Warn("Skipping URL with mismatched feature schema",
				zap.String("url", rawURL),
				zap.Int("produced", vector.Len()),
				zap.Int("expected", s.schema.Len()))
			continue
		}

		proba, err := s.urlModel.PredictProba(row)
		if err != nil {
			s.logger.Warn("Skipping URL that failed classification",
				zap.String("url", rawURL),
				zap.Error(err))
			continue
		}

		scored = append(scored, rawURL)
		probas = append(probas, proba)
	}

	return scored, probas
}
