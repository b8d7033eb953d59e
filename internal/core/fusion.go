package core

import (
	"math"
)

// Default fusion thresholds
const (
	DefaultURLStrongThreshold = 0.7
	DefaultURLPhishingCutoff  = 0.6
	DefaultMidThreshold       = 0.4
	DefaultEmailThreshold     = 0.6
	DefaultAlpha              = 0.5
)

// FusionPolicy holds the thresholds that turn the two probability signals
// into a single verdict
type FusionPolicy struct {
	// URLStrong is the probability above which a single URL counts as
	// strong evidence on its own
	URLStrong float64

	// URLPhishingCutoff is the probability above which a URL counts as a
	// phishing URL in the ratio
	URLPhishingCutoff float64

	// Mid is the upper bound of the legitimate band (inclusive)
	Mid float64

	// EmailThreshold is the lower bound of the fraudulent band (inclusive)
	EmailThreshold float64

	// Alpha weights the content probability against the URL evidence
	Alpha float64
}

// DefaultFusionPolicy returns the reference fusion policy
func DefaultFusionPolicy() FusionPolicy {
	return FusionPolicy{
		URLStrong:         DefaultURLStrongThreshold,
		URLPhishingCutoff: DefaultURLPhishingCutoff,
		Mid:               DefaultMidThreshold,
		EmailThreshold:    DefaultEmailThreshold,
		Alpha:             DefaultAlpha,
	}
}

// Fuse combines the content probability with the per-URL probabilities into
// a ScoreBundle. Deterministic and pure: identical inputs always yield the
// same bundle. URL evidence overrides content evidence when a URL scores
// above both cutoffs; otherwise the two signals are blended and banded by
// the inclusive thresholds, leaving (Mid, EmailThreshold) as the only
// suspect band.
func (p FusionPolicy) Fuse(emailProba float64, urlProbas []float64) ScoreBundle {
	stats := ComputeURLStats(urlProbas, p.URLPhishingCutoff)

	hasStrongURL := false
	for _, proba := range urlProbas {
		if proba > p.URLStrong {
			hasStrongURL = true
			break
		}
	}

	probas := make([]float64, len(urlProbas))
	copy(probas, urlProbas)

	bundle := ScoreBundle{
		EmailProba:   emailProba,
		PerURLProbas: probas,
	}

	if stats.PhishingCount > 0 && hasStrongURL {
		bundle.FinalPrediction = PredictionFraudulent
		bundle.FinalScore = stats.MaxScore
		bundle.Verdict = VerdictFraudulent
		return bundle
	}

	score := p.Alpha*emailProba + (1-p.Alpha)*(stats.PhishingRatio+stats.MaxScore)/2
	bundle.FinalScore = score

	switch {
	case score >= p.EmailThreshold:
		bundle.FinalPrediction = PredictionFraudulent
	case score <= p.Mid:
		bundle.FinalPrediction = PredictionLegitimate
	default:
		bundle.FinalPrediction = PredictionSuspect
	}
	bundle.Verdict = PredictionVerdict(bundle.FinalPrediction)

	return bundle
}

// ComputeURLStats derives the aggregate URL statistics used both by the
// fusion formula and by the report. The standard deviation is the
// population deviation and stays 0 with fewer than two scores.
func ComputeURLStats(urlProbas []float64, phishingCutoff float64) URLStats {
	stats := URLStats{Count: len(urlProbas)}
	if stats.Count == 0 {
		return stats
	}

	sum := 0.0
	for _, proba := range urlProbas {
		if proba > phishingCutoff {
			stats.PhishingCount++
		}
		if proba > stats.MaxScore {
			stats.MaxScore = proba
		}
		sum += proba
	}
	stats.PhishingRatio = float64(stats.PhishingCount) / float64(stats.Count)
	stats.MeanScore = sum / float64(stats.Count)

	if stats.Count > 1 {
		variance := 0.0
		for _, proba := range urlProbas {
			diff := proba - stats.MeanScore
			variance += diff * diff
		}
		stats.StdScore = math.Sqrt(variance / float64(stats.Count))
	}

	return stats
}
