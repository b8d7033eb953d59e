package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmehdi/phishmail/internal/core"
	"github.com/elmehdi/phishmail/internal/textproc"
)

type fakeContent struct{}

func (fakeContent) PredictProba(string, []float64) (float64, error) { return 0, nil }

func (fakeContent) TopFeatures(n int, positive bool) []core.WeightedFeature {
	if positive {
		return []core.WeightedFeature{{Name: "password", Weight: 2.1}, {Name: "verify", Weight: 1.7}}
	}
	return []core.WeightedFeature{{Name: "meeting", Weight: -1.9}}
}

type fakeURLModel struct{}

func (fakeURLModel) PredictProba([]float64) (float64, error) { return 0, nil }

func (fakeURLModel) TopImportances(n int) []core.WeightedFeature {
	return []core.WeightedFeature{
		{Name: "URLLength", Weight: 0.31},
		{Name: "MadeUpFeature", Weight: 0.11},
	}
}

func fraudulentResult() *core.AnalysisResult {
	return &core.AnalysisResult{
		Bundle: core.ScoreBundle{
			EmailProba:      0.87,
			PerURLProbas:    []float64{0.93},
			FinalScore:      0.93,
			FinalPrediction: core.PredictionFraudulent,
			Verdict:         core.VerdictFraudulent,
		},
		Signals: textproc.EmailSignals{
			HasURL:     true,
			Suspicious: true,
			CharLength: 98,
			WordCount:  14,
			RawURLs:    []string{"http://malicious-login.tk/verify"},
		},
		ScoredURLs: []string{"http://malicious-login.tk/verify"},
		URLStats: core.URLStats{
			Count:         1,
			PhishingCount: 1,
			PhishingRatio: 1,
			MaxScore:      0.93,
			MeanScore:     0.93,
		},
	}
}

func legitimateResult() *core.AnalysisResult {
	return &core.AnalysisResult{
		Bundle: core.ScoreBundle{
			EmailProba:      0.05,
			FinalScore:      0.025,
			FinalPrediction: core.PredictionLegitimate,
			Verdict:         core.VerdictLegitimate,
		},
		Signals: textproc.EmailSignals{
			CharLength: 36,
			WordCount:  7,
		},
	}
}

func TestRenderFraudulentReport(t *testing.T) {
	g := NewGenerator(fakeContent{}, fakeURLModel{})
	text := g.Render(fraudulentResult())

	assert.Contains(t, text, "=== Global analysis report ===")
	assert.Contains(t, text, "Phishing probability of the email (content model) : 0.8700")
	assert.Contains(t, text, "Number of URLs detected in the email              : 1")
	assert.Contains(t, text, "1. http://malicious-login.tk/verify -> phishing score: 0.9300")
	assert.Contains(t, text, "mainly due to one or more malicious URLs")
	assert.Contains(t, text, " - URLs present in the email : Yes")
	assert.Contains(t, text, " - Suspicious phrases detected : Yes")
	assert.Contains(t, text, "Features most indicative of phishing:")
	assert.Contains(t, text, " - password")
	assert.Contains(t, text, "Ratio of suspicious URLs          : 1.00")
	assert.Contains(t, text, "Maximum URL score                 : 0.9300")
	assert.Contains(t, text, "Most important URL features indicating phishing:")
	assert.Contains(t, text, "URLLength: importance 0.3100")
}

func TestRenderLegitimateReport(t *testing.T) {
	g := NewGenerator(fakeContent{}, fakeURLModel{})
	text := g.Render(legitimateResult())

	assert.Contains(t, text, "No URLs detected in the email.")
	assert.Contains(t, text, "The email is considered legitimate.")
	assert.Contains(t, text, "Features most indicative of a legitimate email:")
	assert.Contains(t, text, " - meeting")
	assert.NotContains(t, text, "=== Detailed URL statistics ===")
	assert.NotContains(t, text, "Most important URL features")
}

func TestRenderSuspectReport(t *testing.T) {
	result := legitimateResult()
	result.Bundle.FinalPrediction = core.PredictionSuspect
	result.Bundle.Verdict = core.VerdictSuspect

	g := NewGenerator(fakeContent{}, fakeURLModel{})
	text := g.Render(result)

	assert.Contains(t, text, "suspicious and requires manual review")
	// Suspect verdicts explain with the phishing-indicative terms
	assert.Contains(t, text, "Features most indicative of phishing:")
}

func TestRenderSectionOrder(t *testing.T) {
	g := NewGenerator(fakeContent{}, fakeURLModel{})
	lines := g.Lines(fraudulentResult())

	indexOf := func(substr string) int {
		for i, line := range lines {
			if strings.Contains(line, substr) {
				return i
			}
		}
		t.Fatalf("line containing %q not found", substr)
		return -1
	}

	header := indexOf("Global analysis report")
	scores := indexOf("Individual scores")
	explanation := indexOf("mainly due to")
	meta := indexOf("Characteristics of the analyzed email")
	content := indexOf("Features most indicative")
	stats := indexOf("Detailed URL statistics")
	importances := indexOf("Most important URL features")

	require.True(t, header < scores)
	require.True(t, scores < explanation)
	require.True(t, explanation < meta)
	require.True(t, meta < content)
	require.True(t, content < stats)
	require.True(t, stats < importances)
}

func TestRenderDeterministic(t *testing.T) {
	g := NewGenerator(fakeContent{}, fakeURLModel{})
	result := fraudulentResult()
	assert.Equal(t, g.Render(result), g.Render(result))
}

func TestDescribeFeature(t *testing.T) {
	assert.NotEqual(t, PlaceholderDescription, DescribeFeature("URLLength"))
	assert.Equal(t, PlaceholderDescription, DescribeFeature("MadeUpFeature"))
}

func TestRenderUsesPlaceholderForUnknownFeatures(t *testing.T) {
	g := NewGenerator(fakeContent{}, fakeURLModel{})
	text := g.Render(fraudulentResult())
	assert.Contains(t, text, "MadeUpFeature: importance 0.1100 ("+PlaceholderDescription+")")
}
