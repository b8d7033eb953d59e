// Package report renders the human-readable justification for an analysis
// result. The report is display-only: nothing downstream may parse it back,
// the structured fields on core.AnalysisResult exist for that.
package report

import (
	"fmt"
	"strings"

	"github.com/elmehdi/phishmail/internal/core"
)

const (
	topContentFeatures = 10
	topURLFeatures     = 5
)

// Generator assembles the ordered textual explanation from a fused result
// and the introspection the two classifiers expose
type Generator struct {
	content core.ContentClassifier
	urls    core.URLClassifier
}

// NewGenerator creates a report generator
func NewGenerator(content core.ContentClassifier, urls core.URLClassifier) *Generator {
	return &Generator{content: content, urls: urls}
}

// Render produces the full report text. Output is deterministic for a
// given result.
func (g *Generator) Render(result *core.AnalysisResult) string {
	return strings.Join(g.Lines(result), "\n")
}

// Lines produces the report as an ordered sequence of lines
func (g *Generator) Lines(result *core.AnalysisResult) []string {
	var lines []string

	lines = append(lines, "=== Global analysis report ===")
	lines = append(lines, fmt.Sprintf("Phishing probability of the email (content model) : %.4f", result.Bundle.EmailProba))
	lines = append(lines, fmt.Sprintf("Number of URLs detected in the email              : %d", len(result.Signals.RawURLs)))

	lines = append(lines, g.urlScoreLines(result)...)
	lines = append(lines, "", g.explanation(result))
	lines = append(lines, g.metaLines(result)...)
	lines = append(lines, g.contentFeatureLines(result)...)
	lines = append(lines, g.urlStatLines(result)...)
	lines = append(lines, g.urlImportanceLines(result)...)

	return lines
}

func (g *Generator) urlScoreLines(result *core.AnalysisResult) []string {
	if len(result.Signals.RawURLs) == 0 {
		return []string{"No URLs detected in the email."}
	}

	lines := []string{"Individual scores of the detected URLs:"}
	for i, url := range result.ScoredURLs {
		lines = append(lines, fmt.Sprintf("  %d. %s -> phishing score: %.4f", i+1, url, result.Bundle.PerURLProbas[i]))
	}
	return lines
}

// explanation is the one-paragraph causal summary keyed off the final
// prediction and which evidence dominated
func (g *Generator) explanation(result *core.AnalysisResult) string {
	switch result.Bundle.FinalPrediction {
	case core.PredictionFraudulent:
		if result.URLStats.PhishingCount > 0 {
			return "The phishing prediction is mainly due to one or more malicious URLs detected in the email."
		}
		return "The phishing prediction is mainly due to the content of the email."
	case core.PredictionLegitimate:
		return "The email is considered legitimate."
	default:
		return "The email is suspicious and requires manual review."
	}
}

func (g *Generator) metaLines(result *core.AnalysisResult) []string {
	signals := result.Signals
	return []string{
		"",
		"=== Characteristics of the analyzed email ===",
		" - URLs present in the email : " + yesNo(signals.HasURL),
		" - HTML content detected : " + yesNo(signals.HasHTML),
		" - Attachments detected : " + yesNo(signals.HasAttachment),
		" - Suspicious phrases detected : " + yesNo(signals.Suspicious),
		fmt.Sprintf(" - Email length in characters : %d", signals.CharLength),
		fmt.Sprintf(" - Word count : %d", signals.WordCount),
		fmt.Sprintf(" - Number of scored URLs : %d", result.URLStats.Count),
		" - Reply indicator : " + yesNo(signals.IsReply),
	}
}

// contentFeatureLines lists the content-model vocabulary terms with the
// strongest learned weights for the predicted class
func (g *Generator) contentFeatureLines(result *core.AnalysisResult) []string {
	var lines []string
	var features []core.WeightedFeature

	if result.Bundle.FinalPrediction == core.PredictionLegitimate {
		lines = append(lines, "", "Features most indicative of a legitimate email:")
		features = g.content.TopFeatures(topContentFeatures, false)
	} else {
		lines = append(lines, "", "Features most indicative of phishing:")
		features = g.content.TopFeatures(topContentFeatures, true)
	}

	for _, feature := range features {
		lines = append(lines, " - "+feature.Name)
	}
	return lines
}

func (g *Generator) urlStatLines(result *core.AnalysisResult) []string {
	if len(result.Signals.RawURLs) == 0 {
		return nil
	}

	stats := result.URLStats
	return []string{
		"",
		"=== Detailed URL statistics ===",
		fmt.Sprintf("Total number of scored URLs       : %d", stats.Count),
		fmt.Sprintf("Number of suspicious URLs         : %d", stats.PhishingCount),
		fmt.Sprintf("Ratio of suspicious URLs          : %.2f", stats.PhishingRatio),
		fmt.Sprintf("Maximum URL score                 : %.4f", stats.MaxScore),
		fmt.Sprintf("Mean URL score                    : %.4f", stats.MeanScore),
		fmt.Sprintf("Standard deviation of URL scores  : %.4f", stats.StdScore),
	}
}

func (g *Generator) urlImportanceLines(result *core.AnalysisResult) []string {
	if result.URLStats.Count == 0 {
		return nil
	}

	lines := []string{"", "Most important URL features indicating phishing:"}
	for _, feature := range g.urls.TopImportances(topURLFeatures) {
		lines = append(lines, fmt.Sprintf("  - %s: importance %.4f (%s)",
			feature.Name, feature.Weight, DescribeFeature(feature.Name)))
	}
	return lines
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
