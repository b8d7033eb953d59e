package textproc

// EmailSignals holds the meta features extracted from the raw
// (pre-normalization) email text alongside the cleaned text used for
// content vectorization. Derived once per request and immutable after.
type EmailSignals struct {
	CleanedText   string
	Suspicious    bool
	HasURL        bool
	HasAttachment bool
	HasHTML       bool
	IsReply       bool
	WordCount     int
	CharLength    int
	RawURLs       []string
}

// MetaVector returns the numeric meta-feature row appended to the content
// TF-IDF vector, in the column order the content model was trained on.
func (s EmailSignals) MetaVector() []float64 {
	return []float64{
		boolToFloat(s.HasURL),
		boolToFloat(s.HasHTML),
		boolToFloat(s.HasAttachment),
		boolToFloat(s.Suspicious),
		float64(s.CharLength),
		float64(s.WordCount),
		float64(len(s.RawURLs)),
		boolToFloat(s.IsReply),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
