package urlfeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedVectorizer struct {
	columns []float64
}

func (f *fixedVectorizer) Transform(text string) []float64 { return f.columns }
func (f *fixedVectorizer) NumFeatures() int                { return len(f.columns) }

type fixedTLDEncoder struct {
	classes map[string]int
}

func (f *fixedTLDEncoder) Encode(tld string) int {
	if code, ok := f.classes[tld]; ok {
		return code
	}
	return -1
}

func newTestExtractor(tfidf []float64) *Extractor {
	return NewExtractor(
		&fixedVectorizer{columns: tfidf},
		&fixedTLDEncoder{classes: map[string]int{"com": 3, "tk": 9}},
	)
}

func featureOf(t *testing.T, v *FeatureVector, name string) float64 {
	t.Helper()
	value, ok := v.Get(name)
	require.True(t, ok, "missing feature %s", name)
	return value
}

func TestExtractSuspiciousURL(t *testing.T) {
	extractor := newTestExtractor([]float64{0.5, 0.25})
	v := extractor.Extract("http://malicious-login.tk/verify")

	assert.Equal(t, 1.0, featureOf(t, v, "HasHyphenInDomain"))
	assert.Equal(t, 1.0, featureOf(t, v, "SuspiciousTLD"))
	assert.Equal(t, 1.0, featureOf(t, v, "Login"))
	assert.Equal(t, 0.0, featureOf(t, v, "Update"))
	assert.Equal(t, 0.0, featureOf(t, v, "Pay"))
	assert.Equal(t, 1.0, featureOf(t, v, "SuspiciousCount"))
	assert.Equal(t, 9.0, featureOf(t, v, "TLD_encoded"))
	assert.Equal(t, 0.0, featureOf(t, v, "IsHTTPS"))
	assert.Equal(t, 1.0, featureOf(t, v, "CountDots"))
	assert.Equal(t, float64(len("http://malicious-login.tk/verify")), featureOf(t, v, "URLLength"))
	assert.Equal(t, float64(len("/verify")), featureOf(t, v, "PathLength"))
	assert.Equal(t, 0.5, featureOf(t, v, "TFIDF_0"))
	assert.Equal(t, 0.25, featureOf(t, v, "TFIDF_1"))
}

func TestExtractBenignURL(t *testing.T) {
	extractor := newTestExtractor([]float64{0})
	v := extractor.Extract("https://docs.example.com/guide")

	assert.Equal(t, 1.0, featureOf(t, v, "IsHTTPS"))
	assert.Equal(t, 0.0, featureOf(t, v, "HasHyphenInDomain"))
	assert.Equal(t, 0.0, featureOf(t, v, "SuspiciousTLD"))
	assert.Equal(t, 0.0, featureOf(t, v, "SuspiciousCount"))
	assert.Equal(t, 3.0, featureOf(t, v, "TLD_encoded"))
	assert.Equal(t, 1.0, featureOf(t, v, "NoOfSubDomain"))
}

func TestExtractUnseenTLDSentinel(t *testing.T) {
	extractor := newTestExtractor([]float64{0})
	v := extractor.Extract("http://host.example.org/")
	assert.Equal(t, -1.0, featureOf(t, v, "TLD_encoded"))
}

func TestExtractHomoglyphs(t *testing.T) {
	extractor := newTestExtractor([]float64{0})
	v := extractor.Extract("http://paypa1.com/login")

	assert.Equal(t, 1.0, featureOf(t, v, "HasHomoglyphs"))
	assert.Equal(t, 1.0, featureOf(t, v, "NumHomoglyphs"))
	assert.Equal(t, 1.0, featureOf(t, v, "HasSpecialCharInDomain"))
}

func TestExtractQueryCharacterCounts(t *testing.T) {
	extractor := newTestExtractor([]float64{0})
	v := extractor.Extract("http://example.com/a?x=1&y=2")

	assert.Equal(t, 2.0, featureOf(t, v, "NoOfEqualsInURL"))
	assert.Equal(t, 1.0, featureOf(t, v, "NoOfQMarkInURL"))
	assert.Equal(t, 1.0, featureOf(t, v, "NoOfAmpersandInURL"))
	assert.Equal(t, 2.0, featureOf(t, v, "NoOfDegitsInURL"))
}

func TestExtractObfuscation(t *testing.T) {
	extractor := newTestExtractor([]float64{0})

	v := extractor.Extract("http://user@example.com/%41%42")
	assert.Equal(t, 1.0, featureOf(t, v, "HasObfuscation"))

	clean := extractor.Extract("http://example.com/plain")
	assert.Equal(t, 0.0, featureOf(t, clean, "HasObfuscation"))
}

func TestExtractExecutableSuffix(t *testing.T) {
	extractor := newTestExtractor([]float64{0})

	v := extractor.Extract("http://example.com/payload.exe")
	assert.Equal(t, 1.0, featureOf(t, v, "EndsWithExecutable"))

	clean := extractor.Extract("http://example.com/page.html")
	assert.Equal(t, 0.0, featureOf(t, clean, "EndsWithExecutable"))
}

func TestExtractEmptyTransformZeroFills(t *testing.T) {
	extractor := NewExtractor(
		&fixedVectorizer{columns: nil},
		&fixedTLDEncoder{},
	)
	// NumFeatures is 0 here, so no TFIDF columns at all
	v := extractor.Extract("http://example.com/")
	for _, name := range v.Names() {
		assert.NotContains(t, name, "TFIDF")
	}
}

func TestExtractNeverFails(t *testing.T) {
	extractor := newTestExtractor([]float64{0})

	for _, raw := range []string{"", "not a url", "http://", "::::", "http://%zz"} {
		v := extractor.Extract(raw)
		assert.NotZero(t, v.Len(), "input %q", raw)
	}
}

func TestSplitURL(t *testing.T) {
	tests := []struct {
		raw       string
		domain    string
		tld       string
		subdomain string
	}{
		{"http://malicious-login.tk/verify", "malicious-login", "tk", ""},
		{"https://docs.example.com/guide", "example", "com", "docs"},
		{"http://a.b.example.co.uk/", "example", "co.uk", "a.b"},
		{"example.com", "example", "com", ""},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			domain, tld, subdomain := SplitURL(tt.raw)
			assert.Equal(t, tt.domain, domain)
			assert.Equal(t, tt.tld, tld)
			assert.Equal(t, tt.subdomain, subdomain)
		})
	}
}

func TestPathQuery(t *testing.T) {
	assert.Equal(t, "/a?x=1", PathQuery("http://example.com/a?x=1"))
	assert.Equal(t, "/a", PathQuery("http://example.com/a"))
	assert.Equal(t, "", PathQuery("http://example.com"))
}
