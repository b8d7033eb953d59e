package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    string
	}{
		{
			name:    "phishing text with url",
			subject: "Important: Update Your Account",
			body:    "Please verify your account at http://malicious-login.tk/verify",
			want:    "important update account verify account",
		},
		{
			name:    "benign text",
			subject: "Hi",
			body:    "Are we still on for lunch tomorrow?",
			want:    "hi lunch tomorrow",
		},
		{
			name:    "empty input",
			subject: "",
			body:    "",
			want:    "",
		},
		{
			name:    "digits and line breaks",
			subject: "Invoice",
			body:    "Amount due:\r\n1250 dollars\\today",
			want:    "invoice dollar today",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.subject, tt.body))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	cleaned := Normalize("Important: Update Your Account",
		"Please verify your account at http://malicious-login.tk/verify")
	assert.Equal(t, cleaned, Normalize("", cleaned))
}

func TestNormalizeStripsAccents(t *testing.T) {
	got := Normalize("", "vérifiez café sécurisé")
	assert.Equal(t, "verifiez cafe securise", got)
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<html><body><p>Click here</p><script>alert(1)</script></body></html>")
	assert.Contains(t, got, "Click here")

	// Plain text passes through
	assert.Equal(t, "no markup at all", StripHTML("no markup at all"))
}

func TestRemoveURLs(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain scheme", "go to http://evil.example/steal right away"},
		{"www prefix", "visit www.evil-site.xyz please"},
		{"spaced scheme", "open http : / / evil now"},
		{"bare domain", "more at example . com thanks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveURLs(tt.in)
			assert.NotContains(t, got, "http")
			assert.NotContains(t, got, "www")
			assert.NotContains(t, got, ".com")
			assert.NotContains(t, got, "evil")
		})
	}
}

func TestRemoveAttachments(t *testing.T) {
	got := RemoveAttachments("see attached invoice.pdf and mail bob@example.test soon")
	assert.NotContains(t, got, "invoice.pdf")
	assert.NotContains(t, got, "bob@example.test")
	assert.Contains(t, got, "soon")
}

func TestLemmatize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"running", "run"},
		{"ran", "run"},
		{"verified", "verify"},
		{"companies", "company"},
		{"watches", "watch"},
		{"passes", "pass"},
		{"services", "service"},
		{"sent", "send"},
		{"children", "child"},
		{"virus", "virus"},
		{"account", "account"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Lemmatize(tt.in))
		})
	}
}

func TestLemmatizePreservesOrder(t *testing.T) {
	assert.Equal(t, "verify account update", Lemmatize("verified accounts updated"))
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("please"))
	assert.False(t, IsStopword("password"))
	assert.False(t, IsStopword("verify"))
}
