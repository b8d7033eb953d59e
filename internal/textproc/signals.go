package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// urlDetectPattern is the keep-side twin of the normalizer's removal
// patterns: it matches the same URL family but is used to extract matches
// before they are scrubbed.
var urlDetectPattern = regexp.MustCompile(
	`https?://\S+|www\.\S+|(?:http|https)\s*:\s*/\s*/\s*\S+|\b\w+\s*\.\s*(?:com|fr|net|org|info|biz|edu|gov)\b`)

var replyPattern = regexp.MustCompile(`^\s*re\s*:`)

// Curated phrase list: salutation cliches, urgency language, phishing action
// phrases and malware terminology. Matched as whole words/phrases.
var suspiciousPhrases = []string{
	"dear user", "dear client", "dear customer", "dear member",
	"dear friend", "hello user",
	"urgent", "right now", "now", "immediately", "as soon as possible",
	"act now", "limited time", "limited", "offer", "last chance",
	"expires soon", "take action", "verify immediately",
	"your access is restricted", "subscription", "subscriptionid", "spam",
	"free", "free coupon", "click here", "login now",
	"update your information", "security alert", "verify your identity",
	"confirm your password", "verify your account", "win a prize", "prize",
	"password", "exclusive", "download the document",
	"check your statement", "reset your password", "security verification",
	"urgent action required",
	"trojan", "trojanspy", "trojandownloader", "trojanqqpass",
	"trojanmybot", "trojanpcclient", "trojanhupigon", "trojanmezziacy",
	"keylogger", "ransomware", "spyware", "malicious", "software", "virus",
	"detected", "infected", "threat removal", "threat", "security", "scan",
	"quarantine report", "dangerous file", "suspicious attachment",
}

var suspiciousPatterns = compilePhrases(suspiciousPhrases)

func compilePhrases(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(phrases))
	for i, phrase := range phrases {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	}
	return patterns
}

// ExtractSignals derives the email meta features from the raw subject and
// body. Detection runs on the original (uncleaned, lowercased) text so that
// markers are seen before the normalizer scrubs them; the word count is
// taken from the normalizer's output for the same input.
func ExtractSignals(subject, body string) EmailSignals {
	fullText := subject + " " + body
	original := strings.ToLower(fullText)

	rawURLs := urlDetectPattern.FindAllString(original, -1)
	for i, u := range rawURLs {
		rawURLs[i] = strings.TrimRight(u, ".,;!?")
	}

	cleaned := Normalize(subject, body)

	return EmailSignals{
		CleanedText:   cleaned,
		Suspicious:    containsSuspiciousPhrase(original),
		HasURL:        urlDetectPattern.MatchString(original),
		HasAttachment: attachmentPattern.MatchString(fullText),
		HasHTML:       strings.Contains(original, "html"),
		IsReply:       replyPattern.MatchString(strings.ToLower(subject)),
		WordCount:     len(strings.Fields(cleaned)),
		CharLength:    utf8.RuneCountInString(fullText),
		RawURLs:       rawURLs,
	}
}

func containsSuspiciousPhrase(text string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
