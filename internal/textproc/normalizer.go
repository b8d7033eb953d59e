package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// URL patterns also match obfuscated variants: spaced-out schemes, spaced-out
// www hosts and bare domain.tld mentions for a fixed set of common TLDs.
var (
	plainURLPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	spacedURLPattern = regexp.MustCompile(`(?:http|https)\s*:\s*/\s*/\s*\S+`)
	spacedWWWPattern = regexp.MustCompile(`www\s*(?:\.\s*\w+)+`)
	bareHTTPPattern  = regexp.MustCompile(`\bhttp\b`)
	bareTLDPattern   = regexp.MustCompile(`\b\w+\s*\.\s*(?:com|fr|net|org|info|biz|edu|gov)\b`)

	emailAddrPattern  = regexp.MustCompile(`\S+@\S+`)
	attachmentPattern = regexp.MustCompile(`(?i)\b[\w\s-]+ ?\. ?(?:pdf|docx?|xlsx?|zip|rar|exe|js|scr|vbs|bat|7z)\b`)

	digitPattern       = regexp.MustCompile(`\d`)
	lineBreakPattern   = regexp.MustCompile(`[\n\r\\]+`)
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// accentStripper decomposes characters and drops the combining marks,
// mapping accented letters to their plain ASCII equivalents
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize cleans the raw subject and body down to the whitespace-joined
// lexical content the content vectorizer was trained on. The steps are
// order-sensitive: markup first, then URLs, then attachment mentions, then
// punctuation, stopwords and accents, then lemmatization. It never fails on
// malformed input; empty input yields empty output.
func Normalize(subject, body string) string {
	text := subject + " " + body
	text = StripHTML(text)
	text = RemoveURLs(text)
	text = RemoveAttachments(text)
	text = scrubText(text)
	return Lemmatize(text)
}

// StripHTML returns only the visible text of any markup in the input.
// Plain text passes through unchanged.
func StripHTML(text string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return doc.Text()
}

// RemoveURLs lowercases the text and strips URL-like substrings, including
// obfuscated spellings
func RemoveURLs(text string) string {
	text = strings.ToLower(text)
	text = plainURLPattern.ReplaceAllString(text, "")
	text = spacedURLPattern.ReplaceAllString(text, "")
	text = spacedWWWPattern.ReplaceAllString(text, "")
	text = bareHTTPPattern.ReplaceAllString(text, "")
	text = bareTLDPattern.ReplaceAllString(text, "")
	return text
}

// RemoveAttachments strips embedded email addresses and attachment-style
// file name mentions
func RemoveAttachments(text string) string {
	text = emailAddrPattern.ReplaceAllString(text, "")
	return attachmentPattern.ReplaceAllString(text, "")
}

// scrubText drops digits, collapses line breaks and backslashes to spaces,
// removes punctuation, lowercases, filters stopwords and transliterates
// accented letters to ASCII
func scrubText(text string) string {
	text = digitPattern.ReplaceAllString(text, "")
	text = lineBreakPattern.ReplaceAllString(text, " ")
	text = punctuationPattern.ReplaceAllString(text, "")

	words := strings.Fields(strings.ToLower(text))
	kept := words[:0]
	for _, w := range words {
		if !IsStopword(w) {
			kept = append(kept, w)
		}
	}
	text = strings.Join(kept, " ")

	if stripped, _, err := transform.String(accentStripper, text); err == nil {
		text = stripped
	}
	return text
}
