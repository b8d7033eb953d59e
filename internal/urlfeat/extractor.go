package urlfeat

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Keyword list scored both as independent binary columns and as an
// aggregate count
var keywords = []string{"login", "update", "pay"}

// TLDs with a disproportionate share of abuse registrations
var suspiciousTLDs = map[string]struct{}{
	"tk": {}, "ml": {}, "ga": {}, "cf": {}, "gq": {},
	"xyz": {}, "buzz": {}, "top": {}, "work": {}, "click": {},
}

// Confusable characters commonly substituted for letters in domain names
var homoglyphs = map[rune]rune{
	'0': 'o', '1': 'l', '3': 'e', '@': 'a', '$': 's',
	'5': 's', '9': 'g', '6': 'b', '|': 'i', '!': 'i',
}

var executableSuffixes = []string{".exe", ".php", ".bat", ".scr"}

const (
	entropySuspicious = 3.5
	entropyHigh       = 4.5
)

var (
	hexEncodingPattern  = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
	nonLetterPattern    = regexp.MustCompile(`[^a-zA-Z]`)
	letterPattern       = regexp.MustCompile(`[A-Za-z]`)
	digitCharPattern    = regexp.MustCompile(`\d`)
	otherSpecialPattern = regexp.MustCompile(`[@%~#\^*\[\]\{\}|\\<>]`)
	base64Pattern       = regexp.MustCompile(`(?:[A-Za-z0-9+/]{4}){3,}`)
	tokenSplitPattern   = regexp.MustCompile(`[/&=?._-]+`)
)

// PathVectorizer turns a URL's path+query string into its learned TF-IDF
// columns
type PathVectorizer interface {
	Transform(text string) []float64
	NumFeatures() int
}

// TLDEncoder label-encodes a TLD; unseen values map to the -1 sentinel
type TLDEncoder interface {
	Encode(tld string) int
}

// Extractor computes the lexical, structural and learned features of a
// single URL. It is a pure function of the URL string and never fails:
// parse problems degrade to zero/empty defaults.
type Extractor struct {
	vectorizer PathVectorizer
	tldEncoder TLDEncoder
}

// NewExtractor creates a URL feature extractor
func NewExtractor(vectorizer PathVectorizer, tldEncoder TLDEncoder) *Extractor {
	return &Extractor{vectorizer: vectorizer, tldEncoder: tldEncoder}
}

// Extract computes the full feature vector for one URL
func (e *Extractor) Extract(rawURL string) *FeatureVector {
	lower := strings.ToLower(rawURL)
	domain, tld, subdomain := SplitURL(rawURL)
	length := len(rawURL)
	if length == 0 {
		length = 1
	}

	v := NewFeatureVector()

	subdomainCount := 0
	if subdomain != "" {
		subdomainCount = strings.Count(subdomain, ".") + 1
	}
	v.Set("NoOfSubDomain", float64(subdomainCount))
	v.setBool("HasHyphenInDomain", strings.Contains(domain, "-"))
	v.setBool("HasSpecialCharInDomain", nonLetterPattern.MatchString(domain))
	v.Set("CountDots", float64(strings.Count(rawURL, ".")))

	suspiciousCount := 0
	for _, kw := range keywords {
		present := strings.Contains(lower, kw)
		v.setBool(capitalize(kw), present)
		if present {
			suspiciousCount++
		}
	}

	_, tldSuspicious := suspiciousTLDs[tld]
	v.setBool("SuspiciousTLD", tldSuspicious)
	v.Set("PathLength", float64(len(urlPath(rawURL))))

	entropy := shannonEntropy(domain)
	v.setBool("SuspiciousDomain", entropy > entropySuspicious)
	v.setBool("HasObfuscation", obfuscationCount(rawURL) > 0)
	v.Set("TLD_encoded", float64(e.tldEncoder.Encode(tld)))
	v.setBool("HasHomoglyphs", countHomoglyphs(domain) > 0)
	v.Set("NumHomoglyphs", float64(countHomoglyphs(domain)))
	v.Set("URLLength", float64(len(rawURL)))
	v.Set("DomainLength", float64(len(domain)))
	v.setBool("IsHTTPS", strings.HasPrefix(lower, "https://"))
	v.Set("CharContinuationRate", float64(charContinuationLength(rawURL))/float64(length))

	equals := strings.Count(rawURL, "=")
	qmarks := strings.Count(rawURL, "?")
	ampersands := strings.Count(rawURL, "&")
	otherSpecial := len(otherSpecialPattern.FindAllString(rawURL, -1))
	v.Set("NoOfEqualsInURL", float64(equals))
	v.Set("NoOfQMarkInURL", float64(qmarks))
	v.Set("NoOfAmpersandInURL", float64(ampersands))
	v.Set("NoOfOtherSpecialCharsInURL", float64(otherSpecial))
	v.Set("SpacialCharRatioInURL", float64(qmarks+ampersands+otherSpecial)/float64(length))

	letters := len(letterPattern.FindAllString(rawURL, -1))
	digits := len(digitCharPattern.FindAllString(rawURL, -1))
	v.Set("LetterRatioInURL", float64(letters)/float64(length))
	v.Set("NoOfDegitsInURL", float64(digits))
	v.Set("SuspiciousCount", float64(suspiciousCount))

	endsExecutable := false
	for _, suffix := range executableSuffixes {
		if strings.HasSuffix(rawURL, suffix) {
			endsExecutable = true
			break
		}
	}
	v.setBool("EndsWithExecutable", endsExecutable)

	pathQuery := PathQuery(rawURL)
	v.setBool("HasBase64", base64Pattern.MatchString(pathQuery))
	v.Set("TokenCount", float64(len(tokenSplitPattern.Split(pathQuery, -1))))
	v.Set("DomainEntropyClass", float64(entropyClass(entropy)))

	columns := e.vectorizer.Transform(pathQuery)
	if len(columns) == 0 {
		columns = make([]float64, e.vectorizer.NumFeatures())
	}
	for i, value := range columns {
		v.Set(fmt.Sprintf("TFIDF_%d", i), value)
	}

	return v
}

// SplitURL decomposes a URL into its registrable domain label, public
// suffix and subdomain part. It never fails; unparseable input yields empty
// parts.
func SplitURL(rawURL string) (domain, tld, subdomain string) {
	host := hostOf(rawURL)
	if host == "" {
		return "", "", ""
	}

	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == "" || suffix == host {
		return "", suffix, ""
	}

	rest := strings.TrimSuffix(host, "."+suffix)
	if rest == host {
		// Host did not actually end with the suffix
		return host, suffix, ""
	}
	if i := strings.LastIndex(rest, "."); i >= 0 {
		return rest[i+1:], suffix, rest[:i]
	}
	return rest, suffix, ""
}

// hostOf isolates the hostname without relying on a scheme being present
func hostOf(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	s = strings.TrimRight(s, ".")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

// urlPath returns the path component, or "" when the URL cannot be parsed
func urlPath(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Path
}

// PathQuery joins the path and query components the way the path
// vectorizer was trained: "path?query" when a query exists, otherwise just
// the path. Unparseable URLs yield "".
func PathQuery(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if parsed.RawQuery != "" {
		return parsed.Path + "?" + parsed.RawQuery
	}
	return parsed.Path
}

// charContinuationLength sums the lengths of all maximal runs of an
// immediately repeated character
func charContinuationLength(s string) int {
	total := 0
	runes := []rune(s)
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 2 {
			total += j - i
		}
		i = j
	}
	return total
}

// obfuscationCount counts percent-hex escapes plus '@' occurrences
func obfuscationCount(s string) int {
	return len(hexEncodingPattern.FindAllString(s, -1)) + strings.Count(s, "@")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func countHomoglyphs(domain string) int {
	count := 0
	for _, r := range domain {
		if _, ok := homoglyphs[r]; ok {
			count++
		}
	}
	return count
}

// shannonEntropy computes the base-2 entropy of the character frequency
// distribution
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	counts := make(map[rune]int)
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}
	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// entropyClass buckets domain entropy into three ordinal classes
func entropyClass(entropy float64) int {
	switch {
	case entropy < entropySuspicious:
		return 0
	case entropy < entropyHigh:
		return 1
	default:
		return 2
	}
}
