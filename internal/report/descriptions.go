package report

// PlaceholderDescription is rendered for features without an entry in the
// description dictionary
const PlaceholderDescription = "No description available"

// featureDescriptions maps URL feature names to human-readable
// explanations for the report
var featureDescriptions = map[string]string{
	"URLLength":                  "Total length of the URL. Very long URLs can be suspicious.",
	"DomainLength":               "Length of the domain name. A very long or abnormal domain can be a sign of phishing.",
	"CharContinuationRate":       "Rate of consecutively repeated characters in the URL, which can indicate obfuscation.",
	"NoOfSubDomain":              "Number of subdomains in the URL. Too many subdomains can indicate a deceptive URL.",
	"HasObfuscation":             "Whether obfuscation techniques (encoding, character substitution) are detected in the URL.",
	"LetterRatioInURL":           "Proportion of alphabetic letters in the URL. A low proportion can be suspicious.",
	"NoOfDegitsInURL":            "Number of digits in the URL; a high count can indicate an obfuscation attempt.",
	"NoOfEqualsInURL":            "Number of '=' signs in the URL, common in parameters but suspicious in excess.",
	"NoOfQMarkInURL":             "Number of question marks in the URL; an unusual count can be suspicious.",
	"NoOfAmpersandInURL":         "Number of '&' signs in the URL; too many can indicate an overly complex URL.",
	"NoOfOtherSpecialCharsInURL": "Number of other special characters in the URL, which can signal a malicious URL.",
	"SpacialCharRatioInURL":      "Ratio of special characters over the total URL length.",
	"IsHTTPS":                    "Whether the URL uses HTTPS. Its absence can be a phishing sign.",
	"Pay":                        "Whether payment-related words appear in the URL.",
	"HasHyphenInDomain":          "Presence of hyphens in the domain name, sometimes used in fraudulent domains.",
	"HasSpecialCharInDomain":     "Presence of special characters in the domain, which can be suspicious.",
	"CountDots":                  "Total number of dots in the URL, related to subdomain and path depth.",
	"Login":                      "Whether the word 'login' appears in the URL, a frequent phishing signal.",
	"Update":                     "Whether the word 'update' appears in the URL, often used to push the reader to act.",
	"SuspiciousTLD":              "Whether the top-level domain is considered suspicious or uncommon.",
	"PathLength":                 "Length of the URL path after the domain.",
	"SuspiciousDomain":           "Whether the domain looks randomly generated or otherwise suspicious.",
	"TLD_encoded":                "Encoded category of the top-level domain.",
	"HasHomoglyphs":              "Presence of homoglyph characters (characters visually similar to others).",
	"NumHomoglyphs":              "Number of homoglyph characters detected in the domain.",
	"SuspiciousCount":            "Total count of suspicious elements detected in the URL.",
	"EndsWithExecutable":         "Whether the URL ends with an executable extension, a likely malware sign.",
	"DomainEntropyClass":         "Entropy class of the domain name; higher means more random and more suspicious.",
	"HasBase64":                  "Whether the URL contains Base64-looking encoding, often used to hide data.",
	"TokenCount":                 "Number of tokens or segments in the URL.",
}

// DescribeFeature returns the human-readable description for a URL feature
// name, or the placeholder when none exists
func DescribeFeature(name string) string {
	if description, ok := featureDescriptions[name]; ok {
		return description
	}
	return PlaceholderDescription
}
