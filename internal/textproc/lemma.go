package textproc

import (
	"strings"
)

// Irregular inflections that suffix rules cannot recover
var irregularLemmas = map[string]string{
	"am": "be", "are": "be", "is": "be", "was": "be", "were": "be",
	"been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do",
	"went": "go", "gone": "go", "goes": "go",
	"said": "say", "made": "make", "got": "get", "gotten": "get",
	"took": "take", "taken": "take", "came": "come", "saw": "see",
	"seen": "see", "knew": "know", "known": "know", "gave": "give",
	"given": "give", "found": "find", "thought": "think", "told": "tell",
	"sent": "send", "left": "leave", "felt": "feel", "kept": "keep",
	"paid": "pay", "built": "build", "won": "win", "ran": "run",
	"lost": "lose", "met": "meet", "meant": "mean", "held": "hold",
	"brought": "bring", "bought": "buy", "caught": "catch",
	"taught": "teach", "sold": "sell", "wrote": "write",
	"written": "write", "spoke": "speak", "spoken": "speak",
	"chose": "choose", "chosen": "choose", "drove": "drive",
	"driven": "drive", "ate": "eat", "eaten": "eat", "fell": "fall",
	"fallen": "fall", "grew": "grow", "grown": "grow", "heard": "hear",
	"led": "lead", "began": "begin", "begun": "begin",
	"children": "child", "men": "man", "women": "woman", "feet": "foot",
	"teeth": "tooth", "mice": "mouse", "people": "person",
	"better": "good", "best": "good", "worse": "bad", "worst": "bad",
}

// Lemmatize reduces each whitespace-separated token to its base dictionary
// form using an irregular-form table and ordered suffix rules. The output
// preserves token order and single-space joining.
func Lemmatize(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = lemmaOf(w)
	}
	return strings.Join(words, " ")
}

func lemmaOf(word string) string {
	if lemma, ok := irregularLemmas[word]; ok {
		return lemma
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ied") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return undouble(word[:len(word)-3])
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		return undouble(word[:len(word)-2])
	case strings.HasSuffix(word, "es") && len(word) > 3 && hasSibilantBefore(word, 2):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3 &&
		!strings.HasSuffix(word, "ss") && !strings.HasSuffix(word, "us") && !strings.HasSuffix(word, "is"):
		return word[:len(word)-1]
	}
	return word
}

// undouble collapses a doubled final consonant left by stripping -ing/-ed
// (running -> run), leaving ll/ss/zz endings intact
func undouble(stem string) string {
	n := len(stem)
	if n < 3 {
		return stem
	}
	last := stem[n-1]
	if last == stem[n-2] && last != 'l' && last != 's' && last != 'z' && !isVowel(last) {
		return stem[:n-1]
	}
	return stem
}

// hasSibilantBefore reports whether the word ends in a sibilant directly
// before the suffix of the given length (watches, boxes, wishes)
func hasSibilantBefore(word string, suffixLen int) bool {
	stem := word[:len(word)-suffixLen]
	return strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "x") ||
		strings.HasSuffix(stem, "z") || strings.HasSuffix(stem, "ch") ||
		strings.HasSuffix(stem, "sh")
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
