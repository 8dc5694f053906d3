package reading

import (
	"regexp"
	"strings"
)

// WordType classifies a word extracted from a sentence.
type WordType string

const (
	WordNormal     WordType = "normal"
	WordVerb       WordType = "verb"
	WordTimePhrase WordType = "time-phrase"
)

// Word is one clickable vocabulary entry from a sentence.
type Word struct {
	Text string
	Type WordType
}

var (
	verbTagPattern = regexp.MustCompile(`<v>([^<]+)</v>`)
	timeTagPattern = regexp.MustCompile(`<t>([^<]+)</t>`)
	anyTagPattern  = regexp.MustCompile(`<[^>]+>`)
	trailingPunct  = regexp.MustCompile(`([^a-zA-Z0-9']+)$`)
)

// PlainText strips all markup from a sentence.
func PlainText(sentence string) string {
	return anyTagPattern.ReplaceAllString(sentence, "")
}

// Verbs returns the verb words and phrases tagged in a sentence.
func Verbs(sentence string) []string {
	var out []string
	for _, match := range verbTagPattern.FindAllStringSubmatch(sentence, -1) {
		out = append(out, match[1])
	}
	return out
}

// MaskVerbs replaces every tagged verb with underscores of the same
// length, used by the recite mode.
func MaskVerbs(sentence string) string {
	masked := verbTagPattern.ReplaceAllStringFunc(sentence, func(match string) string {
		verb := verbTagPattern.FindStringSubmatch(match)[1]
		return strings.Repeat("_", len(verb))
	})
	return anyTagPattern.ReplaceAllString(masked, "")
}

// ExtractWords lists the distinct words of a sentence in order, typed by
// their markup. Trailing punctuation is stripped; single letters other
// than "I"/"a" are skipped.
func ExtractWords(sentence string) []Word {
	types := make(map[string]WordType)
	for _, match := range verbTagPattern.FindAllStringSubmatch(sentence, -1) {
		types[strings.ToLower(match[1])] = WordVerb
	}
	for _, match := range timeTagPattern.FindAllStringSubmatch(sentence, -1) {
		types[strings.ToLower(match[1])] = WordTimePhrase
	}

	var words []Word
	seen := make(map[string]bool)
	for _, raw := range strings.Fields(PlainText(sentence)) {
		word := raw
		if punct := trailingPunct.FindString(word); punct != "" {
			word = word[:len(word)-len(punct)]
		}
		if word == "" {
			continue
		}
		if len(word) < 2 && word != "I" && word != "a" && word != "A" {
			continue
		}
		key := strings.ToLower(word)
		if seen[key] {
			continue
		}
		seen[key] = true

		wordType, ok := types[key]
		if !ok {
			wordType = WordNormal
		}
		words = append(words, Word{Text: word, Type: wordType})
	}
	return words
}
