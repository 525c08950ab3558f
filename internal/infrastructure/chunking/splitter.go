package chunking

import (
	"strings"
	"unicode"
)

var defaultAbbreviations = []string{
	"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs",
	"e.g", "i.e", "cf",
}

// Words that are also ordinary English. They only hold a sentence together
// when the next word starts lowercase or with a digit ("No. 5", "Dec. 3").
var weakAbbreviations = []string{
	"al", "fig", "no", "inc", "ltd", "co",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
}

// SentenceSplitter segments a passage into sentences. A sentence ends at a
// run of '.', '!' or '?' (plus closing quotes or brackets) followed by
// whitespace or the end of the passage. A period after a known abbreviation or
// a single-letter initial does not end a sentence.
type SentenceSplitter struct {
	abbreviations map[string]struct{}
	weak          map[string]struct{}
}

func NewSentenceSplitter(extraAbbreviations ...string) *SentenceSplitter {
	abbr := make(map[string]struct{}, len(defaultAbbreviations)+len(extraAbbreviations))
	for _, a := range defaultAbbreviations {
		abbr[a] = struct{}{}
	}
	weak := make(map[string]struct{}, len(weakAbbreviations))
	for _, a := range weakAbbreviations {
		weak[a] = struct{}{}
	}
	for _, a := range extraAbbreviations {
		a = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(a)), ".")
		if a != "" {
			abbr[a] = struct{}{}
		}
	}
	return &SentenceSplitter{abbreviations: abbr, weak: weak}
}

func (s *SentenceSplitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	out := make([]string, 0, 4)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}

		end := i + 1
		for end < len(runes) && isTerminator(runes[end]) {
			end++
		}
		for end < len(runes) && isCloser(runes[end]) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}
		if runes[i] == '.' && end == i+1 && s.endsWithAbbreviation(runes[start:i], runes[end:]) {
			i = end - 1
			continue
		}

		out = appendSentence(out, runes[start:end])
		start = end
		i = end - 1
	}
	if start < len(runes) {
		out = appendSentence(out, runes[start:])
	}
	return out
}

func (s *SentenceSplitter) endsWithAbbreviation(head, tail []rune) bool {
	word := lastWord(head)
	if word == "" {
		return false
	}
	if len([]rune(word)) == 1 && unicode.IsLetter([]rune(word)[0]) {
		return true
	}
	word = strings.ToLower(word)
	if _, ok := s.abbreviations[word]; ok {
		return true
	}
	if _, ok := s.weak[word]; ok {
		return continuesSentence(tail)
	}
	return false
}

// continuesSentence reports whether the next word starts lowercase or with a digit.
func continuesSentence(tail []rune) bool {
	for _, r := range tail {
		if unicode.IsSpace(r) || isOpener(r) {
			continue
		}
		return unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return false
}

func lastWord(head []rune) string {
	i := len(head)
	for i > 0 && !unicode.IsSpace(head[i-1]) {
		i--
	}
	return strings.TrimLeftFunc(string(head[i:]), func(r rune) bool {
		return isOpener(r)
	})
}

func appendSentence(out []string, runes []rune) []string {
	sentence := strings.TrimSpace(string(runes))
	if sentence == "" {
		return out
	}
	return append(out, sentence)
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '”', '’', '»':
		return true
	}
	return false
}

func isOpener(r rune) bool {
	switch r {
	case '"', '\'', '(', '[', '{', '“', '‘', '«':
		return true
	}
	return false
}
