// Package textproc normalizes raw text into word tokens.
package textproc

import (
	"strings"
	"unicode"
)

// Config is the immutable normalization configuration shared by every
// tokenizer call for documents, sentences and queries alike.
type Config struct {
	StopWords StopWords
}

// Tokenizer lowercases text and splits it into words. A word is a run of
// letters and digits; apostrophes and hyphens are kept only between two word
// runes, so "didn't" and "well-known" stay whole. Other punctuation separates
// words and never forms a token. Stopwords are dropped.
type Tokenizer struct {
	cfg Config
}

func NewTokenizer(cfg Config) *Tokenizer {
	return &Tokenizer{cfg: cfg}
}

// NewDefaultTokenizer builds a tokenizer over the embedded English stopwords.
func NewDefaultTokenizer() (*Tokenizer, error) {
	stopWords, err := DefaultStopWords()
	if err != nil {
		return nil, err
	}
	return NewTokenizer(Config{StopWords: stopWords}), nil
}

func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(strings.ToLower(text))
	out := make([]string, 0, len(runes)/6+1)
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		token := b.String()
		b.Reset()
		if t.cfg.StopWords.Contains(token) {
			return
		}
		out = append(out, token)
	}

	for i, r := range runes {
		switch {
		case isWordRune(r):
			b.WriteRune(r)
		case isJoiner(r) && b.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			b.WriteRune(normalizeJoiner(r))
		default:
			flush()
		}
	}
	flush()
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isJoiner(r rune) bool {
	switch r {
	case '\'', '’', '-', '‐', '‑':
		return true
	}
	return false
}

func normalizeJoiner(r rune) rune {
	switch r {
	case '’':
		return '\''
	case '‐', '‑':
		return '-'
	}
	return r
}
