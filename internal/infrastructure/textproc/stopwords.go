package textproc

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stopwords.yaml
var defaultStopWordsYAML []byte

type stopWordList struct {
	Language string   `yaml:"language"`
	Words    []string `yaml:"words"`
}

// StopWords is an immutable set of lowercase words dropped by the tokenizer.
type StopWords struct {
	language string
	words    map[string]struct{}
}

func NewStopWords(language string, words []string) StopWords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return StopWords{language: language, words: set}
}

// DefaultStopWords returns the embedded English list.
func DefaultStopWords() (StopWords, error) {
	return parseStopWords(defaultStopWordsYAML)
}

// LoadStopWords reads a YAML stopword list from path. An empty path yields
// the embedded default.
func LoadStopWords(path string) (StopWords, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultStopWords()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return StopWords{}, fmt.Errorf("read stopwords file: %w", err)
	}
	return parseStopWords(raw)
}

func parseStopWords(raw []byte) (StopWords, error) {
	var list stopWordList
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return StopWords{}, fmt.Errorf("decode stopwords yaml: %w", err)
	}
	if len(list.Words) == 0 {
		return StopWords{}, fmt.Errorf("stopwords list %q is empty", list.Language)
	}
	return NewStopWords(list.Language, list.Words), nil
}

func (s StopWords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func (s StopWords) Len() int {
	return len(s.words)
}

func (s StopWords) Language() string {
	return s.language
}
