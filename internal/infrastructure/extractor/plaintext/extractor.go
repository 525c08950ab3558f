package plaintext

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

var ErrNotText = errors.New("content is not valid utf-8 text")

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads r fully and returns its content as text. Bytes that do not
// decode as UTF-8 are rejected rather than repaired.
func (e *Extractor) Extract(name string, r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrCorpusLoad, "decode "+name, ErrNotText)
	}

	text := strings.TrimPrefix(string(raw), "\ufeff")
	return strings.TrimSpace(text), nil
}
