package plaintext

import (
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

func TestExtractReturnsTrimmedText(t *testing.T) {
	text, err := NewExtractor().Extract("a.txt", strings.NewReader("\ufeff  A dog is a mammal.\n\n"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "A dog is a mammal." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractRejectsInvalidUTF8(t *testing.T) {
	_, err := NewExtractor().Extract("bin.txt", strings.NewReader("ok\xff\xfe"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrCorpusLoad) || !errors.Is(err, ErrNotText) {
		t.Fatalf("expected corpus load / not text error, got %v", err)
	}
}
