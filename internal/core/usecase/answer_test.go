package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/chunking"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/textproc"
)

type corpusFake struct {
	docs  []domain.RawDocument
	err   error
	calls int
}

func (f *corpusFake) Load(context.Context) ([]domain.RawDocument, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

type historyFake struct {
	entries []domain.QueryLogEntry
	err     error
	limit   int
}

func (f *historyFake) Append(_ context.Context, entry domain.QueryLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *historyFake) ListRecent(_ context.Context, limit int) ([]domain.QueryLogEntry, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type observerFake struct {
	documents int
	sentences int
	err       error
	calls     int
}

func (f *observerFake) ObserveAnswer(documents, sentences int, _ time.Duration, err error) {
	f.calls++
	f.documents = documents
	f.sentences = sentences
	f.err = err
}

func newAnswerUseCase(t *testing.T, loader *corpusFake, cfg AnswerConfig, history *historyFake, observer *observerFake) *AnswerUseCase {
	t.Helper()
	tokenizer, err := textproc.NewDefaultTokenizer()
	if err != nil {
		t.Fatalf("NewDefaultTokenizer() error = %v", err)
	}
	uc := NewAnswerUseCase(loader, tokenizer, chunking.NewSentenceSplitter(), cfg, nil, nil)
	if history != nil {
		uc.history = history
	}
	if observer != nil {
		uc.observer = observer
	}
	return uc
}

func TestAnswerPicksFileWithDiscriminatingTerm(t *testing.T) {
	loader := &corpusFake{docs: []domain.RawDocument{
		{ID: "a", Text: "A dog is a mammal."},
		{ID: "b", Text: "A cat is a mammal."},
	}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{FileMatches: 2}, nil, nil)

	answer, err := uc.Answer(context.Background(), "dog")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !reflect.DeepEqual(answer.Files, []string{"a", "b"}) {
		t.Fatalf("expected files [a b], got %v", answer.Files)
	}
	if answer.Best() != "A dog is a mammal." {
		t.Fatalf("unexpected best sentence %q", answer.Best())
	}
}

func TestAnswerDefaultsToSingleFileAndSentence(t *testing.T) {
	loader := &corpusFake{docs: []domain.RawDocument{
		{ID: "a", Text: "A dog is a mammal."},
		{ID: "b", Text: "A cat is a mammal."},
	}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{}, nil, nil)

	answer, err := uc.Answer(context.Background(), "Which animal is a dog?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !reflect.DeepEqual(answer.Files, []string{"a"}) {
		t.Fatalf("expected files [a], got %v", answer.Files)
	}
	if len(answer.Sentences) != 1 {
		t.Fatalf("expected one sentence, got %v", answer.Sentences)
	}
	if !reflect.DeepEqual(answer.Query, []string{"animal", "dog"}) {
		t.Fatalf("unexpected query terms %v", answer.Query)
	}
}

func TestAnswerSentenceTieGoesToFirstSeen(t *testing.T) {
	loader := &corpusFake{docs: []domain.RawDocument{
		{ID: "a", Text: "The sun is hot. The moon is cold."},
	}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{}, nil, nil)

	answer, err := uc.Answer(context.Background(), "sun moon")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !reflect.DeepEqual(answer.Sentences, []string{"The sun is hot."}) {
		t.Fatalf("expected first-seen sentence, got %v", answer.Sentences)
	}
}

func TestAnswerDropsStopwordOnlyAndDuplicateSentences(t *testing.T) {
	observer := &observerFake{}
	loader := &corpusFake{docs: []domain.RawDocument{
		{ID: "a", Text: "It is what it is. Dogs bark loudly.\nDogs bark loudly. Cats purr."},
	}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{SentenceMatches: 10}, nil, observer)

	answer, err := uc.Answer(context.Background(), "dogs")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	want := []string{"Dogs bark loudly.", "Cats purr."}
	if !reflect.DeepEqual(answer.Sentences, want) {
		t.Fatalf("Sentences = %q, want %q", answer.Sentences, want)
	}
	if observer.sentences != 2 || observer.documents != 1 {
		t.Fatalf("observer got documents=%d sentences=%d", observer.documents, observer.sentences)
	}
}

func TestAnswerEmptyQueryFallsBackToCorpusOrder(t *testing.T) {
	loader := &corpusFake{docs: []domain.RawDocument{
		{ID: "a", Text: "Apples grow on trees. Pears too."},
		{ID: "b", Text: "Bananas are yellow."},
	}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{FileMatches: 2, SentenceMatches: 1}, nil, nil)

	answer, err := uc.Answer(context.Background(), "the of and")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if len(answer.Query) != 0 {
		t.Fatalf("expected empty query, got %v", answer.Query)
	}
	if !reflect.DeepEqual(answer.Files, []string{"a", "b"}) {
		t.Fatalf("expected corpus order, got %v", answer.Files)
	}
	if answer.Best() != "Apples grow on trees." {
		t.Fatalf("unexpected best sentence %q", answer.Best())
	}
}

func TestAnswerEmptyCorpus(t *testing.T) {
	uc := newAnswerUseCase(t, &corpusFake{}, AnswerConfig{}, nil, nil)

	answer, err := uc.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if len(answer.Files) != 0 || len(answer.Sentences) != 0 || answer.Best() != "" {
		t.Fatalf("expected empty answer, got %+v", answer)
	}
}

func TestAnswerLoadErrorIsPropagated(t *testing.T) {
	observer := &observerFake{}
	loadErr := domain.WrapError(domain.ErrCorpusLoad, "read corpus dir", errors.New("permission denied"))
	uc := newAnswerUseCase(t, &corpusFake{err: loadErr}, AnswerConfig{}, nil, observer)

	_, err := uc.Answer(context.Background(), "dog")
	if !domain.IsKind(err, domain.ErrCorpusLoad) {
		t.Fatalf("expected ErrCorpusLoad, got %v", err)
	}
	if observer.calls != 1 || observer.err == nil {
		t.Fatalf("expected observer to see the failure")
	}
}

func TestAnswerReloadsCorpusEveryCall(t *testing.T) {
	loader := &corpusFake{docs: []domain.RawDocument{{ID: "a", Text: "Dogs bark."}}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{}, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := uc.Answer(context.Background(), "dogs"); err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected corpus to be loaded per call, got %d loads", loader.calls)
	}
}

func TestAnswerRecordsHistory(t *testing.T) {
	history := &historyFake{}
	loader := &corpusFake{docs: []domain.RawDocument{{ID: "a", Text: "Dogs bark."}}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{}, history, nil)

	if _, err := uc.Answer(context.Background(), "dogs"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if len(history.entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history.entries))
	}
	entry := history.entries[0]
	if entry.ID == "" || entry.Question != "dogs" || entry.CreatedAt.IsZero() {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestAnswerIgnoresHistoryFailure(t *testing.T) {
	history := &historyFake{err: errors.New("db down")}
	loader := &corpusFake{docs: []domain.RawDocument{{ID: "a", Text: "Dogs bark."}}}
	uc := newAnswerUseCase(t, loader, AnswerConfig{}, history, nil)

	answer, err := uc.Answer(context.Background(), "dogs")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Best() != "Dogs bark." {
		t.Fatalf("unexpected best sentence %q", answer.Best())
	}
}
