package ports

import (
	"context"
	"time"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

// CorpusLoader reads the raw documents of the corpus.
type CorpusLoader interface {
	Load(ctx context.Context) ([]domain.RawDocument, error)
}

// Tokenizer normalizes text into an ordered token sequence.
type Tokenizer interface {
	Tokenize(text string) []string
}

// SentenceSplitter segments a passage into sentences.
type SentenceSplitter interface {
	Split(text string) []string
}

// QueryLogStore persists answered questions.
type QueryLogStore interface {
	Append(ctx context.Context, entry domain.QueryLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error)
}

// AnswerObserver receives per-answer statistics.
type AnswerObserver interface {
	ObserveAnswer(documents, sentences int, duration time.Duration, err error)
}
