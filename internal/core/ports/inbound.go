package ports

import (
	"context"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

// QuestionAnswerer is the inbound contract for answering a question from the corpus.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string) (*domain.Answer, error)
}

// HistoryReader is the inbound read model for answered questions.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error)
}
