package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/core/ports"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type HistoryUseCase struct {
	store ports.QueryLogStore
}

// NewHistoryUseCase accepts a nil store, in which case history is reported as disabled.
func NewHistoryUseCase(store ports.QueryLogStore) *HistoryUseCase {
	return &HistoryUseCase{store: store}
}

func (uc *HistoryUseCase) Recent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error) {
	if uc.store == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "list history", errors.New("query history is disabled"))
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := uc.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent queries: %w", err)
	}
	return entries, nil
}
