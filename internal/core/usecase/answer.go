package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/core/ports"
	"github.com/kirillkom/corpus-qa/internal/core/ranking"
)

const (
	defaultFileMatches     = 1
	defaultSentenceMatches = 1
)

type AnswerConfig struct {
	FileMatches     int
	SentenceMatches int
}

// AnswerUseCase answers a question with the best sentences of the best
// matching corpus files. Every call loads the corpus and computes its IDF
// tables from scratch; nothing is shared between calls.
type AnswerUseCase struct {
	loader    ports.CorpusLoader
	tokenizer ports.Tokenizer
	splitter  ports.SentenceSplitter
	cfg       AnswerConfig

	history  ports.QueryLogStore
	observer ports.AnswerObserver
}

// NewAnswerUseCase wires the pipeline. history and observer may be nil.
func NewAnswerUseCase(
	loader ports.CorpusLoader,
	tokenizer ports.Tokenizer,
	splitter ports.SentenceSplitter,
	cfg AnswerConfig,
	history ports.QueryLogStore,
	observer ports.AnswerObserver,
) *AnswerUseCase {
	if cfg.FileMatches <= 0 {
		cfg.FileMatches = defaultFileMatches
	}
	if cfg.SentenceMatches <= 0 {
		cfg.SentenceMatches = defaultSentenceMatches
	}
	return &AnswerUseCase{
		loader:    loader,
		tokenizer: tokenizer,
		splitter:  splitter,
		cfg:       cfg,
		history:   history,
		observer:  observer,
	}
}

type answerStats struct {
	documents int
	sentences int
}

func (uc *AnswerUseCase) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	start := time.Now()
	answer, stats, err := uc.answer(ctx, question)
	duration := time.Since(start)

	if uc.observer != nil {
		uc.observer.ObserveAnswer(stats.documents, stats.sentences, duration, err)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("qa_answer",
		"query_terms", len(answer.Query),
		"documents", stats.documents,
		"files", answer.Files,
		"sentences", stats.sentences,
		"duration_ms", float64(duration.Microseconds())/1000.0,
	)
	uc.recordHistory(ctx, answer)
	return answer, nil
}

func (uc *AnswerUseCase) answer(ctx context.Context, question string) (*domain.Answer, answerStats, error) {
	var stats answerStats

	raw, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("load corpus: %w", err)
	}
	stats.documents = len(raw)

	docs := uc.tokenizeDocuments(raw)
	fileIDFs := ranking.ComputeIDFs(docs)
	query := domain.NewQuery(uc.tokenizer.Tokenize(question))
	if query.Empty() {
		slog.Debug("qa_query_empty", "question", question)
	}
	files := ranking.TopFiles(query, docs, fileIDFs, uc.cfg.FileMatches)

	if err := ctx.Err(); err != nil {
		return nil, stats, fmt.Errorf("rank files: %w", err)
	}

	sentences := uc.extractSentences(raw, files)
	stats.sentences = len(sentences)
	sentenceIDFs := ranking.ComputeIDFs(domain.SentenceDocuments(sentences))
	best := ranking.TopSentences(query, sentences, sentenceIDFs, uc.cfg.SentenceMatches)

	return &domain.Answer{
		Question:  question,
		Query:     query.Terms,
		Files:     files,
		Sentences: best,
	}, stats, nil
}

func (uc *AnswerUseCase) tokenizeDocuments(raw []domain.RawDocument) []domain.Document {
	docs := make([]domain.Document, 0, len(raw))
	for _, doc := range raw {
		docs = append(docs, domain.Document{
			ID:     doc.ID,
			Tokens: uc.tokenizer.Tokenize(doc.Text),
		})
	}
	return docs
}

// extractSentences splits the selected files into passages by line, then into
// sentences. Identical sentence text is kept once, at its first position, and
// sentences without tokens are dropped.
func (uc *AnswerUseCase) extractSentences(raw []domain.RawDocument, files []string) []domain.Sentence {
	textByID := make(map[string]string, len(raw))
	for _, doc := range raw {
		textByID[doc.ID] = doc.Text
	}

	seen := make(map[string]struct{})
	out := make([]domain.Sentence, 0, 16)
	for _, id := range files {
		for _, passage := range strings.Split(textByID[id], "\n") {
			for _, text := range uc.splitter.Split(passage) {
				if _, ok := seen[text]; ok {
					continue
				}
				seen[text] = struct{}{}

				tokens := uc.tokenizer.Tokenize(text)
				if len(tokens) == 0 {
					continue
				}
				out = append(out, domain.Sentence{Text: text, Tokens: tokens})
			}
		}
	}
	return out
}

func (uc *AnswerUseCase) recordHistory(ctx context.Context, answer *domain.Answer) {
	if uc.history == nil {
		return
	}
	entry := domain.QueryLogEntry{
		ID:        uuid.NewString(),
		Question:  answer.Question,
		Files:     answer.Files,
		Sentences: answer.Sentences,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.history.Append(ctx, entry); err != nil {
		slog.Warn("qa_history_append_failed", "entry_id", entry.ID, "error", err)
	}
}
