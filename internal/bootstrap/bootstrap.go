package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/corpus-qa/internal/config"
	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/core/ports"
	"github.com/kirillkom/corpus-qa/internal/core/usecase"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/chunking"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/resilience"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/textproc"
	"github.com/kirillkom/corpus-qa/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Executor *resilience.Executor
	Metrics  *metrics.QAMetrics

	AnswerUC  ports.QuestionAnswerer
	HistoryUC ports.HistoryReader

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	stopWords, err := textproc.LoadStopWords(cfg.StopWordsFile)
	if err != nil {
		return nil, fmt.Errorf("load stopwords: %w", err)
	}
	tokenizer := textproc.NewTokenizer(textproc.Config{StopWords: stopWords})
	splitter := chunking.NewSentenceSplitter(splitList(cfg.Abbreviations)...)
	loader := localfs.NewLoader(cfg.CorpusDir)

	resilienceCfg := resilience.DefaultConfig()
	resilienceCfg.RetryMaxAttempts = cfg.RetryMaxAttempts
	resilienceCfg.BreakerEnabled = cfg.BreakerEnabled
	executor := resilience.NewExecutor(resilienceCfg)

	qaMetrics := metrics.NewQAMetrics(service)

	var (
		db    *sql.DB
		store ports.QueryLogStore
	)
	if cfg.HistoryEnabled() {
		db, err = postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewQueryLogRepository(db, executor)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		store = repo
	}

	answerUC := usecase.NewAnswerUseCase(
		loader,
		tokenizer,
		splitter,
		usecase.AnswerConfig{
			FileMatches:     cfg.FileMatches,
			SentenceMatches: cfg.SentenceMatches,
		},
		store,
		qaMetrics,
	)

	slog.Info("qa_pipeline_ready",
		"corpus_dir", cfg.CorpusDir,
		"stopwords_language", stopWords.Language(),
		"stopwords", stopWords.Len(),
		"history", cfg.HistoryEnabled(),
	)

	return &App{
		Config:   cfg,
		Executor: executor,
		Metrics:  qaMetrics,

		AnswerUC:  withTimeout(answerUC, cfg.AnswerTimeout),
		HistoryUC: usecase.NewHistoryUseCase(store),

		closeFn: func() {
			if db != nil {
				_ = db.Close()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

type timeoutAnswerer struct {
	next    ports.QuestionAnswerer
	timeout time.Duration
}

// withTimeout bounds every answer; timeout <= 0 disables the bound.
func withTimeout(next ports.QuestionAnswerer, timeout time.Duration) ports.QuestionAnswerer {
	if timeout <= 0 {
		return next
	}
	return timeoutAnswerer{next: next, timeout: timeout}
}

func (t timeoutAnswerer) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Answer(ctx, question)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
