package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/resilience"
)

// QueryLogRepository stores answered questions. Only questions and their
// ranked results are persisted; IDF tables never leave the process.
type QueryLogRepository struct {
	db       *sql.DB
	executor *resilience.Executor
}

// NewQueryLogRepository accepts a nil executor, in which case writes are not retried.
func NewQueryLogRepository(db *sql.DB, executor *resilience.Executor) *QueryLogRepository {
	return &QueryLogRepository{db: db, executor: executor}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *QueryLogRepository) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS query_log (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	files JSONB NOT NULL DEFAULT '[]'::jsonb,
	sentences JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log(created_at DESC);
`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	return nil
}

func (r *QueryLogRepository) Append(ctx context.Context, entry domain.QueryLogEntry) error {
	filesJSON, err := marshalList(entry.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}
	sentencesJSON, err := marshalList(entry.Sentences)
	if err != nil {
		return fmt.Errorf("marshal sentences: %w", err)
	}

	insert := func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO query_log (id, question, files, sentences, created_at)
VALUES ($1,$2,$3,$4,$5)
`, entry.ID, entry.Question, filesJSON, sentencesJSON, entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert query log: %w", err)
		}
		return nil
	}

	if r.executor == nil {
		return insert(ctx)
	}
	if err := r.executor.Execute(ctx, "postgres.query_log.append", insert, classifyDBError); err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	return nil
}

func (r *QueryLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, question, files, sentences, created_at
FROM query_log
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent log: %w", err)
	}
	defer rows.Close()

	out := make([]domain.QueryLogEntry, 0, limit)
	for rows.Next() {
		var entry domain.QueryLogEntry
		var filesRaw, sentencesRaw []byte
		if err := rows.Scan(&entry.ID, &entry.Question, &filesRaw, &sentencesRaw, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan query log: %w", err)
		}
		if err := json.Unmarshal(filesRaw, &entry.Files); err != nil {
			return nil, fmt.Errorf("unmarshal files: %w", err)
		}
		if err := json.Unmarshal(sentencesRaw, &entry.Sentences); err != nil {
			return nil, fmt.Errorf("unmarshal sentences: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query log: %w", err)
	}
	return out, nil
}

func marshalList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}
