package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	mcpadapter "github.com/kirillkom/corpus-qa/internal/adapters/mcp"
	"github.com/kirillkom/corpus-qa/internal/bootstrap"
	"github.com/kirillkom/corpus-qa/internal/config"
	"github.com/kirillkom/corpus-qa/internal/observability/logging"
)

var version = "dev"

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol.
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, "mcp", cfg.LogLevel))

	app, err := bootstrap.New(context.Background(), cfg, "mcp")
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if err := mcpadapter.NewServer(app.AnswerUC, version).ServeStdio(); err != nil {
		slog.Error("mcp_serve_failed", "error", err)
	}
}
