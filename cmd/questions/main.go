package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kirillkom/corpus-qa/internal/bootstrap"
	"github.com/kirillkom/corpus-qa/internal/config"
	"github.com/kirillkom/corpus-qa/internal/observability/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run answers a single question read from stdin against the corpus
// directory named by the only positional argument.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: questions corpus")
		return 1
	}

	cfg := config.Load()
	cfg.CorpusDir = args[0]

	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	slog.SetDefault(logging.NewJSONLoggerTo(stderr, "questions", level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, "questions")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	fmt.Fprint(stdout, "Query: ")
	question, err := readLine(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: read query: %v\n", err)
		return 1
	}

	answer, err := app.AnswerUC.Answer(ctx, question)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(answer.Sentences) == 0 {
		fmt.Fprintln(stdout)
	}
	for _, sentence := range answer.Sentences {
		fmt.Fprintln(stdout, sentence)
	}
	return 0
}

// readLine returns the first line of r without its terminator. EOF before
// any input yields an empty question.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
