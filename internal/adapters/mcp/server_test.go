package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

type answererFake struct {
	answer   *domain.Answer
	err      error
	question string
}

func (f *answererFake) Answer(_ context.Context, question string) (*domain.Answer, error) {
	f.question = question
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = answerToolName
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestHandleAnswerReturnsBestSentence(t *testing.T) {
	fake := &answererFake{answer: &domain.Answer{
		Files:     []string{"python.txt"},
		Sentences: []string{"Python is a programming language."},
	}}
	s := NewServer(fake, "test")

	result, err := s.handleAnswer(context.Background(), callRequest(map[string]any{"question": "What is Python?"}))
	if err != nil {
		t.Fatalf("handleAnswer() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success result")
	}
	if fake.question != "What is Python?" {
		t.Fatalf("unexpected question forwarded: %q", fake.question)
	}

	var got toolAnswer
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("decode tool payload: %v", err)
	}
	if got.Answer != "Python is a programming language." || len(got.Files) != 1 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestHandleAnswerRequiresQuestion(t *testing.T) {
	s := NewServer(&answererFake{}, "test")

	result, err := s.handleAnswer(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handleAnswer() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error for missing question")
	}
}

func TestHandleAnswerSurfacesPipelineError(t *testing.T) {
	s := NewServer(&answererFake{err: domain.WrapError(domain.ErrCorpusLoad, "load corpus", errors.New("no such directory"))}, "test")

	result, err := s.handleAnswer(context.Background(), callRequest(map[string]any{"question": "cats"}))
	if err != nil {
		t.Fatalf("handleAnswer() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error result")
	}
}
