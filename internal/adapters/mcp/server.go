// Package mcpadapter exposes the question answerer as an MCP tool.
package mcpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/corpus-qa/internal/core/ports"
)

const (
	serverName     = "corpus-qa"
	answerToolName = "answer_question"
)

type Server struct {
	answerer ports.QuestionAnswerer
	mcp      *server.MCPServer
}

func NewServer(answerer ports.QuestionAnswerer, version string) *Server {
	s := &Server{answerer: answerer}
	s.mcp = server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))
	s.mcp.AddTool(answerTool(), s.handleAnswer)
	return s
}

func answerTool() mcp.Tool {
	return mcp.NewTool(answerToolName,
		mcp.WithDescription("Answer a natural-language question with the best matching sentences from the local text corpus."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question to answer"),
		),
	)
}

// ServeStdio blocks until stdin is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

type toolAnswer struct {
	Answer    string   `json:"answer"`
	Files     []string `json:"files"`
	Sentences []string `json:"sentences"`
}

func (s *Server) handleAnswer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question is required"), nil
	}

	answer, err := s.answerer.Answer(ctx, question)
	if err != nil {
		slog.Error("mcp_answer_failed", "tool", answerToolName, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.Marshal(toolAnswer{
		Answer:    answer.Best(),
		Files:     orEmpty(answer.Files),
		Sentences: orEmpty(answer.Sentences),
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
