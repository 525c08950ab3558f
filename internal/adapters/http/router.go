package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/core/ports"
)

const maxQuestionBytes = 64 << 10

type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	// MaxInFlight bounds concurrent answers; each one rereads the corpus.
	MaxInFlight      int
	BackpressureWait time.Duration
	Metrics          MetricsHandler
	Health           HealthReporter
}

// MetricsHandler is satisfied by the prometheus metrics registry wrapper.
type MetricsHandler interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
}

// HealthReporter exposes circuit breaker states for /healthz.
type HealthReporter interface {
	States() map[string]string
}

type Router struct {
	answerer ports.QuestionAnswerer
	history  ports.HistoryReader
	opts     Options
}

func NewRouter(answerer ports.QuestionAnswerer, history ports.HistoryReader, opts Options) *Router {
	return &Router{
		answerer: answerer,
		history:  history,
		opts:     opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/qa/answer", rt.answer)
	mux.HandleFunc("/v1/qa/history", rt.recentHistory)
	if rt.opts.Metrics != nil {
		mux.Handle("/metrics", rt.opts.Metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.opts.MaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.opts.MaxInFlight, rt.opts.BackpressureWait)
	}
	if rt.opts.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.opts.RateLimitRPS, rt.opts.RateLimitBurst)
	}
	if rt.opts.Metrics != nil {
		handler = rt.opts.Metrics.Middleware(handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]any{"status": "ok"}
	if rt.opts.Health != nil {
		breakers := rt.opts.Health.States()
		payload["breakers"] = breakers
		for _, state := range breakers {
			if state == "open" {
				payload["status"] = "degraded"
			}
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

type answerRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Question  string   `json:"question"`
	Query     []string `json:"query"`
	Files     []string `json:"files"`
	Sentences []string `json:"sentences"`
	Answer    string   `json:"answer"`
}

func (rt *Router) answer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req answerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuestionBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	answer, err := rt.answerer.Answer(r.Context(), req.Question)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	best := answer.Best()
	writeJSON(w, http.StatusOK, answerResponse{
		Question:  answer.Question,
		Query:     nonNil(answer.Query),
		Files:     nonNil(answer.Files),
		Sentences: nonNil(answer.Sentences),
		Answer:    best,
	})
}

func (rt *Router) recentHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	entries, err := rt.history.Recent(r.Context(), limit)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.QueryLogEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("qa_request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
