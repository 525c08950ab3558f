package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAnswerCountsByStatus(t *testing.T) {
	m := NewQAMetrics("test")

	m.ObserveAnswer(3, 7, 10*time.Millisecond, nil)
	m.ObserveAnswer(0, 0, time.Millisecond, errors.New("load failed"))

	if got := testutil.ToFloat64(m.answersTotal.WithLabelValues("test", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.answersTotal.WithLabelValues("test", "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if got := testutil.CollectAndCount(m.candidateSentences); got != 1 {
		t.Fatalf("expected candidate sentence histogram to be collected, got %d", got)
	}
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	m := NewQAMetrics("test")
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("test", http.MethodGet, "/healthz", "418")); got != 1 {
		t.Fatalf("expected 1 request recorded, got %v", got)
	}
}

func TestHandlerExposesSeries(t *testing.T) {
	m := NewQAMetrics("test")
	m.ObserveAnswer(1, 1, time.Millisecond, nil)

	res := httptest.NewRecorder()
	m.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(res.Body.String(), "qa_answer_total") {
		t.Fatalf("expected qa_answer_total in exposition")
	}
}
