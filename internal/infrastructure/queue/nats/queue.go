package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/core/ports"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/resilience"
)

const (
	defaultQueueGroup = "qa-workers"
	respondTimeout    = 5 * time.Second
	errShuttingDown   = "worker shutting down"
)

// Responder answers questions published as NATS requests on a subject.
type Responder struct {
	conn       *nats.Conn
	subject    string
	queueGroup string
	timeout    time.Duration
	executor   *resilience.Executor
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	QueueGroup           string
	AnswerTimeout        time.Duration
	ResilienceExecutor   *resilience.Executor
}

func NewWithOptions(url, subject string, options Options) (*Responder, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}
	queueGroup := strings.TrimSpace(options.QueueGroup)
	if queueGroup == "" {
		queueGroup = defaultQueueGroup
	}
	answerTimeout := options.AnswerTimeout
	if answerTimeout <= 0 {
		answerTimeout = 30 * time.Second
	}

	conn, err := nats.Connect(
		url,
		nats.Name("corpus-qa"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Responder{
		conn:       conn,
		subject:    subject,
		queueGroup: queueGroup,
		timeout:    answerTimeout,
		executor:   options.ResilienceExecutor,
	}, nil
}

func (r *Responder) Close() {
	if r.conn != nil {
		r.conn.Close()
	}
}

// Serve answers requests until ctx is cancelled, then drains the subscription.
func (r *Responder) Serve(ctx context.Context, answerer ports.QuestionAnswerer) error {
	sub, err := r.conn.QueueSubscribe(r.subject, r.queueGroup, func(msg *nats.Msg) {
		reply := replyTo(ctx, answerer, msg.Data, r.timeout)

		// Requests drained after shutdown still get their reply.
		respondCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), respondTimeout)
		defer cancel()
		if err := r.respond(respondCtx, msg, reply); err != nil {
			slog.Error("nats_respond_failed", "subject", msg.Subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := r.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := r.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

func (r *Responder) respond(ctx context.Context, msg *nats.Msg, payload []byte) error {
	call := func(_ context.Context) error {
		if err := msg.Respond(payload); err != nil {
			return fmt.Errorf("nats respond: %w", err)
		}
		return nil
	}

	var err error
	if r.executor != nil {
		err = r.executor.Execute(ctx, "nats.respond", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	return wrapTemporaryIfNeeded(err)
}

type questionRequest struct {
	Question string `json:"question"`
}

type questionReply struct {
	Answer *domain.Answer `json:"answer,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// replyTo answers data within timeout, or reports shutdown once ctx is done.
func replyTo(ctx context.Context, answerer ports.QuestionAnswerer, data []byte, timeout time.Duration) []byte {
	if ctx.Err() != nil {
		return encodeReply(questionReply{Error: errShuttingDown})
	}
	answerCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return handleRequest(answerCtx, answerer, data)
}

// handleRequest accepts either {"question": "..."} or the bare question text.
func handleRequest(ctx context.Context, answerer ports.QuestionAnswerer, data []byte) []byte {
	question, err := decodeQuestion(data)
	if err != nil {
		return encodeReply(questionReply{Error: err.Error()})
	}

	answer, err := answerer.Answer(ctx, question)
	if err != nil {
		slog.Error("nats_answer_failed", "error", err)
		return encodeReply(questionReply{Error: err.Error()})
	}
	return encodeReply(questionReply{Answer: answer})
}

func decodeQuestion(data []byte) (string, error) {
	raw := strings.TrimSpace(string(data))
	question := raw
	if strings.HasPrefix(raw, "{") {
		var req questionRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return "", domain.WrapError(domain.ErrInvalidInput, "decode question", err)
		}
		question = strings.TrimSpace(req.Question)
	}
	if question == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "decode question", errors.New("question is required"))
	}
	return question, nil
}

func encodeReply(reply questionReply) []byte {
	out, err := json.Marshal(reply)
	if err != nil {
		return []byte(`{"error":"encode reply failed"}`)
	}
	return out
}
