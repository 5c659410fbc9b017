package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
	"github.com/Balaji91221/resume-screening-app/internal/infrastructure/resilience"
)

const (
	EventScreened   = "resume.screened"
	publishOp       = "nats.publish"
	headerMessageID = "Nats-Msg-Id"
	headerEventType = "Event-Type"
)

// ScreenedEvent announces a finished screening. It carries the result only,
// never document text.
type ScreenedEvent struct {
	Event       string                `json:"event"`
	ScreeningID string                `json:"screening_id"`
	Filename    string                `json:"filename"`
	Format      domain.DocumentFormat `json:"format"`
	CategoryID  domain.CategoryID     `json:"category_id"`
	Category    string                `json:"category"`
	WordCount   int                   `json:"word_count"`
	Accuracy    *float64              `json:"accuracy,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func NewScreenedEvent(s *domain.Screening) ScreenedEvent {
	return ScreenedEvent{
		Event:       EventScreened,
		ScreeningID: s.ID,
		Filename:    s.Filename,
		Format:      s.Format,
		CategoryID:  s.CategoryID,
		Category:    s.Category,
		WordCount:   s.WordCount,
		Accuracy:    s.Accuracy,
		CreatedAt:   s.CreatedAt,
	}
}

type Publisher struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
}

func NewPublisher(url, subject string, options Options) (*Publisher, error) {
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

	conn, err := nats.Connect(
		url,
		nats.Name("resume-screening-app"),
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
	return &Publisher{
		conn:     conn,
		subject:  subject,
		executor: options.ResilienceExecutor,
	}, nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			p.conn.Close()
		}
	}
}

func (p *Publisher) PublishScreened(ctx context.Context, s *domain.Screening) error {
	msg, err := newScreenedMsg(p.subject, s)
	if err != nil {
		return err
	}

	call := func(attemptCtx context.Context) error {
		if err := attemptCtx.Err(); err != nil {
			return err
		}
		if err := p.conn.PublishMsg(msg); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if p.executor != nil {
		err = p.executor.Execute(ctx, publishOp, call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	return nil
}

func newScreenedMsg(subject string, s *domain.Screening) (*nats.Msg, error) {
	payload, err := json.Marshal(NewScreenedEvent(s))
	if err != nil {
		return nil, fmt.Errorf("marshal screened event: %w", err)
	}
	msg := nats.NewMsg(subject)
	msg.Data = payload
	// Lets a JetStream stream on the subject drop duplicate deliveries.
	msg.Header.Set(headerMessageID, s.ID)
	msg.Header.Set(headerEventType, EventScreened)
	return msg, nil
}
