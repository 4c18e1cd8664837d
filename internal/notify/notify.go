// Package notify delivers review notifications on an allowed-to-fail side
// channel. A failed send is logged and recorded, never returned.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Sender delivers one notification. The surrounding app supplies the real
// implementation (email, push).
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

type failureRecorder interface {
	Record(ctx context.Context, f domain.NotificationFailure) error
}

// Dispatcher sends notifications without ever failing the caller.
type Dispatcher struct {
	sender   Sender
	failures failureRecorder
	log      *slog.Logger
}

// NewDispatcher creates a Dispatcher. failures may be nil, in which case
// failed sends are only logged.
func NewDispatcher(log *slog.Logger, sender Sender, failures failureRecorder) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		failures: failures,
		log:      log.With("service", "notify"),
	}
}

// Dispatch hands n to the sender. Errors are absorbed.
func (d *Dispatcher) Dispatch(ctx context.Context, n domain.Notification) {
	if d == nil || d.sender == nil {
		return
	}

	err := d.sender.Send(ctx, n)
	if err == nil {
		return
	}

	d.log.WarnContext(ctx, "notification send failed",
		slog.String("kind", n.Kind),
		slog.String("recipient", n.Recipient),
		slog.String("error", err.Error()),
	)

	if d.failures == nil {
		return
	}

	// Record even when the request that triggered the send is gone.
	recErr := d.failures.Record(context.WithoutCancel(ctx), domain.NotificationFailure{
		ID:           uuid.New(),
		Notification: n,
		Error:        err.Error(),
		CreatedAt:    time.Now().UTC(),
	})
	if recErr != nil {
		d.log.ErrorContext(ctx, "record notification failure",
			slog.String("kind", n.Kind),
			slog.String("error", recErr.Error()),
		)
	}
}

// LogSender writes each notification as a structured log line.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates the built-in sender.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log.With("component", "notify.log_sender")}
}

// Send logs n and always succeeds.
func (s *LogSender) Send(ctx context.Context, n domain.Notification) error {
	attrs := []any{
		slog.String("kind", n.Kind),
		slog.String("recipient", n.Recipient),
	}
	for k, v := range n.Variables {
		attrs = append(attrs, slog.String("var."+k, v))
	}
	s.log.InfoContext(ctx, "notification", attrs...)
	return nil
}
