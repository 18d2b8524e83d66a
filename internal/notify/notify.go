// Package notify carries customer, merchant and HR messages. Delivery
// transport is a deployment concern behind the Sender interface; the
// workflow only needs a message identifier back for its audit trail.
package notify

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []string
}

type Sender interface {
	Send(ctx context.Context, m Message) (messageID string, err error)
}

// LogSender records the message instead of delivering it. Used as the
// default wiring in environments without an email/Slack gateway.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("log_sender")}
}

func (s *LogSender) Send(_ context.Context, m Message) (string, error) {
	id := uuid.NewString()
	s.logger.Info("message recorded",
		zap.String("message_id", id),
		zap.String("to", m.To),
		zap.String("subject", m.Subject),
		zap.Int("attachments", len(m.Attachments)))
	return id, nil
}

const maxSendRetries = 3

// Dispatcher wraps a Sender with bounded exponential retry.
type Dispatcher struct {
	sender Sender
	logger *zap.Logger
}

func NewDispatcher(sender Sender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger.Named("notify_dispatcher")}
}

// Send retries transient failures and returns the last error once the
// retry budget is exhausted.
func (d *Dispatcher) Send(ctx context.Context, m Message) (string, error) {
	var msgID string
	op := func() error {
		id, err := d.sender.Send(ctx, m)
		if err != nil {
			return err
		}
		msgID = id
		return nil
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, maxSendRetries), ctx))
	if err != nil {
		return "", err
	}
	return msgID, nil
}

// TrySend is for callers whose state transition has already committed:
// the failure is logged and reported as a flag, never as an error.
func (d *Dispatcher) TrySend(ctx context.Context, m Message) (string, bool) {
	id, err := d.Send(ctx, m)
	if err != nil {
		d.logger.Warn("notification failed",
			zap.String("to", m.To),
			zap.String("subject", m.Subject),
			zap.Error(err))
		return "", false
	}
	return id, true
}
