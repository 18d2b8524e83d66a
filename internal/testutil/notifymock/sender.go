package notifymock

import (
	"context"

	"github.com/okey68/paya-marketplace-sub000/internal/notify"
)

// Notifier is a function-backed notifier; it also records every message
// so tests can assert on what went out.
type Notifier struct {
	SendFn   func(ctx context.Context, m notify.Message) (string, error)
	Messages []notify.Message
}

func (n *Notifier) Send(ctx context.Context, m notify.Message) (string, error) {
	n.Messages = append(n.Messages, m)
	if n.SendFn != nil {
		return n.SendFn(ctx, m)
	}
	return "mock-message-id", nil
}

func (n *Notifier) TrySend(ctx context.Context, m notify.Message) (string, bool) {
	id, err := n.Send(ctx, m)
	if err != nil {
		return "", false
	}
	return id, true
}
