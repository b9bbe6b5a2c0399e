package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Dispatcher fires notifications on a background goroutine after the
// triggering transaction has committed. Dispatch failures never reach
// the request path; they are observable only in logs.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
}

func NewDispatcher(notifier Notifier, log *zap.Logger) *Dispatcher {
	return &Dispatcher{notifier: notifier, log: log}
}

func (d *Dispatcher) Dispatch(to, subject, body string) {
	if d == nil || d.notifier == nil || to == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := d.notifier.Notify(ctx, to, subject, body); err != nil {
			d.log.Warn("notification dispatch failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
	}()
}
