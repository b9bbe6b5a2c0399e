package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Notifier delivers one message to one recipient. Delivery is best
// effort; callers go through Dispatcher and never see failures.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTP(host, port, from, user, pass string) *SMTPNotifier {
	n := &SMTPNotifier{
		addr: host + ":" + port,
		from: from,
	}
	if user != "" {
		n.auth = smtp.PlainAuth("", user, pass, host)
	}
	return n
}

func (n *SMTPNotifier) Notify(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.from, to, subject, body)
	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg))
}

// LogNotifier stands in when SMTP is not configured: the message is
// logged and treated as delivered.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, to, subject, body string) error {
	n.log.Info("notification (smtp not configured)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
