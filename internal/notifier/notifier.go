package notifier

import (
	"context"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier delivers an early-warning message to a set of recipients.
type Notifier interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// SMTPNotifier sends mail through an SMTP server.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPNotifier returns an SMTP-backed notifier.
func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers the message. gomail has no context support, so cancellation
// is only checked before dialing.
func (n *SMTPNotifier) Send(ctx context.Context, subject, body string, recipients []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return n.dialer.DialAndSend(m)
}

// LogNotifier writes messages to the log instead of delivering them. Used
// when no SMTP server is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a log-only notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, subject, body string, recipients []string) error {
	n.logger.Warn("early warning not delivered, SMTP is not configured",
		zap.String("subject", subject),
		zap.String("body", body),
		zap.Strings("recipients", recipients),
	)
	return nil
}
