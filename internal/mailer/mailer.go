// Package mailer delivers the digest over authenticated SMTP with implicit
// TLS. Delivery failure is the one fatal error in a run: a silently lost
// digest defeats the whole system.
package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// Mailer is the delivery collaborator; the orchestrator only knows this.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type SMTP struct {
	Host     string
	Port     int
	Password string
}

func NewSMTP(host string, port int, password string) *SMTP {
	return &SMTP{Host: host, Port: port, Password: password}
}

func (s *SMTP) Send(ctx context.Context, from, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.Host,
		mail.WithPort(s.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(from),
		mail.WithPassword(s.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}
