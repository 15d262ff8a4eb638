package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends through a plain SMTP relay (mailhog in local dev).
type SMTPSender struct {
	Addr string // host:port
	From string
}

func NewSMTPSender(addr, from string) *SMTPSender {
	if from == "" {
		from = "no-reply@advobook.local"
	}
	return &SMTPSender{Addr: addr, From: from}
}

func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	return smtp.SendMail(s.Addr, nil, s.From, []string{to}, []byte(msg.String()))
}

// NoopSender drops messages; used when no SMTP relay is configured.
type NoopSender struct{}

func (NoopSender) Send(context.Context, string, string, string) error { return nil }
