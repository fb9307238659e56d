package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sink delivers one message over an authenticated transport.
type Sink interface {
	Send(to, subject, body string) error
}

// SMTPSink sends mail synchronously over SMTP with implicit TLS.
type SMTPSink struct {
	From   string
	dialer *gomail.Dialer
}

// NewSMTPSink creates a sink. Port 465 with SSL matches the usual
// smtps submission setup (Gmail and friends).
func NewSMTPSink(host string, port int, username, password, from string) *SMTPSink {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = port == 465
	return &SMTPSink{From: from, dialer: d}
}

func (s *SMTPSink) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
