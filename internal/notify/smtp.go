package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
)

// Mailer sends reminder emails over SMTP.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailer(host, port, user, password, from string) *Mailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &Mailer{
		addr: net.JoinHostPort(host, port),
		auth: auth,
		from: from,
	}
}

func (m *Mailer) Contact(r Recipient) (string, bool) {
	return r.Email, r.Email != ""
}

func (m *Mailer) SendReminder(ctx context.Context, contact, title, label string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Task Reminder\r\n\r\nYour task %q is starting %s.\r\n",
		m.from, contact, title, label)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{contact}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// SendPasswordReset mails a reset link to the account's address.
func (m *Mailer) SendPasswordReset(ctx context.Context, contact, link string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Password Reset\r\n\r\nYou requested a password reset.\r\nOpen this link to set a new password: %s\r\n",
		m.from, contact, link)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{contact}, []byte(msg)); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
