// internal/dispatch/email_sender.go
package dispatch

import (
	"context"
	"fmt"
	"html"

	mail "gopkg.in/gomail.v2"

	"github.com/openchurch/campaign-service/internal/model"
)

// EmailSender delivers over SMTP.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Pass     string
	FromName string
}

func NewEmailSender(host string, port int, user, pass, fromName string) *EmailSender {
	return &EmailSender{Host: host, Port: port, User: user, Pass: pass, FromName: fromName}
}

func (s *EmailSender) Send(ctx context.Context, to model.Contact, msg Message) error {
	if to.Email == "" {
		return fmt.Errorf("recipient has no email address")
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", s.User, s.FromName)
	m.SetHeader("To", to.Email)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.ImageURL != "" {
		m.AddAlternative("text/html", htmlBody(msg.Body, msg.ImageURL))
	}

	d := mail.NewDialer(s.Host, s.Port, s.User, s.Pass)

	// gomail has no context support; bound the dial+send with the caller's
	// deadline so a stuck SMTP conversation cannot stall the batch.
	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("could not send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func htmlBody(body, imageURL string) string {
	return fmt.Sprintf(
		`<p>%s</p><img src=%q alt="" style="max-width:100%%"/>`,
		html.EscapeString(body), imageURL,
	)
}
