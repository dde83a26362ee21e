package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/go-mail/mail/v2"
)

//go:embed templates
var templateFS embed.FS

const sendAttempts = 3

type mailSender interface {
	DialAndSend(m ...*mail.Message) error
}

// MailSink e-mails each reminder to a fixed recipient.
type MailSink struct {
	sender    mailSender
	from      string
	recipient string
	tmpl      *template.Template
}

func NewMailSink(host string, port int, username, password, from, recipient string) (*MailSink, error) {
	return newMailSink(mail.NewDialer(host, port, username, password), from, recipient)
}

func newMailSink(sender mailSender, from, recipient string) (*MailSink, error) {
	tmpl, err := template.New("reminder").ParseFS(templateFS, "templates/reminder.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse reminder template: %w", err)
	}
	return &MailSink{sender: sender, from: from, recipient: recipient, tmpl: tmpl}, nil
}

func (s *MailSink) Deliver(ctx context.Context, n Notification) error {
	var subject, plainBody, htmlBody bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&subject, "subject", n); err != nil {
		return err
	}
	if err := s.tmpl.ExecuteTemplate(&plainBody, "plainBody", n); err != nil {
		return err
	}
	if err := s.tmpl.ExecuteTemplate(&htmlBody, "htmlBody", n); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", s.recipient)
	msg.SetHeader("From", s.from)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	var err error
	for i := 0; i < sendAttempts; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = s.sender.DialAndSend(msg); err == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to send reminder mail: %w", err)
}
