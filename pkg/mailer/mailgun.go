package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain  string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string, timeout time.Duration) *Mailgun {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender, Timeout: timeout}
}

// Attachment is an in-memory file attached to an outgoing message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Send sends an email via Mailgun. html is optional; if provided it is used as
// the HTML body. A transport failure (including the timeout) comes back as a
// TransportError.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string, attachments ...Attachment) (string, error) {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	for _, a := range attachments {
		msg.AddBufferAttachment(a.Filename, a.Content)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, id, err := client.Send(c, msg)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	return id, nil
}

// TransportError marks a failure in the external mail transport. Callers treat
// it as non-fatal to the business decision that triggered the send.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("mail transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }
