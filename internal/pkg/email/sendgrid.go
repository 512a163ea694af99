package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewSendGridSender creates a SendGridSender
func NewSendGridSender(apiKey string, from Address) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(from.Name, from.Email),
	}
}

// Send implements Sender.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	m := sgmail.NewSingleEmail(s.from, msg.Subject, sgmail.NewEmail(msg.To.Name, msg.To.Email), msg.Text, msg.HTML)
	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected message: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
