package service

import (
	"context"
	"fmt"
	"html"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	inbox     string
}

// NewSendGridNotifier returns a Notifier that mails contact messages to inbox.
// An empty apiKey yields a notifier that does nothing.
func NewSendGridNotifier(apiKey, fromEmail, fromName, inbox string) Notifier {
	if apiKey == "" {
		return noopNotifier{}
	}
	return &sendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		inbox:     inbox,
	}
}

func (n *sendGridNotifier) NotifyContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	logger.ExternalServiceCall(ctx, "sendgrid", "send", "messageID", msg.ID)

	response, err := n.client.SendWithContext(ctx, contactEmail(n.fromName, n.fromEmail, n.inbox, msg))
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
	} else if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.ExternalServiceResult(ctx, "sendgrid", "send", err)
	return err
}

func contactEmail(fromName, fromEmail, inbox string, msg *domain.ContactMessage) *mail.SGMailV3 {
	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail("", inbox)

	subject := msg.Subject
	if subject == "" {
		subject = "New contact message"
	}
	subject = fmt.Sprintf("[Contact] %s", subject)

	plainText := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
	htmlContent := fmt.Sprintf(`<html><body><p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p></body></html>`,
		html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Message))

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	message.SetReplyTo(mail.NewEmail(msg.Name, msg.Email))
	return message
}

type noopNotifier struct{}

func (noopNotifier) NotifyContactMessage(context.Context, *domain.ContactMessage) error {
	return nil
}
