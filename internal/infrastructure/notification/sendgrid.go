package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SendGridNotifier implements checkout.Notification over the SendGrid API.
// Delivery failures are logged and swallowed; checkout never fails because an
// email did not go out.
type SendGridNotifier struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewSendGridNotifier creates a new SendGridNotifier
func NewSendGridNotifier(cfg config.MailConfig, logger *zap.Logger) *SendGridNotifier {
	return &SendGridNotifier{cfg: cfg, logger: logger}
}

// SendOrderConfirmation sends the order confirmation email
func (n *SendGridNotifier) SendOrderConfirmation(ctx context.Context, email string, orderReference string) {
	subject := fmt.Sprintf("Order confirmation %s", orderReference)
	body := fmt.Sprintf(
		"Thank you for your order.\n\nYour order reference is %s. We will notify you when it ships.",
		orderReference,
	)
	n.send(email, subject, body)
}

// SendPasswordReset sends the password reset email
func (n *SendGridNotifier) SendPasswordReset(ctx context.Context, email string, token string) {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset token: %s\n\nIf you did not request this, ignore this email.",
		token,
	)
	n.send(email, "Password reset", body)
}

func (n *SendGridNotifier) send(to, subject, body string) {
	if n.cfg.SendGridAPIKey == "" {
		n.logger.Debug("mail delivery skipped, no API key configured",
			zap.String("subject", subject))
		return
	}

	from := mail.NewEmail(n.cfg.FromName, n.cfg.FromAddress)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body,
		fmt.Sprintf("<pre>%s</pre>", body))

	client := sendgrid.NewSendClient(n.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		n.logger.Error("mail delivery failed",
			zap.String("subject", subject),
			zap.Error(err))
		return
	}
	if response.StatusCode >= 400 {
		n.logger.Error("mail delivery rejected",
			zap.String("subject", subject),
			zap.Int("status", response.StatusCode))
		return
	}

	n.logger.Info("mail sent",
		zap.String("subject", subject),
		zap.Int("status", response.StatusCode))
}
