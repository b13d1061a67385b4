package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/config"
	domainErrors "github.com/UnyteAfrica/unyte-backoffice/internal/domain/errors"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/interfaces"
)

// Client sends mail over SMTP. Delivery is fire-and-forget from the caller's
// perspective: any failure maps to the generic delivery error and is not
// retried.
type Client struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

func NewClient(cfg *config.MailConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger.Named("mailer")}
}

// Send composes and delivers one message to all recipients within the
// configured timeout.
func (c *Client) Send(ctx context.Context, subject, body string, recipients []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, c.cfg.From, recipients, msg.Bytes())
	}()

	timeout := c.cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			c.logger.Error("smtp delivery failed", zap.Error(err), zap.Strings("recipients", recipients))
			return fmt.Errorf("%w: %v", domainErrors.ErrMailDelivery, err)
		}
		return nil
	case <-timer.C:
		c.logger.Error("smtp delivery timed out", zap.Strings("recipients", recipients))
		return fmt.Errorf("%w: send timed out", domainErrors.ErrMailDelivery)
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domainErrors.ErrMailDelivery, ctx.Err())
	}
}

var _ interfaces.Mailer = (*Client)(nil)
