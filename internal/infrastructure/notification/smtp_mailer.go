// Package notification delivers email over SMTP, or to the log when no SMTP
// server is configured.
package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	appnotification "github.com/ghxstship/backend/internal/application/notification"
	"github.com/ghxstship/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through an SMTP relay with PLAIN auth
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
	send   sendFunc
	now    func() time.Time
}

// NewSMTPMailer creates a mailer for cfg
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if !cfg.Configured() {
		return nil, errors.New("smtp: host and from address are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{cfg: cfg, logger: logger, send: smtp.SendMail, now: time.Now}, nil
}

// Send delivers msg to every recipient in one transaction
func (m *SMTPMailer) Send(ctx context.Context, msg appnotification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := cleanRecipients(msg.To)
	if len(to) == 0 {
		return errors.New("smtp: no recipients")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	body := buildMessage(m.cfg.From, to, msg.Subject, msg.Body, m.now())
	if err := m.send(addr, auth, m.cfg.From, to, body); err != nil {
		m.logger.Error("Failed to send email",
			zap.Strings("to", to),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return fmt.Errorf("smtp: failed to send mail: %w", err)
	}

	m.logger.Info("Email sent", zap.Strings("to", to), zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(from string, to []string, subject, body string, date time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(strings.Join(to, ", ")))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(subject)))
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}

// headerValue strips CR and LF so values cannot inject extra headers
func headerValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

func cleanRecipients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, addr := range in {
		addr = strings.TrimSpace(headerValue(addr))
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

var _ appnotification.Mailer = (*SMTPMailer)(nil)
