package notification

import (
	"context"

	appnotification "github.com/ghxstship/backend/internal/application/notification"
	"github.com/ghxstship/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// Send logs msg
func (m *LogMailer) Send(_ context.Context, msg appnotification.Message) error {
	m.logger.Info("Email not sent, SMTP is not configured",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)))
	return nil
}

// NewMailer returns an SMTP mailer when cfg is complete and a LogMailer otherwise
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) appnotification.Mailer {
	if m, err := NewSMTPMailer(cfg, logger); err == nil {
		return m
	}
	return NewLogMailer(logger)
}

var _ appnotification.Mailer = (*LogMailer)(nil)
