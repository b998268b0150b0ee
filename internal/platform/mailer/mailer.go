// Package mailer delivers confirmation-code email via SMTP. It consumes
// code-issued events off the in-process bus so request handling never waits
// on a mail server.
package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ratehub/internal/shared/events"

	"github.com/caarlos0/env/v11"
	"gopkg.in/gomail.v2"
)

// SMTPConfig is parsed from the environment; defaults suit a local MailHog.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"localhost"`
	Port     int    `env:"SMTP_PORT" envDefault:"1025"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@ratehub.local"`
}

func LoadSMTPConfig() (SMTPConfig, error) {
	var cfg SMTPConfig
	if err := env.Parse(&cfg); err != nil {
		return SMTPConfig{}, fmt.Errorf("parse smtp config: %w", err)
	}
	return cfg, nil
}

// Mailer sends plain-text messages through a gomail dialer.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

func New(cfg SMTPConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// codePayload mirrors the identity module's code notification shape.
type codePayload struct {
	Username string `json:"Username"`
	Email    string `json:"Email"`
	Code     string `json:"Code"`
}

// Subscriber is the slice of the platform bus the dispatcher needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

// StartCodeDispatcher consumes code-issued events and mails the code to the
// registered address.
func (m *Mailer) StartCodeDispatcher(ctx context.Context, bus Subscriber, topic string) error {
	return bus.Subscribe(ctx, topic, "mailer-code-dispatch-cg", func(ctx context.Context, event events.Envelope) error {
		payload, err := decodeCodePayload(event.Payload)
		if err != nil {
			return err
		}
		body := fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n", payload.Username, payload.Code)
		if err := m.Send(payload.Email, "Your confirmation code", body); err != nil {
			return err
		}
		m.logger.Info("confirmation code mailed",
			"event", "mailer_code_sent",
			"module", "internal/platform/mailer",
			"layer", "platform",
			"username", payload.Username,
		)
		return nil
	})
}

func decodeCodePayload(payload any) (codePayload, error) {
	// Payloads arrive typed in-process; the JSON round trip keeps this tolerant
	// of any struct carrying the same fields.
	raw, err := json.Marshal(payload)
	if err != nil {
		return codePayload{}, fmt.Errorf("encode code payload: %w", err)
	}
	var decoded codePayload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return codePayload{}, fmt.Errorf("decode code payload: %w", err)
	}
	return decoded, nil
}
