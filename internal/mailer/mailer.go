package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/brownbull-back/pkg/config"
	"github.com/brownbull-back/pkg/models"
)

// ErrDisabled is returned by the sender used when no SMTP host is configured
var ErrDisabled = errors.New("mail transport is not configured")

// SMTPMailer sends notifications through an authenticated SMTP relay
type SMTPMailer struct {
	cfg    *config.SMTPConfig
	from   string
	logger *logrus.Entry
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg *config.SMTPConfig, from string, logger *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		from:   from,
		logger: logger.WithField("component", "smtp"),
	}
}

// Send dials the relay and delivers n. A new connection is made per call.
func (m *SMTPMailer) Send(ctx context.Context, n models.Notification) error {
	msg, err := buildMessage(m.from, n)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send via %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}

	m.logger.WithFields(logrus.Fields{
		"host":    m.cfg.Host,
		"subject": n.Subject,
	}).Debug("Message accepted by SMTP relay")

	return nil
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(m.cfg.Timeout),
	}

	if m.cfg.ImplicitTLS {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	return opts
}

func buildMessage(from string, n models.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(n.To); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	setReplyTo(msg, n.ReplyTo)

	msg.Subject(n.Subject)
	msg.SetBodyString(mail.TypeTextHTML, n.HTML)

	return msg, nil
}

// setReplyTo sets Reply-To from addr. Addresses the RFC 5322 parser refuses
// but that carry no whitespace are written verbatim; anything else is left out.
func setReplyTo(msg *mail.Msg, addr string) {
	if addr == "" {
		return
	}
	if err := msg.ReplyTo(addr); err == nil {
		return
	}
	if strings.IndexFunc(addr, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return
	}
	msg.SetGenHeader(mail.HeaderReplyTo, addr)
}

// Disabled is a sender that rejects every message
type Disabled struct{}

// Send always fails with ErrDisabled
func (Disabled) Send(context.Context, models.Notification) error {
	return ErrDisabled
}
