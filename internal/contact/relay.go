package contact

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/brownbull-back/pkg/models"
)

// Sender delivers a composed notification.
//
//go:generate mockgen -package=contact -destination=mock_sender_test.go -source=relay.go Sender
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"lines": func(s string) template.HTML {
		parts := strings.Split(newlines.Replace(s), "\n")
		for i, p := range parts {
			parts[i] = template.HTMLEscapeString(p)
		}
		return template.HTML(strings.Join(parts, "<br>"))
	},
}).Parse(`
{{define "contact"}}<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{lines .Body}}</p>
{{end}}
{{define "complaint"}}<h3>New Complaint Submission</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Complaint:</strong></p>
<p>{{lines .Complaint}}</p>
{{end}}`))

// Relay validates site form submissions and forwards them to the site owner
type Relay struct {
	sender   Sender
	to       string
	validate *validator.Validate
	logger   *logrus.Entry
}

// NewRelay creates a relay delivering to the given recipient
func NewRelay(sender Sender, to string, logger *logrus.Logger) *Relay {
	return &Relay{
		sender:   sender,
		to:       to,
		validate: newValidator(),
		logger:   logger.WithField("component", "contact-relay"),
	}
}

// Submit validates a contact message and sends it exactly once
func (r *Relay) Submit(ctx context.Context, msg models.ContactMessage) error {
	if err := validate(r.validate, msg); err != nil {
		return err
	}

	html, err := render("contact", msg)
	if err != nil {
		return err
	}

	return r.deliver(ctx, models.Notification{
		To:      r.to,
		ReplyTo: msg.Email,
		Subject: "Contact Form: " + msg.Subject,
		HTML:    html,
	})
}

// SubmitComplaint validates a complaint and sends it exactly once
func (r *Relay) SubmitComplaint(ctx context.Context, c models.Complaint) error {
	if err := validate(r.validate, c); err != nil {
		return err
	}

	html, err := render("complaint", c)
	if err != nil {
		return err
	}

	return r.deliver(ctx, models.Notification{
		To:      r.to,
		ReplyTo: c.Email,
		Subject: "Complaint Form: " + c.Name,
		HTML:    html,
	})
}

func (r *Relay) deliver(ctx context.Context, n models.Notification) error {
	log := r.logger.WithFields(logrus.Fields{
		"subject":  n.Subject,
		"reply_to": n.ReplyTo,
	})

	if err := r.sender.Send(ctx, n); err != nil {
		log.WithError(err).Error("Failed to send notification")
		return &DeliveryError{Err: err}
	}

	log.Info("Notification sent")
	return nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
