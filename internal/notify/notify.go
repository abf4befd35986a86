package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/desuite/desuite-web/backend/internal/config"
	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/desuite/desuite-web/backend/pkg/logger"
	"github.com/desuite/desuite-web/backend/pkg/metrics"
	"github.com/resend/resend-go/v2"
)

// Notifier tells operators about a newly stored demo request.
type Notifier interface {
	DemoRequested(ctx context.Context, d *demorequest.DemoRequest) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) DemoRequested(context.Context, *demorequest.DemoRequest) error { return nil }

// sender is the part of the resend client used here.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Resend mails each new demo request to the configured operator addresses.
type Resend struct {
	emails sender
	from   string
	to     []string
	tmpl   *template.Template
}

// New returns a Resend notifier when an API key and recipients are configured, Nop otherwise.
func New(cfg config.NotifyConfig) Notifier {
	if cfg.ResendAPIKey == "" || len(cfg.To) == 0 {
		logger.Infof("operator notifications disabled")
		return Nop{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resend.NewCustomClient(&http.Client{Timeout: timeout}, cfg.ResendAPIKey)
	return newResend(client.Emails, cfg.From, cfg.To)
}

func newResend(emails sender, from string, to []string) *Resend {
	return &Resend{
		emails: emails,
		from:   from,
		to:     to,
		tmpl:   template.Must(template.New("demo-request").Parse(demoRequestTemplate)),
	}
}

func (r *Resend) DemoRequested(ctx context.Context, d *demorequest.DemoRequest) error {
	start := time.Now()
	defer func() {
		metrics.NotificationLatency.Observe(time.Since(start).Seconds())
	}()

	var body bytes.Buffer
	if err := r.tmpl.Execute(&body, d); err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("render notification: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      r.to,
		Subject: fmt.Sprintf("Demo request: %s (%s)", d.Company, d.Name),
		Html:    body.String(),
		ReplyTo: d.Email,
	}
	if _, err := r.emails.SendWithContext(ctx, params); err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("send notification: %w", err)
	}
	metrics.NotificationsSent.Inc()
	logger.Debugf("notified operators of demo request %s", d.ID)
	return nil
}

const demoRequestTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New demo request</title></head>
<body style="font-family: sans-serif; color: #333333;">
    <h2>New demo request</h2>
    <table cellpadding="4">
        <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
        <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
        <tr><td><strong>Company</strong></td><td>{{.Company}}</td></tr>
        {{if .UseCase}}<tr><td><strong>Use case</strong></td><td>{{.UseCase}}</td></tr>{{end}}
        <tr><td><strong>Received</strong></td><td>{{.CreatedAt.Format "2006-01-02 15:04:05 MST"}}</td></tr>
    </table>
    <p style="color: #777777; font-size: 12px;">Request ID {{.ID}}</p>
</body>
</html>`
