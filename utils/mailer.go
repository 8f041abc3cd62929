package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
	"propdesk/config"
)

type EmailData struct {
	Subject  string
	To       []string
	Template string
	Data     interface{}
}

// Mailer delivers templated emails.
type Mailer interface {
	Send(data EmailData) error
}

// Embedded email templates
var emailTemplates = map[string]string{
	"service_request_created": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .ticket { font-size: 22px; font-weight: bold; color: #2563eb; margin: 16px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <h2>We received your service request</h2>
    <div class="ticket">{{.Ticket}}</div>
    <p><strong>{{.Type}}</strong> at {{.Location}}</p>
    <p>{{.Description}}</p>
    <p>We will let you know when someone is on it.</p>
    <div class="footer">© {{.Year}} PropDesk</div>
</body>
</html>`,

	"service_request_assigned": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>New service request for {{.Team}}</h2>
    <p><strong>{{.Ticket}}</strong>: {{.Type}}</p>
    <p>Location: {{.Location}}</p>
    <p>Requested by {{.Requestor}}</p>
    <p>{{.Description}}</p>
    <p style="font-size: 12px; color: #7f8c8d;">© {{.Year}} PropDesk</p>
</body>
</html>`,
}

func renderEmail(data EmailData) (string, error) {
	tmplContent, ok := emailTemplates[data.Template]
	if !ok {
		return "", fmt.Errorf("template '%s' not found", data.Template)
	}

	tmpl, err := template.New("email").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data.Data); err != nil {
		return "", fmt.Errorf("error executing template: %v", err)
	}
	return body.String(), nil
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns an SMTP mailer, or a mailer that only logs when no SMTP
// host is configured.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(data EmailData) error {
	if len(data.To) == 0 {
		return nil
	}
	body, err := renderEmail(data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", data.To...)
	msg.SetHeader("Subject", data.Subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

// LogMailer renders the email and logs it instead of sending.
type LogMailer struct{}

func (LogMailer) Send(data EmailData) error {
	if _, err := renderEmail(data); err != nil {
		return err
	}
	LogEvent("email_skipped", map[string]interface{}{
		"template": data.Template,
		"to":       data.To,
		"subject":  data.Subject,
	})
	return nil
}

// TemplateYear is exposed to templates for the footer.
func TemplateYear() int {
	return time.Now().Year()
}
