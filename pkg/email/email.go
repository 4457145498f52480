package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when no SMTP host is set.
var ErrNotConfigured = errors.New("email is not configured")

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
	AppName      string
}

// SendFunc delivers a fully built message. It matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   SendFunc
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	if config.AppName == "" {
		config.AppName = "Tailor Shop"
	}
	return &EmailService{config: config, send: smtp.SendMail}
}

// WithSender replaces the SMTP transport, mostly for tests.
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

// IsConfigured reports whether an SMTP host is set.
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != ""
}

// ManagerWelcome is the data shown in the welcome email of a new shop manager.
type ManagerWelcome struct {
	ManagerName string
	Email       string
	ShopName    string
	Password    string
}

// SendManagerWelcome tells a new manager which shop they run and how to sign in.
func (s *EmailService) SendManagerWelcome(w ManagerWelcome) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	htmlContent, err := s.renderManagerWelcome(w)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("You now manage %s - %s", w.ShopName, s.config.AppName)
	message := s.buildHTMLEmail(w.Email, subject, htmlContent)

	return s.sendEmail(w.Email, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		headerSafe(s.config.FromName),
		s.config.FromEmail,
		headerSafe(to),
		headerSafe(subject),
	)

	return []byte(headers + htmlBody)
}

// headerSafe drops line breaks so user input cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}

var managerWelcomeTmpl = template.Must(template.New("manager_welcome").Parse(managerWelcomeTemplate))

func (s *EmailService) renderManagerWelcome(w ManagerWelcome) (string, error) {
	data := struct {
		ManagerWelcome
		AppName  string
		LoginURL string
	}{
		ManagerWelcome: w,
		AppName:        s.config.AppName,
		LoginURL:       strings.TrimRight(s.config.FrontendURL, "/") + "/login",
	}

	var buf bytes.Buffer
	if err := managerWelcomeTmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const managerWelcomeTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome to {{.AppName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #1a1a2e; padding: 32px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 26px;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 36px 30px; color: #4a5568; font-size: 16px; line-height: 1.6;">
                            <p style="margin: 0 0 16px 0;">Hello {{.ManagerName}},</p>
                            <p style="margin: 0 0 16px 0;">You have been appointed manager of <strong>{{.ShopName}}</strong>.</p>
                            <p style="margin: 0 0 8px 0;">Sign in with:</p>
                            <p style="margin: 0 0 4px 0;">Email: <strong>{{.Email}}</strong></p>
                            {{- if .Password}}
                            <p style="margin: 0 0 24px 0;">Temporary password: <strong>{{.Password}}</strong></p>
                            {{- end}}
                            <p style="margin: 0 0 24px 0;">
                                <a href="{{.LoginURL}}" style="display: inline-block; padding: 14px 28px; background-color: #1a1a2e; color: #ffffff; text-decoration: none; border-radius: 8px;">Open {{.AppName}}</a>
                            </p>
                            <p style="margin: 0; font-size: 14px; color: #718096;">Please change your password after the first sign in.</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
