package services

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"edunest/internal/config"
	"edunest/internal/domain"
)

// EmailService notifies the school office about new submissions
type EmailService struct {
	cfg *config.EmailConfig
	log *zap.Logger
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig, log *zap.Logger) *EmailService {
	return &EmailService{cfg: cfg, log: log}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

var notificationHTML = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2E7D5B;">{{.Title}}</h2>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px;">
        {{range .Fields}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
        {{end}}</div>
        <p style="color: #64748B; font-size: 14px;">Reference #{{.ID}}</p>
    </div>
</body>
</html>`))

type notificationField struct {
	Label string
	Value string
}

type notification struct {
	Title  string
	ID     int64
	Fields []notificationField
}

func (n notification) text() string {
	var b strings.Builder
	b.WriteString(n.Title + "\n\n")
	for _, f := range n.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	fmt.Fprintf(&b, "\nReference #%d\n", n.ID)
	return b.String()
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

// NotifyInquiry sends the office a summary of a new inquiry
func (s *EmailService) NotifyInquiry(inq *domain.Inquiry) error {
	return s.send(fmt.Sprintf("New inquiry from %s", inq.Name), notification{
		Title: "New Inquiry",
		ID:    inq.ID,
		Fields: []notificationField{
			{"Name", inq.Name},
			{"Email", inq.Email},
			{"Phone", inq.Phone},
			{"Submitted", inq.CreatedAt.Format("January 2, 2006 at 3:04 PM")},
			{"Message", orNotProvided(inq.Message)},
		},
	})
}

// NotifyAdmission sends the office a summary of a new admission application
func (s *EmailService) NotifyAdmission(adm *domain.Admission) error {
	return s.send(fmt.Sprintf("New admission application for %s", adm.ChildName), notification{
		Title: "New Admission Application",
		ID:    adm.ID,
		Fields: []notificationField{
			{"Child", adm.ChildName},
			{"Date of birth", adm.ChildDOB},
			{"Program", adm.Program},
			{"Parent", adm.ParentName},
			{"Email", adm.Email},
			{"Phone", adm.Phone},
			{"Address", orNotProvided(adm.Address)},
			{"Submitted", adm.CreatedAt.Format("January 2, 2006 at 3:04 PM")},
		},
	})
}

func (s *EmailService) send(subject string, n notification) error {
	if !s.cfg.Enabled {
		s.log.Info("email disabled, notification not sent", zap.String("subject", subject))
		return nil
	}

	var html bytes.Buffer
	if err := notificationHTML.Execute(&html, n); err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}
	return s.SendHTMLEmail(s.cfg.OfficeEmail, subject, html.String(), n.text())
}

// SendHTMLEmail sends a multipart text/HTML email
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	msg := buildMessage(from, to, subject, htmlBody, textBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{headerValue(to)}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// headerValue drops CR and LF so a value cannot end its header line.
func headerValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// buildMessage renders a multipart text/HTML message. Header values are
// flattened to one line and the subject is Q-encoded when it is not plain ASCII.
func buildMessage(from, to, subject, htmlBody, textBody string) []byte {
	const boundary = "----=_EduNest_Part_0"

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&msg, "To: %s\r\n", headerValue(to))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)
	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, textBody)
	if htmlBody != "" {
		fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, htmlBody)
	}
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)
	return []byte(msg.String())
}
