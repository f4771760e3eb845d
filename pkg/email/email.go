package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	htmltemplate "html/template"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	texttemplate "text/template"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/logger"
)

// AcknowledgmentSubject is the subject line of every auto-reply.
const AcknowledgmentSubject = "Thank you for reaching out"

// EmailService sends acknowledgment emails over an authenticated STARTTLS session
type EmailService struct {
	host       string
	port       string
	username   string
	password   string
	senderName string
	fromEmail  string
	timeout    time.Duration
	// tlsConfig overrides the STARTTLS client config; nil verifies against the system roots
	tlsConfig *tls.Config
}

// AcknowledgmentData holds the fields rendered into the acknowledgment
type AcknowledgmentData struct {
	Name       string
	Subject    string
	Message    string
	SenderName string
}

// NewEmailService builds the SMTP sender. The sender address doubles as the SMTP login.
func NewEmailService(cfg *config.Config) (*EmailService, error) {
	var missing []string
	if cfg.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if cfg.SenderEmail == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	if cfg.SenderPassword == "" {
		missing = append(missing, "SENDER_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, &domain.ConfigError{Component: "email service", Missing: missing}
	}

	port := cfg.SMTPPort
	if port == "" {
		port = "587"
	}
	timeout := cfg.SMTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &EmailService{
		host:       cfg.SMTPHost,
		port:       port,
		username:   cfg.SenderEmail,
		password:   cfg.SenderPassword,
		senderName: cfg.SenderName,
		fromEmail:  cfg.SenderEmail,
		timeout:    timeout,
	}, nil
}

const acknowledgmentTextTemplate = `Hello {{.Name}},

Thank you for visiting my web portfolio.

I have received your message and appreciate the time you took to write.
I will review your message and get back to you as soon as possible.

For your reference, here is a copy of your message:

Subject: {{.Subject}}

Message:
{{.Message}}

Kind regards,
{{.SenderName}}
`

// acknowledgmentHTMLTemplate is rendered with html/template so user fields are escaped
const acknowledgmentHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Thank you for contacting me</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f2f5f9; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; color: #2c3e50;">
    <table width="100%" cellpadding="0" cellspacing="0" style="padding: 24px 0;">
        <tr>
            <td align="center">
                <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 10px; overflow: hidden;">
                    <tr>
                        <td style="background: #1f3c88; padding: 22px 26px; color: #ffffff;">
                            <h1 style="margin: 0; font-size: 22px; font-weight: 600;">Thanks for Getting in Touch</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 26px;">
                            <p style="font-size: 15px; margin-top: 0;">Hello <strong>{{.Name}}</strong>,</p>
                            <p style="font-size: 15px; line-height: 1.6;">Thank you for visiting my web portfolio.</p>
                            <p style="font-size: 15px; line-height: 1.6;">
                                I have received your message and appreciate the time you took to write.
                                I will review your message and get back to you as soon as possible.
                            </p>
                            <p style="font-size: 14px; line-height: 1.6; color: #6b7280;">For your reference, here is a copy of your message:</p>
                            <div style="margin: 22px 0; padding: 18px; background-color: #f8fafc; border-radius: 8px; border-left: 4px solid #3a7bd5;">
                                <p style="margin: 0 0 8px 0; font-size: 14px;"><strong>Subject:</strong> {{.Subject}}</p>
                                <p style="margin: 0; font-size: 14px; line-height: 1.6; white-space: pre-line;">{{.Message}}</p>
                            </div>
                            <p style="margin-bottom: 0; font-size: 14px;">Kind regards,<br><strong>{{.SenderName}}</strong></p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 14px 26px; background-color: #f2f5f9; font-size: 12px; color: #6b7280; text-align: center;">
                            This is an automated acknowledgment from {{.SenderName}}'s portfolio website.
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

var (
	textTmpl = texttemplate.Must(texttemplate.New("ack-text").Parse(acknowledgmentTextTemplate))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("ack-html").Parse(acknowledgmentHTMLTemplate))
)

// ComposeAcknowledgment renders the plain text and HTML bodies
func (s *EmailService) ComposeAcknowledgment(name, subject, message string) (string, string, error) {
	data := AcknowledgmentData{
		Name:       name,
		Subject:    subject,
		Message:    message,
		SenderName: s.senderName,
	}

	var text bytes.Buffer
	if err := textTmpl.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text template: %w", err)
	}

	var html bytes.Buffer
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("failed to execute html template: %w", err)
	}

	return text.String(), html.String(), nil
}

// BuildMessage assembles a multipart/alternative message: plain text first, HTML second.
func (s *EmailService) BuildMessage(recipientEmail, name, subject, message string) ([]byte, error) {
	to, err := mail.ParseAddress(recipientEmail)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	textBody, htmlBody, err := s.ComposeAcknowledgment(name, subject, message)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	from := mail.Address{Name: s.senderName, Address: s.fromEmail}
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from.String())
	fmt.Fprintf(&msg, "To: %s\r\n", to.String())
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", AcknowledgmentSubject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

	if err := writePart(mw, "text/plain; charset=UTF-8", textBody); err != nil {
		return nil, err
	}
	if err := writePart(mw, "text/html; charset=UTF-8", htmlBody); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

func writePart(mw *multipart.Writer, contentType, content string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	header.Set("Content-Transfer-Encoding", "quoted-printable")

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", contentType, err)
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write %s part: %w", contentType, err)
	}
	return qp.Close()
}

// SendAcknowledgment sends the auto-reply to the submitter. Failures are logged and
// reported as false; they never propagate to the caller.
func (s *EmailService) SendAcknowledgment(ctx context.Context, recipientEmail, name, subject, message string) bool {
	msg, err := s.BuildMessage(recipientEmail, name, subject, message)
	if err != nil {
		logger.Log.Error("Failed to build acknowledgment email", "error", err)
		return false
	}

	if err := s.send(ctx, recipientEmail, msg); err != nil {
		logger.Log.Error("Failed to send acknowledgment email", "error", err, "smtp_host", s.host)
		return false
	}

	logger.Log.Info("Acknowledgment email sent")
	return true
}

// send runs one SMTP session bounded by s.timeout. The session is closed on every path.
func (s *EmailService) send(ctx context.Context, recipientEmail string, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	addr := net.JoinHostPort(s.host, s.port)
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer client.Close()

	tlsConfig := s.tlsConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starttls failed: %w", err)
	}
	if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := client.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(recipientEmail); err != nil {
		return fmt.Errorf("RCPT TO rejected: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message not accepted: %w", err)
	}

	return client.Quit()
}
