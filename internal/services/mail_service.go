package services

import (
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/smtp"
	"strings"

	"github.com/example/tanksmart/internal/config"
)

// ErrSMTPNotConfigured is returned when a mail is requested without SMTP
// settings in place. The affected send fails; nothing else is touched.
var ErrSMTPNotConfigured = errors.New("smtp is not configured")

// MailService delivers rendered emails over SMTP.
type MailService struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string

	// send is swappable for tests.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailService constructs a MailService from configuration.
func NewMailService(cfg *config.Config) *MailService {
	return &MailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromName:  cfg.SMTPFromName,
		fromEmail: cfg.SMTPFromEmail,
		send:      smtp.SendMail,
	}
}

// Configured reports whether the transport has enough settings to send.
func (s *MailService) Configured() bool {
	return s.host != "" && s.fromEmail != ""
}

// Send delivers a multipart/alternative mail with plain-text and HTML parts.
func (s *MailService) Send(to, subject, html, text string) error {
	if !s.Configured() {
		return ErrSMTPNotConfigured
	}

	msg, err := buildMessage(s.fromName, s.fromEmail, to, subject, html, text)
	if err != nil {
		return fmt.Errorf("build mail: %w", err)
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

const mimeBoundary = "tsmailpart"

func buildMessage(fromName, fromEmail, to, subject, html, text string) ([]byte, error) {
	var b strings.Builder

	// Non-ASCII header values need RFC 2047 encoding; QEncoding passes plain
	// ASCII through unchanged.
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", fromName), fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mimeBoundary)

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=\"UTF-8\"", text},
		{"text/html; charset=\"UTF-8\"", html},
	} {
		fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
		fmt.Fprintf(&b, "Content-Type: %s\r\n", part.contentType)
		b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")

		w := quotedprintable.NewWriter(&b)
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		b.WriteString("\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String()), nil
}
