package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Address is a named mailbox.
type Address struct {
	Name  string
	Email string
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return mime.QEncoding.Encode("utf-8", a.Name) + " <" + a.Email + ">"
}

// Message is one rendered email.
type Message struct {
	To      Address
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message. Implementations honor ctx cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     Address
	// UseTLS selects implicit TLS (usually port 465). Otherwise STARTTLS is
	// used when the server offers it.
	UseTLS bool
}

// SMTPSender sends HTML mail through an SMTP relay.
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{config: config, logger: logger}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	serverAddress := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	tlsConfig := &tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", serverAddress)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server %s: %w", serverAddress, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if s.config.UseTLS {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if !s.config.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("STARTTLS failed: %w", err)
			}
		}
	}

	if s.config.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("SMTP authentication failed: %w", err)
			}
		}
	}

	if err := client.Mail(s.config.From.Email); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(msg.To.Email); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(buildMIMEMessage(s.config.From, msg, time.Now())); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// buildMIMEMessage renders headers and the HTML body with CRLF line endings.
func buildMIMEMessage(from Address, msg Message, now time.Time) []byte {
	var b bytes.Buffer
	headers := [][2]string{
		{"From", from.String()},
		{"To", msg.To.String()},
		{"Subject", mime.QEncoding.Encode("utf-8", msg.Subject)},
		{"Date", now.Format(time.RFC1123Z)},
		{"Message-ID", "<" + uuid.NewString() + "@syllabus-tracker>"},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}
	for _, h := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h[0], h[1])
	}
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return b.Bytes()
}

// LogSender writes messages to the log instead of delivering them. Used in
// development when no transport is configured.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Warn().
		Str("to", msg.To.Email).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("Email transport not configured - message logged, not sent")
	return nil
}
