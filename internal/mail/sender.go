// AngelaMos | 2026
// sender.go

package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/casinoremedial/backend/internal/config"
)

const (
	dialTimeout = 8 * time.Second
	sendTimeout = 15 * time.Second
)

// Sender delivers HTML mail over SMTP. Port 465 uses implicit TLS; anything
// else negotiates STARTTLS when the server offers it.
type Sender struct {
	config config.SMTPConfig
	logger *slog.Logger
}

func NewSender(cfg config.SMTPConfig, logger *slog.Logger) *Sender {
	return &Sender{
		config: cfg,
		logger: logger,
	}
}

func (s *Sender) SendVerificationCode(ctx context.Context, to, name, code string) error {
	body, err := renderVerification(name, code)
	if err != nil {
		return fmt.Errorf("render verification mail: %w", err)
	}

	return s.send(ctx, to, "Verifica tu cuenta - Casino Remedial", body)
}

func (s *Sender) SendRecoveryCode(ctx context.Context, to, name, code string) error {
	body, err := renderRecovery(name, code)
	if err != nil {
		return fmt.Errorf("render recovery mail: %w", err)
	}

	return s.send(ctx, to, "Recuperación de contraseña - Casino Remedial", body)
}

func (s *Sender) send(ctx context.Context, to, subject, htmlBody string) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	deadline := time.Now().Add(sendTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}

	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("set smtp deadline: %w", err)
	}

	if s.config.Port == 465 {
		conn = tls.Client(conn, &tls.Config{ServerName: s.config.Host})
	}

	c, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if s.config.Port != 465 {
		if ok, _ := c.Extension("STARTTLS"); ok {
			tlsCfg := &tls.Config{ServerName: s.config.Host}
			if err := c.StartTLS(tlsCfg); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(s.config.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	if _, err := w.Write(s.message(to, subject, htmlBody)); err != nil {
		w.Close()
		return fmt.Errorf("write smtp body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close smtp body: %w", err)
	}

	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}

	s.logger.Info("mail sent", "to", to, "subject", subject)
	return nil
}

func (s *Sender) message(to, subject, htmlBody string) []byte {
	var buf bytes.Buffer

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>",
			mime.QEncoding.Encode("utf-8", s.config.FromName),
			s.config.From,
		)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)
	buf.WriteString("\r\n")

	return buf.Bytes()
}
