package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const dialTimeout = 5 * time.Second

// Mailer delivers codes over SMTP. STARTTLS is used when the server offers
// it; authentication only when credentials are configured, so local relays
// like MailHog work without either.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailer builds an SMTP-backed notifier.
func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// SendVerificationCode mails an email verification code.
func (m *Mailer) SendVerificationCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf("<h2>Verify your email</h2><p>Your verification code: <b>%s</b></p><p>The code expires in 10 minutes.</p>", code)
	return m.send(ctx, email, "Email verification code", body)
}

// SendPasswordResetCode mails a password reset code.
func (m *Mailer) SendPasswordResetCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf("<h2>Password reset</h2><p>Your reset code: <b>%s</b></p><p>The code expires in 10 minutes.</p>", code)
	return m.send(ctx, email, "Password reset code", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	dialer := &net.Dialer{Timeout: dialTimeout}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if m.user != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.user, m.pass, m.host)
			if err := c.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg.String())); err != nil {
		return err
	}
	return w.Close()
}
