package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"socialblog/config"
)

// Mailer delivers account notifications.
type Mailer interface {
	SendWelcome(to, username string) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
	send     sendFunc
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		send:     smtp.SendMail,
	}
}

func (e *EmailService) SendWelcome(to, username string) error {
	message := welcomeMessage(e.from, to, username)

	var auth smtp.Auth
	if e.user != "" {
		auth = smtp.PlainAuth("", e.user, e.password, e.host)
	}
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	if err := e.send(addr, auth, e.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("send welcome email to %s: %w", to, err)
	}
	return nil
}

func welcomeMessage(from, to, username string) string {
	body := fmt.Sprintf(`Hi %s,

Your Flask Blog account has been created. You can log in with this email address.

If you did not sign up, you can ignore this message.
`, username)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Welcome to Flask Blog\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.String()
}
