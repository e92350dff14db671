package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

// Mailer sends the transactional mail the auth and contact flows need over
// plain SMTP. Every send is synchronous and bounded by the SMTP dial.
type Mailer struct {
	host            string
	port            string
	username        string
	password        string
	from            string
	frontendBaseURL string
	contactInbox    string
}

func NewMailer(host, port, username, password, from, frontendBaseURL, contactInbox string) *Mailer {
	return &Mailer{
		host:            strings.TrimSpace(host),
		port:            strings.TrimSpace(port),
		username:        username,
		password:        password,
		from:            strings.TrimSpace(from),
		frontendBaseURL: strings.TrimRight(strings.TrimSpace(frontendBaseURL), "/"),
		contactInbox:    strings.TrimSpace(contactInbox),
	}
}

func (m *Mailer) SendOTP(ctx context.Context, email, code string, purpose domain.OTPPurpose) error {
	subject := "Your Herb & Veda sign-in code"
	if purpose == domain.OTPPurposeRegister {
		subject = "Your Herb & Veda registration code"
	}
	body := fmt.Sprintf("Your one-time code is: %s\n\nIt expires shortly. If you did not request this, ignore this email.", code)
	return m.send(ctx, email, subject, body)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, token string) error {
	link := token
	if m.frontendBaseURL != "" {
		link = fmt.Sprintf("%s/reset-password?token=%s", m.frontendBaseURL, token)
	}
	body := fmt.Sprintf("Use the following link to reset your password: %s\n\nIf you did not request this, ignore this email.", link)
	return m.send(ctx, email, "Reset your Herb & Veda password", body)
}

func (m *Mailer) SendContactNotification(ctx context.Context, msg *domain.ContactMessage) error {
	if m.contactInbox == "" {
		return errors.New("contact inbox not configured")
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
	return m.send(ctx, m.contactInbox, "New contact form message", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(message.String()))
}
