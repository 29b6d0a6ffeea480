package mail

import (
	"fmt"
	"net/smtp"

	"github.com/nvast/TODO-list/internal/config"
)

// SMTPMailer delivers password-reset mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg *config.EmailConfig
}

func NewSMTPMailer(cfg *config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendNewPassword mails the freshly generated password to the user.
func (m *SMTPMailer) SendNewPassword(to, password string) error {
	if m.cfg.SMTPUsername == "" || m.cfg.SMTPPassword == "" {
		return fmt.Errorf("mail: smtp credentials not configured")
	}

	from := m.cfg.FromEmail
	if from == "" {
		from = m.cfg.SMTPUsername
	}

	subject := "Your new password"
	body := fmt.Sprintf(
		"Hello,\n\nYour password was reset.\n\nYour new password is: %s\n\nYou can log in with it right away.\n",
		password)

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		m.cfg.FromName, from, to, subject, body))

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}
