package utils

import (
	"context"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// Mailer performs blocking plain-text sends over SMTP with STARTTLS.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	Logger   *logrus.Logger
}

func NewMailer(host string, port int, username, password string, logger *logrus.Logger) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Logger:   logger,
	}
}

// Send dials the relay and delivers one message. The SMTP exchange
// itself cannot be interrupted; ctx is only honored before dialing.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return &models.SendError{Message: "send canceled", Err: err}
	}
	if m.Username == "" || m.Password == "" {
		return &models.SendError{Message: "missing SMTP_USER or SMTP_PASS in your .env file"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)

	if err := d.DialAndSend(msg); err != nil {
		m.Logger.WithFields(logrus.Fields{
			"to":   to,
			"host": m.Host,
		}).WithError(err).Error("SMTP send failed")
		return &models.SendError{Message: "error sending email", Err: err}
	}

	m.Logger.WithField("to", to).Debug("SMTP send ok")
	return nil
}
