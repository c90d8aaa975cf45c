package notify

import (
	"context"

	"gopkg.in/gomail.v2"
)

// EmailConfig carries the SMTP settings collected from the CLI flags.
// Username and password stay empty for open relays.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

type Email struct {
	cfg EmailConfig
	// send is swapped in tests so no SMTP connection is made.
	send func(m *gomail.Message) error
}

func NewEmail(cfg EmailConfig) *Email {
	if cfg.Host == "" || cfg.From == "" || len(cfg.To) == 0 {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	e := &Email{cfg: cfg}
	e.send = func(m *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		return d.DialAndSend(m)
	}
	return e
}

func (e *Email) Send(ctx context.Context, title, text string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.From)
	m.SetHeader("To", e.cfg.To...)
	m.SetHeader("Subject", title)
	m.SetBody("text/plain", text)
	return e.send(m)
}
