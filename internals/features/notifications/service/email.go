package service

import (
	"log"

	"gopkg.in/gomail.v2"

	"akademiku_backend/internals/configs"
)

type EmailSender interface {
	Send(to, subject, html string) error
}

/* ===================== SMTP (gomail) ===================== */

type GomailSender struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewGomailSender() *GomailSender {
	return &GomailSender{
		host: configs.SMTPHost,
		port: configs.SMTPPort,
		user: configs.SMTPUser,
		pass: configs.SMTPPassword,
		from: configs.SMTPFrom,
	}
}

func (s *GomailSender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}

/* ===================== Console (dev / tests) ===================== */

type ConsoleEmailSender struct{}

func (ConsoleEmailSender) Send(to, subject, html string) error {
	log.Printf("[EMAIL] to=%s subject=%q len=%d", to, subject, len(html))
	return nil
}
