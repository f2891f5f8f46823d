package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendResetCode(toEmail, code string) error
}

type emailService struct {
	dialer     *gomail.Dialer
	configured bool
	fromEmail  string
	senderName string
	appURL     string
}

// NewEmailService builds the mailer. When the SMTP host is empty the service
// logs messages to the console instead of dialing, so local development
// works without credentials.
func NewEmailService(host string, port int, username, password, fromEmail, senderName, appURL string) IEmailService {
	var d *gomail.Dialer
	configured := host != "" && username != "" && password != ""
	if configured {
		d = gomail.NewDialer(host, port, username, password)
	}
	return &emailService{
		dialer:     d,
		configured: configured,
		fromEmail:  fromEmail,
		senderName: senderName,
		appURL:     appURL,
	}
}

func (s *emailService) SendResetCode(toEmail, code string) error {
	subject := "Your Mufessir password reset code"
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Password Reset Request</h2>
			<p>Your reset code is:</p>
			<h1 style="letter-spacing: 5px;">%s</h1>
			<p>It expires in 15 minutes.</p>
			<p>You can also reset at: <a href="%s/reset-password">%s/reset-password</a></p>
			<p>If you didn't request this, ignore this email.</p>
		</div>
	`, code, s.appURL, s.appURL)

	if !s.configured {
		log.Printf("[DEV EMAIL] to=%s subject=%q code=%s", toEmail, subject, code)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("[MAILER ERROR] Failed to send reset code to %s: %v", toEmail, err)
		return err
	}
	return nil
}
