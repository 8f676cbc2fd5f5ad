package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, displayName string) error
	SendWeeklySummary(email, displayName string, completed, expEarned int) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, displayName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to ChoreQuest!")

	body := fmt.Sprintf(`
		<h2>Welcome to ChoreQuest, %s!</h2>
		<p>Your home is now a dungeon and every chore is a quest.</p>
		<p>Adopt a few task templates, keep your areas healthy and watch your level grow.</p>
		<p>Happy cleaning!</p>
	`, displayName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}

func (s *emailService) SendWeeklySummary(email, displayName string, completed, expEarned int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your ChoreQuest week in review")

	body := fmt.Sprintf(`
		<h3>Nice work this week, %s</h3>
		<p>You completed <strong>%d</strong> chores and earned <strong>%d</strong> experience.</p>
		<p>Keep the streak alive!</p>
	`, displayName, completed, expEarned)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send weekly summary: %w", err)
	}

	return nil
}
