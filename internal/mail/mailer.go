// Package mail renders and delivers the transactional mails: account
// verification and password reset. Delivery goes through SMTP; when no SMTP
// host is configured the mailer logs the link instead, which keeps local
// development working without a mail account.
package mail

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"book-bazaar/internal/config"
	"book-bazaar/internal/dto"
)

type Mailer struct {
	dialer  *gomail.Dialer
	sender  string
	appName string
	appURL  string
}

func NewMailer(cfg config.Mail, app config.App) *Mailer {
	m := &Mailer{sender: cfg.Sender, appName: app.Name, appURL: app.URL}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	}
	return m
}

// Send renders the mail for a queued job and delivers it.
func (m *Mailer) Send(job dto.MailJob) error {
	var subject, html string
	switch job.Kind {
	case dto.MailKindVerification:
		subject = fmt.Sprintf("Verify your %s account", m.appName)
		html = m.verificationBody(job)
	case dto.MailKindPasswordReset:
		subject = fmt.Sprintf("Reset your %s password", m.appName)
		html = m.passwordResetBody(job)
	default:
		return fmt.Errorf("unknown mail kind %q", job.Kind)
	}

	if m.dialer == nil {
		log.Printf("mail disabled, would send %q to %s", subject, job.Email)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", job.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", job.Email, err)
	}
	return nil
}

// DirectPublisher satisfies the auth flow's publisher by sending mail inline.
// Used when the broker is not configured, mostly in development.
type DirectPublisher struct {
	Mailer *Mailer
}

func (p DirectPublisher) Publish(_ context.Context, job dto.MailJob) error {
	return p.Mailer.Send(job)
}

func (m *Mailer) verificationBody(job dto.MailJob) string {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email/%s", m.appURL, job.Token)
	return fmt.Sprintf(`
		<h2>Welcome to %s!</h2>
		<p>Hi %s,</p>
		<p>We're very excited to have you on board. To get started, please verify
		your email address by clicking the link below:</p>
		<p><a href="%s">Verify Your Account</a></p>
		<p>The link is valid for one hour.</p>
		<p>If you did not create an account, no further action is required.</p>`,
		m.appName, job.UserName, link)
}

func (m *Mailer) passwordResetBody(job dto.MailJob) string {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.appURL, job.Token)
	return fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>Hi %s,</p>
		<p>You are receiving this email because a password reset was requested for
		your %s account. Click the link below to choose a new password:</p>
		<p><a href="%s">Reset Your Password</a></p>
		<p>The link is valid for one hour. If you did not request a reset, you can
		safely ignore this email.</p>`,
		job.UserName, m.appName, link)
}
