package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/config"
)

// Mailer sends portal notification emails over SMTP. All sends are
// best-effort; callers log failures and never roll back on them.
type Mailer interface {
	SendAssignmentEmail(to, ticketKey, title string) error
	SendSpocNewTicketEmail(to, ticketKey, title string) error
	SendStatusChangeEmail(to, ticketKey, oldStatus, newStatus, remark string) error
}

// SMTPMailer sends email through a gomail dialer.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer constructs a mailer from config.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Enabled reports whether SMTP is configured at all.
func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Host != ""
}

func (m *SMTPMailer) SendAssignmentEmail(to, ticketKey, title string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", m.cfg.BaseURL, ticketKey)
	subject := fmt.Sprintf("[%s] Ticket assigned to you", ticketKey)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket Assigned</h2>
			<p>Ticket <b>%s</b> has been assigned to you:</p>
			<p>%s</p>
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, ticketKey, title, ticketURL)
	plain := fmt.Sprintf("Ticket %s has been assigned to you: %s\n\n%s\n", ticketKey, title, ticketURL)
	return m.send(to, subject, body, plain)
}

func (m *SMTPMailer) SendSpocNewTicketEmail(to, ticketKey, title string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", m.cfg.BaseURL, ticketKey)
	subject := fmt.Sprintf("[%s] New ticket in your queue", ticketKey)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Ticket</h2>
			<p>A new ticket <b>%s</b> was routed to you as SPOC:</p>
			<p>%s</p>
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, ticketKey, title, ticketURL)
	plain := fmt.Sprintf("A new ticket %s was routed to you as SPOC: %s\n\n%s\n", ticketKey, title, ticketURL)
	return m.send(to, subject, body, plain)
}

func (m *SMTPMailer) SendStatusChangeEmail(to, ticketKey, oldStatus, newStatus, remark string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", m.cfg.BaseURL, ticketKey)
	subject := fmt.Sprintf("[%s] Status changed: %s -> %s", ticketKey, oldStatus, newStatus)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Status Changed</h2>
			<p>Ticket <b>%s</b> moved from <b>%s</b> to <b>%s</b>.</p>
			<p>Remark: %s</p>
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, ticketKey, oldStatus, newStatus, remark, ticketURL)
	plain := fmt.Sprintf("Ticket %s moved from %s to %s.\nRemark: %s\n\n%s\n", ticketKey, oldStatus, newStatus, remark, ticketURL)
	return m.send(to, subject, body, plain)
}

func (m *SMTPMailer) send(to, subject, htmlBody, plainBody string) error {
	if !m.Enabled() {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}
