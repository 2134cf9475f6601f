package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/RibbonBlockchain/TradelineAI/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPaymentReminder sends a repayment reminder or overdue notice for an
// agent's scheduled repayment
func (s *Sender) SendPaymentReminder(to, agentName string, dueDate time.Time, amount float64, daysOverdue int, overdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if overdue {
		e.Subject = fmt.Sprintf("Overdue Repayment for Agent %s", agentName)
	} else {
		e.Subject = fmt.Sprintf("Upcoming Repayment for Agent %s", agentName)
	}

	body := fmt.Sprintf("Agent: %s\n\n", agentName)
	if overdue {
		body += fmt.Sprintf(
			"The repayment of %.2f USD was due on %s and is now %d days overdue.\n"+
				"Continued delinquency will lower the agent's credit score and raise\n"+
				"the tradeline's risk score.\n",
			amount, dueDate.Format("2006-01-02"), daysOverdue,
		)
	} else {
		body += fmt.Sprintf(
			"A repayment of %.2f USD is due on %s.\n"+
				"Ensure the agent's allocation has sufficient headroom to settle on time.\n",
			amount, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nTradelineAI"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
