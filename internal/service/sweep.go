package service

import (
	"context"
	"time"

	"github.com/RibbonBlockchain/TradelineAI/internal/models"
)

// SweepRepayments walks the scheduled repayments, marks overdue ones as
// missed, and sends reminder notifications for repayments due soon or past
// due. Run from the scheduler.
func (s *Service) SweepRepayments(ctx context.Context) error {
	repayments, err := s.repo.ScheduledRepayments()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	reminderWindow := time.Duration(s.config.ReminderDays) * 24 * time.Hour
	agentNames := make(map[int64]string)

	var missed, reminders int
	for i := range repayments {
		rep := repayments[i]

		updated := rep
		updated.UpdateStatus(now)
		if updated.Status != rep.Status {
			if err := s.repo.UpdateRepaymentStatus(rep.ID, updated.Status); err != nil {
				s.log.Errorf("Failed to update repayment %d status: %v", rep.ID, err)
				continue
			}
			missed++
		}

		overdue := updated.Status == models.RepaymentMissed
		dueSoon := !overdue && rep.DueDate.Sub(now) <= reminderWindow
		if !overdue && !dueSoon {
			continue
		}

		if s.mail == nil || s.config.ReminderEmail == "" {
			continue
		}
		name, ok := agentNames[rep.AgentID]
		if !ok {
			agent, err := s.repo.GetAgent(rep.AgentID)
			if err != nil || agent == nil {
				s.log.Errorf("Failed to resolve agent %d for repayment reminder: %v", rep.AgentID, err)
				continue
			}
			name = agent.Name
			agentNames[rep.AgentID] = name
		}

		err := s.mail.SendPaymentReminder(s.config.ReminderEmail, name, rep.DueDate,
			rep.Amount, updated.DaysOverdue(now), overdue)
		if err != nil {
			s.log.Errorf("Failed to send repayment reminder for agent %d: %v", rep.AgentID, err)
			continue
		}
		reminders++
	}

	s.log.Infof("Repayment sweep complete: %d marked missed, %d reminders sent", missed, reminders)
	return nil
}
