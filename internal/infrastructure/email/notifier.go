// Package email sends review-chain notifications for report lifecycle
// events over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/domain/shared/events"
	sharedConfig "github.com/chroma-excellence/chromaqa/internal/shared/config"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

// ReviewNotifier emails the QA review chain when a report moves. It
// subscribes to lifecycle events so transitions never block on SMTP.
type ReviewNotifier struct {
	dialer    *gomail.Dialer
	from      string
	reviewers []string
	enabled   bool
	logger    logger.Interface
}

func NewReviewNotifier(cfg *sharedConfig.EmailConfig, reviewers []string, log logger.Interface) *ReviewNotifier {
	return &ReviewNotifier{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		reviewers: reviewers,
		enabled:   cfg.Enabled,
		logger:    log,
	}
}

// Register subscribes the notifier to the lifecycle events it cares about.
func (n *ReviewNotifier) Register(subscriber events.EventSubscriber) error {
	for _, eventType := range []string{
		report.EventTypeReportSubmitted,
		report.EventTypeReportApproved,
		report.EventTypeReportRejected,
	} {
		if err := subscriber.Subscribe(eventType, n); err != nil {
			return fmt.Errorf("failed to subscribe notifier to %s: %w", eventType, err)
		}
	}
	return nil
}

func (n *ReviewNotifier) CanHandle(eventType string) bool {
	switch eventType {
	case report.EventTypeReportSubmitted, report.EventTypeReportApproved, report.EventTypeReportRejected:
		return true
	}
	return false
}

func (n *ReviewNotifier) Handle(event events.DomainEvent) error {
	if !n.enabled || len(n.reviewers) == 0 {
		return nil
	}

	var subject, body string
	switch e := event.(type) {
	case report.ReportSubmittedEvent:
		subject = fmt.Sprintf("Inspection report #%d submitted for review", e.ReportID)
		body = fmt.Sprintf("Report #%d for school %d was submitted by user %d and is awaiting review.",
			e.ReportID, e.SchoolID, e.ActorID)
	case report.ReportApprovedEvent:
		subject = fmt.Sprintf("Inspection report #%d approved", e.ReportID)
		body = fmt.Sprintf("Report #%d for school %d was approved by user %d.",
			e.ReportID, e.SchoolID, e.ApprovedBy)
	case report.ReportRejectedEvent:
		subject = fmt.Sprintf("Inspection report #%d rejected", e.ReportID)
		body = fmt.Sprintf("Report #%d for school %d was rejected by user %d.\n\nReason: %s",
			e.ReportID, e.SchoolID, e.RejectedBy, e.Reason)
	default:
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", n.reviewers...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(msg); err != nil {
		n.logger.Errorw("failed to send review notification",
			"error", err, "event_type", event.GetEventType(), "aggregate_id", event.GetAggregateID())
		return fmt.Errorf("failed to send review notification: %w", err)
	}

	n.logger.Infow("review notification sent",
		"event_type", event.GetEventType(), "aggregate_id", event.GetAggregateID())
	return nil
}
