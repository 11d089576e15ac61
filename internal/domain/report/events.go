package report

import (
	"strconv"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/shared/events"
)

const (
	EventTypeReportSubmitted = "report.submitted"
	EventTypeReportApproved  = "report.approved"
	EventTypeReportRejected  = "report.rejected"
)

type ReportSubmittedEvent struct {
	events.BaseEvent
	ReportID uint
	SchoolID uint
	AuthorID uint
	ActorID  uint
}

func NewReportSubmittedEvent(r *Report, actorID uint, occurredAt time.Time) ReportSubmittedEvent {
	return ReportSubmittedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(r.ID()), 10),
			EventType:   EventTypeReportSubmitted,
			OccurredAt:  occurredAt,
		},
		ReportID: r.ID(),
		SchoolID: r.SchoolID(),
		AuthorID: r.AuthorID(),
		ActorID:  actorID,
	}
}

type ReportApprovedEvent struct {
	events.BaseEvent
	ReportID   uint
	SchoolID   uint
	AuthorID   uint
	ApprovedBy uint
}

func NewReportApprovedEvent(r *Report, approvedBy uint, occurredAt time.Time) ReportApprovedEvent {
	return ReportApprovedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(r.ID()), 10),
			EventType:   EventTypeReportApproved,
			OccurredAt:  occurredAt,
		},
		ReportID:   r.ID(),
		SchoolID:   r.SchoolID(),
		AuthorID:   r.AuthorID(),
		ApprovedBy: approvedBy,
	}
}

type ReportRejectedEvent struct {
	events.BaseEvent
	ReportID   uint
	SchoolID   uint
	AuthorID   uint
	RejectedBy uint
	Reason     string
}

func NewReportRejectedEvent(r *Report, rejectedBy uint, reason string, occurredAt time.Time) ReportRejectedEvent {
	return ReportRejectedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(r.ID()), 10),
			EventType:   EventTypeReportRejected,
			OccurredAt:  occurredAt,
		},
		ReportID:   r.ID(),
		SchoolID:   r.SchoolID(),
		AuthorID:   r.AuthorID(),
		RejectedBy: rejectedBy,
		Reason:     reason,
	}
}
