package input

import (
	"context"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
)

// AttendanceEntry is one requested mark within a batch.
type AttendanceEntry struct {
	ParticipantID string
	Attended      bool
	Rating        int
	Notes         string
}

// MarkAttendanceRequest is one caller-submitted batch of attendance updates
// for a single session.
type MarkAttendanceRequest struct {
	SessionID string
	Entries   []AttendanceEntry
	Actor     string
	Locale    string
}

// EntryResult is the per-item outcome of a batch. Error is a per-item fault
// (unknown participant, failed write); it never aborts sibling items.
type EntryResult struct {
	ParticipantID string
	Previous      entities.AttendanceState
	New           entities.AttendanceState
	Notified      bool
	Error         error
}

// DeliveryOutcome is one recipient's dispatch result.
type DeliveryOutcome struct {
	ParticipantID string
	Contact       string
	Outcome       string // "sent", "failed" or "skipped"
	Reason        string // skip reason or failure detail
}

// NotificationReport aggregates the fan-out outcomes of one batch.
type NotificationReport struct {
	Sent    int
	Failed  int
	Skipped int
	Details []DeliveryOutcome
}

// MarkAttendanceReport is the terminal report of one batch operation. Once a
// batch passes initial validation it always completes with a report.
type MarkAttendanceReport struct {
	Results       []EntryResult
	Notifications NotificationReport
}

type AttendanceUseCase interface {
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (*MarkAttendanceReport, error)
	GetSessionParticipants(ctx context.Context, sessionID string) ([]entities.Participant, error)
}
