package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain"
	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/input"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

var _ input.AttendanceUseCase = (*AttendanceService)(nil)

// AttendanceService applies attendance batches: it evaluates state
// transitions against a single pre-batch snapshot, persists the new states,
// resolves notifiable identities and fans the notifications out.
type AttendanceService struct {
	store      output.SessionStore
	resolver   *IdentityResolver
	composer   output.MessageComposer
	dispatcher *Dispatcher
	clock      output.Clock
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(
	store output.SessionStore,
	resolver *IdentityResolver,
	composer output.MessageComposer,
	dispatcher *Dispatcher,
	clock output.Clock,
) *AttendanceService {
	return &AttendanceService{
		store:      store,
		resolver:   resolver,
		composer:   composer,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// candidate is one batch item flagged for notification.
type candidate struct {
	participant *entities.Participant
	newState    entities.AttendanceState
	firstMark   bool
}

// MarkAttendance processes one batch of attendance updates for a session.
//
// Structural faults (invalid request, unknown or not-yet-started session, a
// lost batch claim) abort before any participant write. Past that point the
// batch always completes: per-item faults are captured on the item's result
// entry and per-recipient dispatch failures in the notification report.
//
// Every item is evaluated against the pre-batch snapshot, including repeated
// occurrences of one participant; the store ends at the state of the last
// occurrence in submission order.
func (s *AttendanceService) MarkAttendance(ctx context.Context, req input.MarkAttendanceRequest) (*input.MarkAttendanceReport, error) {
	if req.SessionID == "" || len(req.Entries) == 0 {
		return nil, domain.ErrInvalidBatch
	}

	session, err := s.store.FindSessionByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !session.Started(s.clock.Now()) {
		return nil, domain.ErrSessionNotStarted
	}

	snapshot, err := s.store.GetParticipantStates(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("read state snapshot: %w", err)
	}
	if err := s.store.ClaimBatch(ctx, req.SessionID, snapshot.Version); err != nil {
		return nil, err
	}

	report := &input.MarkAttendanceReport{
		Results: make([]input.EntryResult, len(req.Entries)),
	}
	var candidates []candidate

	now := s.clock.Now()
	for i, entry := range req.Entries {
		result := input.EntryResult{ParticipantID: entry.ParticipantID}

		participant := session.ParticipantByID(entry.ParticipantID)
		if participant == nil {
			result.Error = domain.ErrParticipantNotFound
			report.Results[i] = result
			continue
		}

		previous, ok := snapshot.States[entry.ParticipantID]
		if !ok {
			previous = entities.Unmarked
		}
		newState := entities.Absent
		if entry.Attended {
			newState = entities.Present
		}
		firstMark := previous == entities.Unmarked
		result.Previous = previous
		result.New = newState

		err := s.store.WriteParticipantState(ctx, req.SessionID, entry.ParticipantID, output.Mark{
			State:    newState,
			MarkedAt: now,
			MarkedBy: req.Actor,
			Rating:   entry.Rating,
			Notes:    entry.Notes,
		})
		if err != nil {
			// An unpersisted mark is not a notifiable event.
			result.Error = fmt.Errorf("write state: %w", err)
			report.Results[i] = result
			continue
		}

		if firstMark || previous != newState {
			result.Notified = true
			candidates = append(candidates, candidate{
				participant: participant,
				newState:    newState,
				firstMark:   firstMark,
			})
		}
		report.Results[i] = result
	}

	report.Notifications = s.notify(ctx, req.Locale, session, candidates)
	return report, nil
}

// notify resolves the flagged participants and dispatches their messages,
// folding resolution skips and dispatch outcomes into one report.
func (s *AttendanceService) notify(ctx context.Context, locale string, session *entities.Session, candidates []candidate) input.NotificationReport {
	if len(candidates) == 0 {
		return input.NotificationReport{}
	}
	candidates = collapseCandidates(candidates)

	participants := make([]*entities.Participant, len(candidates))
	for i, c := range candidates {
		participants[i] = c.participant
	}

	resolutions, err := s.resolver.Resolve(ctx, participants)
	if err != nil {
		// The directory is down: nothing was sent, report every candidate
		// as failed rather than pretending the batch notified anyone.
		report := input.NotificationReport{Failed: len(candidates)}
		for _, c := range candidates {
			report.Details = append(report.Details, input.DeliveryOutcome{
				ParticipantID: c.participant.ID,
				Outcome:       "failed",
				Reason:        err.Error(),
			})
		}
		return report
	}

	var deliveries []Delivery
	skipped := make(map[int]string, len(candidates))
	for i, res := range resolutions {
		if !res.Notifiable() {
			skipped[i] = res.SkipReason
			continue
		}
		msg := s.composer.Compose(locale, session, res.User, candidates[i].newState, candidates[i].firstMark)
		deliveries = append(deliveries, Delivery{
			ParticipantID: res.Participant.ID,
			Contact:       res.User.Contact,
			Message:       msg,
		})
	}

	dispatched := s.dispatcher.Dispatch(ctx, deliveries)

	report := input.NotificationReport{
		Sent:    dispatched.Sent,
		Failed:  dispatched.Failed,
		Skipped: len(skipped),
		Details: make([]input.DeliveryOutcome, 0, len(candidates)),
	}
	next := 0
	for i, c := range candidates {
		if reason, ok := skipped[i]; ok {
			report.Details = append(report.Details, input.DeliveryOutcome{
				ParticipantID: c.participant.ID,
				Outcome:       "skipped",
				Reason:        reason,
			})
			continue
		}
		report.Details = append(report.Details, dispatched.Details[next])
		next++
	}
	return report
}

// collapseCandidates keeps one candidate per participant so a repeated entry
// yields a single message. The last occurrence wins, mirroring the state that
// was actually written.
func collapseCandidates(candidates []candidate) []candidate {
	seen := make(map[string]int, len(candidates))
	unique := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if at, ok := seen[c.participant.ID]; ok {
			unique[at] = c
			continue
		}
		seen[c.participant.ID] = len(unique)
		unique = append(unique, c)
	}
	return unique
}

// GetSessionParticipants lists a session's participant entries in display
// order.
func (s *AttendanceService) GetSessionParticipants(ctx context.Context, sessionID string) ([]entities.Participant, error) {
	session, err := s.store.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return session.Participants, nil
}
