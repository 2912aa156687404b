package entities

import "time"

// AttendanceState is the per-participant attendance mark within one session.
type AttendanceState string

const (
	// Unmarked is the initial state; a participant never returns to it.
	Unmarked AttendanceState = "unmarked"
	Present  AttendanceState = "present"
	Absent   AttendanceState = "absent"
)

// Marked reports whether the state is a terminal mark (Present or Absent).
func (s AttendanceState) Marked() bool {
	return s == Present || s == Absent
}

type Session struct {
	ID           string
	ProgramID    string
	Title        string
	ScheduledAt  time.Time
	EndsAt       time.Time // zero = open-ended
	Participants []Participant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Started reports whether the session's scheduled start has passed.
// Attendance can only be marked for started sessions.
func (s *Session) Started(now time.Time) bool {
	return !s.ScheduledAt.After(now)
}

// ParticipantByID returns the session-owned participant entry, or nil.
func (s *Session) ParticipantByID(id string) *Participant {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			return &s.Participants[i]
		}
	}
	return nil
}

// ParticipantOfUser returns the participant entry referencing userID, or nil.
func (s *Session) ParticipantOfUser(userID string) *Participant {
	for i := range s.Participants {
		if s.Participants[i].User.UserID() == userID {
			return &s.Participants[i]
		}
	}
	return nil
}
