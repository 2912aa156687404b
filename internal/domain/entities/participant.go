package entities

import "time"

// Participant is one user's attendance record within one session.
// It is owned by its Session; User is a weak reference, never ownership.
type Participant struct {
	ID        string
	SessionID string
	User      UserRef
	State     AttendanceState
	MarkedAt  time.Time
	MarkedBy  string
	Rating    int    // optional per-mark rating, 0 = unrated
	Notes     string // optional per-mark notes
	CreatedAt time.Time
	UpdatedAt time.Time
}
