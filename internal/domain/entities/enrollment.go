package entities

import "time"

// Enrollment associates a user with a coaching program and its sessions.
// It is read-only from this service's perspective: attendance percentage is
// derived from the sessions, never stored on the enrollment itself.
type Enrollment struct {
	ID         string
	ProgramID  string
	UserID     string
	EnrolledAt time.Time
}
