package domain

import "errors"

// Domain errors.
var (
	ErrInvalidBatch        = errors.New("attendance batch is missing a session id or entries")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotStarted   = errors.New("session has not started yet")
	ErrParticipantNotFound = errors.New("participant not found in session")
	ErrConcurrentBatch     = errors.New("another attendance batch is in flight for this session")
	ErrUserNotFound        = errors.New("user not found in directory")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrNoContactAddress    = errors.New("user has no contact address")
)
