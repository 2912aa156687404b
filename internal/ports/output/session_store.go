package output

import (
	"context"
	"time"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
)

// StateSnapshot is a single consistent read of a session's per-participant
// attendance state, taken before any write of a batch. Version is the
// session's attendance sequence number at read time.
type StateSnapshot struct {
	States  map[string]entities.AttendanceState
	Version int64
}

// Mark is one persisted attendance write.
type Mark struct {
	State    entities.AttendanceState
	MarkedAt time.Time
	MarkedBy string
	Rating   int
	Notes    string
}

// SessionStore owns persisted session and per-participant attendance state.
type SessionStore interface {
	FindSessionByID(ctx context.Context, sessionID string) (*entities.Session, error)
	// GetParticipantStates reads the whole pre-batch snapshot in one step.
	// Participants still Unmarked may be absent from the map.
	GetParticipantStates(ctx context.Context, sessionID string) (*StateSnapshot, error)
	// ClaimBatch advances the session's attendance version from the given
	// snapshot version. It fails with domain.ErrConcurrentBatch when another
	// batch advanced the version first.
	ClaimBatch(ctx context.Context, sessionID string, version int64) error
	// WriteParticipantState persists one mark. Writes are independent: a
	// failure for one participant must not affect others.
	WriteParticipantState(ctx context.Context, sessionID, participantID string, mark Mark) error
}
