package domain

import (
	"math"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
)

// CompletionThreshold is the attendance percentage at which a program
// counts as completed.
const CompletionThreshold = 75

// Progress is the derived attendance metric for one user over a set of
// sessions. It is computed, never stored.
type Progress struct {
	TotalSessions    int
	AttendedSessions int
	Percentage       int
}

// IsComplete reports whether the attendance percentage meets the
// completion threshold.
func (p Progress) IsComplete() bool {
	return p.Percentage >= CompletionThreshold
}

// CalculateProgress derives the attendance percentage for userID over the
// given sessions. Only sessions containing a participant entry referencing
// userID are counted; sessions without one are excluded, not treated as
// absences. Both bare-id and resolved user references match. Deterministic
// and free of side effects.
func CalculateProgress(sessions []entities.Session, userID string) Progress {
	var p Progress
	if userID == "" {
		return p
	}
	for i := range sessions {
		entry := sessions[i].ParticipantOfUser(userID)
		if entry == nil {
			continue
		}
		p.TotalSessions++
		if entry.State == entities.Present {
			p.AttendedSessions++
		}
	}
	if p.TotalSessions > 0 {
		p.Percentage = int(math.Round(float64(p.AttendedSessions) / float64(p.TotalSessions) * 100))
	}
	return p
}
