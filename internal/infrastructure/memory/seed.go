package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
)

// Seed fills the store with a small coaching program so the server is usable
// out of the box in dev mode. Returns the seeded session ids.
func Seed(s *Store, now time.Time) []string {
	programID := uuid.NewString()

	users := []entities.User{
		{ID: uuid.NewString(), DisplayName: "Kasun Perera", Contact: "200000000000000001"},
		{ID: uuid.NewString(), DisplayName: "Dinesh Silva", Contact: "200000000000000002"},
		{ID: uuid.NewString(), DisplayName: "Amal Fernando"}, // no contact address
	}
	for _, u := range users {
		s.PutUser(u)
		s.PutEnrollment(entities.Enrollment{
			ID:         uuid.NewString(),
			ProgramID:  programID,
			UserID:     u.ID,
			EnrolledAt: now.AddDate(0, -1, 0),
		})
	}

	var sessionIDs []string
	for week := 0; week < 4; week++ {
		session := &entities.Session{
			ID:          uuid.NewString(),
			ProgramID:   programID,
			Title:       "Batting practice",
			ScheduledAt: now.AddDate(0, 0, -7*(4-week)),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, u := range users {
			session.Participants = append(session.Participants, entities.Participant{
				ID:        uuid.NewString(),
				SessionID: session.ID,
				User:      entities.RefID(u.ID),
				State:     entities.Unmarked,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		s.PutSession(session)
		sessionIDs = append(sessionIDs, session.ID)
	}
	return sessionIDs
}
