package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain"
	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
	"github.com/PabodaWA/CricketXpert-sub001/internal/infrastructure/memory"
)

func TestGetProgress(t *testing.T) {
	store := memory.NewStore()
	store.PutEnrollment(entities.Enrollment{ID: "e1", ProgramID: "prog-1", UserID: "u1"})

	states := []entities.AttendanceState{
		entities.Present, entities.Present, entities.Present, entities.Absent,
	}
	for i, state := range states {
		store.PutSession(&entities.Session{
			ID:          "s" + string(rune('1'+i)),
			ProgramID:   "prog-1",
			ScheduledAt: time.Now().Add(-time.Duration(len(states)-i) * 24 * time.Hour),
			Participants: []entities.Participant{
				{ID: "p", SessionID: "s", User: entities.RefID("u1"), State: state},
			},
		})
	}

	svc := NewProgressService(store)

	progress, err := svc.GetProgress(context.Background(), "prog-1", "u1")
	require.NoError(t, err)
	require.Equal(t, 4, progress.TotalSessions)
	require.Equal(t, 3, progress.AttendedSessions)
	require.Equal(t, 75, progress.Percentage)
	require.True(t, progress.IsComplete())
}

func TestGetProgress_EnrollmentNotFound(t *testing.T) {
	svc := NewProgressService(memory.NewStore())

	_, err := svc.GetProgress(context.Background(), "prog-1", "stranger")
	require.ErrorIs(t, err, domain.ErrEnrollmentNotFound)
}

func TestGetProgress_RepositoryFailureIsNotReportedAsMissingEnrollment(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewProgressService(&brokenEnrollments{Store: memory.NewStore(), err: boom})

	_, err := svc.GetProgress(context.Background(), "prog-1", "u1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, domain.ErrEnrollmentNotFound)
	require.Contains(t, err.Error(), "connection refused")
}
