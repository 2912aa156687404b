package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain"
	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

var _ output.EnrollmentRepository = (*EnrollmentRepository)(nil)

// EnrollmentRepository implements output.EnrollmentRepository on PostgreSQL.
type EnrollmentRepository struct {
	pool     *pgxpool.Pool
	sessions *SessionStore
}

// NewEnrollmentRepository creates an EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool, sessions: NewSessionStore(pool)}
}

func (r *EnrollmentRepository) FindByProgramAndUser(ctx context.Context, programID, userID string) (*entities.Enrollment, error) {
	var (
		e          entities.Enrollment
		enrolledAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, program_id, user_id, enrolled_at
		   FROM enrollments WHERE program_id = $1 AND user_id = $2`,
		programID, userID,
	).Scan(&e.ID, &e.ProgramID, &e.UserID, &enrolledAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	e.EnrolledAt = tstzToTime(enrolledAt)
	return &e, nil
}

func (r *EnrollmentRepository) SessionsForEnrollment(ctx context.Context, enrollment *entities.Enrollment) ([]entities.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, program_id, title, scheduled_at, ends_at, created_at, updated_at
		   FROM sessions WHERE program_id = $1 ORDER BY scheduled_at`,
		enrollment.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("get program sessions: %w", err)
	}
	defer rows.Close()

	var (
		sessions []entities.Session
		ids      []string
	)
	for rows.Next() {
		var (
			s                             entities.Session
			scheduledAt, endsAt, cAt, uAt pgtype.Timestamptz
		)
		err := rows.Scan(&s.ID, &s.ProgramID, &s.Title, &scheduledAt, &endsAt, &cAt, &uAt)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.ScheduledAt = tstzToTime(scheduledAt)
		s.EndsAt = tstzToTime(endsAt)
		s.CreatedAt = tstzToTime(cAt)
		s.UpdatedAt = tstzToTime(uAt)
		sessions = append(sessions, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	participants, err := r.sessions.participantsForSessions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].Participants = participants[sessions[i].ID]
	}
	return sessions, nil
}
