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

var _ output.SessionStore = (*SessionStore)(nil)

// SessionStore implements output.SessionStore on PostgreSQL via pgx.
type SessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates a SessionStore.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

func (s *SessionStore) FindSessionByID(ctx context.Context, sessionID string) (*entities.Session, error) {
	var (
		session                       entities.Session
		scheduledAt, endsAt, cAt, uAt pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, program_id, title, scheduled_at, ends_at, created_at, updated_at
		   FROM sessions WHERE id = $1`, sessionID,
	).Scan(&session.ID, &session.ProgramID, &session.Title, &scheduledAt, &endsAt, &cAt, &uAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}
	session.ScheduledAt = tstzToTime(scheduledAt)
	session.EndsAt = tstzToTime(endsAt)
	session.CreatedAt = tstzToTime(cAt)
	session.UpdatedAt = tstzToTime(uAt)

	participants, err := s.participantsForSessions(ctx, []string{sessionID})
	if err != nil {
		return nil, err
	}
	session.Participants = participants[sessionID]
	return &session, nil
}

func (s *SessionStore) GetParticipantStates(ctx context.Context, sessionID string) (*output.StateSnapshot, error) {
	// One transaction so the version and the states are a single consistent
	// read, never interleaved with a concurrent batch's writes.
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	snapshot := &output.StateSnapshot{States: make(map[string]entities.AttendanceState)}
	err = tx.QueryRow(ctx,
		`SELECT attendance_version FROM sessions WHERE id = $1`, sessionID,
	).Scan(&snapshot.Version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session version: %w", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT id, state FROM participants WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get participant states: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id    string
			state string
		)
		if err := rows.Scan(&id, &state); err != nil {
			return nil, fmt.Errorf("scan participant state: %w", err)
		}
		snapshot.States[id] = entities.AttendanceState(state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participant states: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return snapshot, nil
}

func (s *SessionStore) ClaimBatch(ctx context.Context, sessionID string, version int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET attendance_version = attendance_version + 1, updated_at = now()
		  WHERE id = $1 AND attendance_version = $2`, sessionID, version)
	if err != nil {
		return fmt.Errorf("claim batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentBatch
	}
	return nil
}

func (s *SessionStore) WriteParticipantState(ctx context.Context, sessionID, participantID string, mark output.Mark) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE participants
		    SET state = $3, marked_at = $4, marked_by = $5, rating = $6, notes = $7, updated_at = now()
		  WHERE session_id = $1 AND id = $2`,
		sessionID, participantID,
		string(mark.State), timeToTstz(mark.MarkedAt), mark.MarkedBy, mark.Rating, mark.Notes)
	if err != nil {
		return fmt.Errorf("write participant state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

// participantsForSessions loads participant entries for the given sessions,
// keyed by session id, in display order.
func (s *SessionStore) participantsForSessions(ctx context.Context, sessionIDs []string) (map[string][]entities.Participant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, user_id, state, marked_at, marked_by, rating, notes, created_at, updated_at
		   FROM participants WHERE session_id = ANY($1) ORDER BY session_id, position, created_at`,
		sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entities.Participant, len(sessionIDs))
	for rows.Next() {
		var (
			p                  entities.Participant
			userID             pgtype.Text
			state              string
			markedAt, cAt, uAt pgtype.Timestamptz
		)
		err := rows.Scan(&p.ID, &p.SessionID, &userID, &state, &markedAt, &p.MarkedBy, &p.Rating, &p.Notes, &cAt, &uAt)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		p.User = entities.RefID(textToString(userID))
		p.State = entities.AttendanceState(state)
		p.MarkedAt = tstzToTime(markedAt)
		p.CreatedAt = tstzToTime(cAt)
		p.UpdatedAt = tstzToTime(uAt)
		out[p.SessionID] = append(out[p.SessionID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}
