// Package memory provides in-memory implementations of the storage ports,
// used in dev mode and in tests. Semantics mirror the PostgreSQL
// implementations, including the per-session attendance version.
package memory

import (
	"context"
	"sync"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain"
	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

var (
	_ output.SessionStore         = (*Store)(nil)
	_ output.UserDirectory        = (*Store)(nil)
	_ output.EnrollmentRepository = (*Store)(nil)
)

// Store holds sessions, users and enrollments behind one mutex.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*entities.Session
	versions    map[string]int64
	users       map[string]entities.User
	enrollments []entities.Enrollment
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entities.Session),
		versions: make(map[string]int64),
		users:    make(map[string]entities.User),
	}
}

// PutSession registers a session, overwriting any previous entry.
func (s *Store) PutSession(session *entities.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// PutUser registers a directory record.
func (s *Store) PutUser(u entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// PutEnrollment registers an enrollment.
func (s *Store) PutEnrollment(e entities.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments = append(s.enrollments, e)
}

func (s *Store) FindSessionByID(ctx context.Context, sessionID string) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	copied.Participants = append([]entities.Participant(nil), session.Participants...)
	return &copied, nil
}

func (s *Store) GetParticipantStates(ctx context.Context, sessionID string) (*output.StateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	snapshot := &output.StateSnapshot{
		States:  make(map[string]entities.AttendanceState, len(session.Participants)),
		Version: s.versions[sessionID],
	}
	for i := range session.Participants {
		p := &session.Participants[i]
		if p.State.Marked() {
			snapshot.States[p.ID] = p.State
		}
	}
	return snapshot, nil
}

func (s *Store) ClaimBatch(ctx context.Context, sessionID string, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	if s.versions[sessionID] != version {
		return domain.ErrConcurrentBatch
	}
	s.versions[sessionID] = version + 1
	return nil
}

func (s *Store) WriteParticipantState(ctx context.Context, sessionID, participantID string, mark output.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	p := session.ParticipantByID(participantID)
	if p == nil {
		return domain.ErrParticipantNotFound
	}
	p.State = mark.State
	p.MarkedAt = mark.MarkedAt
	p.MarkedBy = mark.MarkedBy
	p.Rating = mark.Rating
	p.Notes = mark.Notes
	p.UpdatedAt = mark.MarkedAt
	return nil
}

func (s *Store) FindByIDs(ctx context.Context, ids []string) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []entities.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *Store) FindByProgramAndUser(ctx context.Context, programID, userID string) (*entities.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.enrollments {
		e := s.enrollments[i]
		if e.ProgramID == programID && e.UserID == userID {
			return &e, nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (s *Store) SessionsForEnrollment(ctx context.Context, enrollment *entities.Enrollment) ([]entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []entities.Session
	for _, session := range s.sessions {
		if session.ProgramID != enrollment.ProgramID {
			continue
		}
		copied := *session
		copied.Participants = append([]entities.Participant(nil), session.Participants...)
		sessions = append(sessions, copied)
	}
	return sessions, nil
}
