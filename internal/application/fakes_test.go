package application

import (
	"context"
	"sync"
	"time"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
	"github.com/PabodaWA/CricketXpert-sub001/internal/infrastructure/memory"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

var testNow = time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)

func testClock() output.Clock {
	return output.ClockFunc(func() time.Time { return testNow })
}

// fakeNotifier records sends and can fail or block per contact.
type fakeNotifier struct {
	mu       sync.Mutex
	sent     []string // contacts, completion order
	failWith map[string]error
	blocked  map[string]chan struct{} // Send waits on the channel
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		failWith: make(map[string]error),
		blocked:  make(map[string]chan struct{}),
	}
}

func (n *fakeNotifier) Send(ctx context.Context, contact string, msg output.Message) error {
	n.mu.Lock()
	gate := n.blocked[contact]
	n.mu.Unlock()
	if gate != nil {
		// Deliberately ignores ctx so the send never settles before the
		// gate opens; the dispatcher's own timeout handling must kick in.
		<-gate
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.failWith[contact]; err != nil {
		return err
	}
	n.sent = append(n.sent, contact)
	return nil
}

func (n *fakeNotifier) sentContacts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

// stubComposer renders a deterministic body encoding the decision inputs.
type stubComposer struct{}

func (stubComposer) Compose(locale string, session *entities.Session, user *entities.User, newState entities.AttendanceState, firstMark bool) output.Message {
	body := string(newState)
	if firstMark {
		body = "first:" + body
	}
	return output.Message{Subject: session.Title, Body: body}
}

// failingWrites wraps the memory store and injects write failures.
type failingWrites struct {
	*memory.Store
	fail map[string]error // participant id -> error
}

func (f *failingWrites) WriteParticipantState(ctx context.Context, sessionID, participantID string, mark output.Mark) error {
	if err := f.fail[participantID]; err != nil {
		return err
	}
	return f.Store.WriteParticipantState(ctx, sessionID, participantID, mark)
}

// brokenStore wraps the memory store and fails every session lookup with an
// infrastructure error, as an unreachable backend would.
type brokenStore struct {
	*memory.Store
	err error
}

func (b *brokenStore) FindSessionByID(ctx context.Context, id string) (*entities.Session, error) {
	return nil, b.err
}

// brokenEnrollments fails every enrollment lookup with an infrastructure
// error.
type brokenEnrollments struct {
	*memory.Store
	err error
}

func (b *brokenEnrollments) FindByProgramAndUser(ctx context.Context, programID, userID string) (*entities.Enrollment, error) {
	return nil, b.err
}

// rivalClaims wraps the memory store and steals the batch claim right after
// every snapshot read, simulating a concurrent batch on the same session.
type rivalClaims struct {
	*memory.Store
}

func (r *rivalClaims) GetParticipantStates(ctx context.Context, sessionID string) (*output.StateSnapshot, error) {
	snapshot, err := r.Store.GetParticipantStates(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := r.Store.ClaimBatch(ctx, sessionID, snapshot.Version); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// seedSession registers a started session with three participants: p1 and p2
// reference contactable users, p3's user has no contact address.
func seedSession(store *memory.Store) *entities.Session {
	users := []entities.User{
		{ID: "u1", DisplayName: "Kasun", Contact: "contact-1"},
		{ID: "u2", DisplayName: "Dinesh", Contact: "contact-2"},
		{ID: "u3", DisplayName: "Amal"},
	}
	for _, u := range users {
		store.PutUser(u)
	}
	session := &entities.Session{
		ID:          "s1",
		ProgramID:   "prog-1",
		Title:       "Batting practice",
		ScheduledAt: testNow.Add(-2 * time.Hour),
		Participants: []entities.Participant{
			{ID: "p1", SessionID: "s1", User: entities.RefID("u1"), State: entities.Unmarked},
			{ID: "p2", SessionID: "s1", User: entities.RefID("u2"), State: entities.Unmarked},
			{ID: "p3", SessionID: "s1", User: entities.RefID("u3"), State: entities.Unmarked},
		},
	}
	store.PutSession(session)
	return session
}

func newService(store output.SessionStore, directory output.UserDirectory, notifier output.Notifier) *AttendanceService {
	return NewAttendanceService(
		store,
		NewIdentityResolver(directory),
		stubComposer{},
		NewDispatcher(notifier),
		testClock(),
	)
}
