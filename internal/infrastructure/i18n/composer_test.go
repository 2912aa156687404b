package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
)

func composerFixtures() (*entities.Session, *entities.User) {
	session := &entities.Session{
		Title:       "Batting practice",
		ScheduledAt: time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC),
	}
	user := &entities.User{ID: "u1", DisplayName: "Kasun", Contact: "contact-1"}
	return session, user
}

func TestCompose_FirstMarkPresent(t *testing.T) {
	composer := NewComposer("en")
	session, user := composerFixtures()

	msg := composer.Compose("en", session, user, entities.Present, true)

	require.Contains(t, msg.Subject, "Batting practice")
	require.Contains(t, msg.Body, "Kasun")
	require.Contains(t, msg.Body, "marked present")
	require.Contains(t, msg.Body, "Tue, 10 Mar 2026")
}

func TestCompose_ChangedAbsent(t *testing.T) {
	composer := NewComposer("en")
	session, user := composerFixtures()

	msg := composer.Compose("en", session, user, entities.Absent, false)

	require.Contains(t, msg.Body, "corrected to absent")
}

func TestCompose_UnknownLocaleFallsBack(t *testing.T) {
	composer := NewComposer("en")
	session, user := composerFixtures()

	msg := composer.Compose("ta", session, user, entities.Present, true)

	require.Contains(t, msg.Body, "marked present")
}

func TestCompose_SinhalaLocale(t *testing.T) {
	composer := NewComposer("en")
	session, user := composerFixtures()

	msg := composer.Compose("si", session, user, entities.Present, true)

	require.Contains(t, msg.Body, "Kasun")
	require.NotContains(t, msg.Body, "marked present")
}
