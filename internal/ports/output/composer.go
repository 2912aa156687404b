package output

import "github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"

// MessageComposer renders the notification content for one attendance
// outcome. Implementations provide lookup + templating for a given locale.
type MessageComposer interface {
	// Compose renders the message for a participant whose state moved to
	// newState in the given session. firstMark distinguishes an initial mark
	// from a correction.
	Compose(locale string, session *entities.Session, user *entities.User, newState entities.AttendanceState, firstMark bool) Message
}
