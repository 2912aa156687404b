package output

import (
	"context"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
)

// EnrollmentRepository reads program enrollments and their session history.
// Read-only: enrollment lifecycle is a program-management concern.
type EnrollmentRepository interface {
	FindByProgramAndUser(ctx context.Context, programID, userID string) (*entities.Enrollment, error)
	// SessionsForEnrollment returns every session of the enrollment's
	// program, with participant entries populated.
	SessionsForEnrollment(ctx context.Context, enrollment *entities.Enrollment) ([]entities.Session, error)
}
