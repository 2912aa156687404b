package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/input"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

var _ input.ProgressUseCase = (*ProgressService)(nil)

// ProgressService derives attendance percentage and completion over a user's
// enrolled sessions.
type ProgressService struct {
	enrollments output.EnrollmentRepository
}

// NewProgressService creates a ProgressService.
func NewProgressService(enrollments output.EnrollmentRepository) *ProgressService {
	return &ProgressService{enrollments: enrollments}
}

func (s *ProgressService) GetProgress(ctx context.Context, programID, userID string) (domain.Progress, error) {
	enrollment, err := s.enrollments.FindByProgramAndUser(ctx, programID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return domain.Progress{}, err
		}
		return domain.Progress{}, fmt.Errorf("load enrollment: %w", err)
	}
	sessions, err := s.enrollments.SessionsForEnrollment(ctx, enrollment)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("load enrollment sessions: %w", err)
	}
	return domain.CalculateProgress(sessions, userID), nil
}
