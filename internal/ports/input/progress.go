package input

import (
	"context"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain"
)

type ProgressUseCase interface {
	// GetProgress derives the attendance percentage and completion flag for
	// one user within one program.
	GetProgress(ctx context.Context, programID, userID string) (domain.Progress, error)
}
