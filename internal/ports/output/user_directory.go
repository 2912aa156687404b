package output

import (
	"context"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
)

// UserDirectory is the external source of user contact information.
type UserDirectory interface {
	// FindByIDs resolves the given user ids in one batch. Unknown ids are
	// simply absent from the result, never an error.
	FindByIDs(ctx context.Context, ids []string) ([]entities.User, error)
}
