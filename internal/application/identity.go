package application

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain/entities"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

// Skip reasons reported for participants excluded from dispatch.
const (
	SkipUserNotFound = "user-not-found"
	SkipNoContact    = "no-contact-address"
)

// Resolution is the per-participant outcome of identity resolution: either a
// notifiable user, or a skip reason.
type Resolution struct {
	Participant *entities.Participant
	User        *entities.User
	SkipReason  string
}

// Notifiable reports whether the participant resolved to a contactable user.
func (r Resolution) Notifiable() bool {
	return r.SkipReason == "" && r.User != nil && r.User.Contact != ""
}

// IdentityResolver joins participant records to directory records carrying a
// contact address. Read-only.
type IdentityResolver struct {
	directory output.UserDirectory
}

// NewIdentityResolver creates an IdentityResolver.
func NewIdentityResolver(directory output.UserDirectory) *IdentityResolver {
	return &IdentityResolver{directory: directory}
}

// Resolve maps each participant to its referenced user in one batch lookup.
// The result is aligned with the input: one Resolution per participant, in
// order. A participant whose user is missing from the directory, or whose
// user has no contact address, is skipped, never an error.
//
// References that already carry a populated user are still normalized to
// their id and looked up: the directory is authoritative for contact
// addresses.
func (r *IdentityResolver) Resolve(ctx context.Context, participants []*entities.Participant) ([]Resolution, error) {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		if id := p.User.UserID(); id != "" {
			ids = append(ids, id)
		}
	}
	ids = lo.Uniq(ids)

	byID := make(map[string]*entities.User, len(ids))
	if len(ids) > 0 {
		users, err := r.directory.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("directory lookup: %w", err)
		}
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
	}

	resolutions := make([]Resolution, len(participants))
	for i, p := range participants {
		res := Resolution{Participant: p}
		user, ok := byID[p.User.UserID()]
		switch {
		case !ok:
			res.SkipReason = SkipUserNotFound
		case user.Contact == "":
			res.User = user
			res.SkipReason = SkipNoContact
		default:
			res.User = user
		}
		resolutions[i] = res
	}
	return resolutions, nil
}
