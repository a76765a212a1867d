package adapters

import (
	"context"
	"errors"

	leaderboardservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/application"
	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// SessionLookupAdapter adapts the round repository to the leaderboard
// service SessionLookup port.
type SessionLookupAdapter struct {
	repo rounddb.Repository
}

func NewSessionLookupAdapter(repo rounddb.Repository) *SessionLookupAdapter {
	return &SessionLookupAdapter{repo: repo}
}

func (a *SessionLookupAdapter) LoadSession(ctx context.Context, id sharedtypes.SessionID) (*sharedtypes.Session, error) {
	s, err := a.repo.LoadSession(ctx, nil, id)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return nil, leaderboardservice.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}
