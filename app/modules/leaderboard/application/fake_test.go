package leaderboardservice

import (
	"context"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// FakeSessionLookup serves sessions from a map unless LoadSessionFunc is set.
type FakeSessionLookup struct {
	Sessions        map[sharedtypes.SessionID]*sharedtypes.Session
	LoadSessionFunc func(ctx context.Context, id sharedtypes.SessionID) (*sharedtypes.Session, error)
	loads           int
}

func (f *FakeSessionLookup) LoadSession(ctx context.Context, id sharedtypes.SessionID) (*sharedtypes.Session, error) {
	f.loads++
	if f.LoadSessionFunc != nil {
		return f.LoadSessionFunc(ctx, id)
	}
	s, ok := f.Sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

var _ SessionLookup = (*FakeSessionLookup)(nil)
