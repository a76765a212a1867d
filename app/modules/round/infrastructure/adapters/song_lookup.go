package adapters

import (
	"context"
	"errors"

	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/application"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// SongLookupAdapter adapts the round repository to the score service SongLookup port.
type SongLookupAdapter struct {
	repo rounddb.Repository
}

// NewSongLookupAdapter constructs a new adapter.
func NewSongLookupAdapter(repo rounddb.Repository) *SongLookupAdapter {
	return &SongLookupAdapter{repo: repo}
}

func (a *SongLookupAdapter) GetSongContext(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) (*scoreservice.SongContext, error) {
	sc, err := a.repo.GetSongContext(ctx, db, songID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return nil, scoreservice.ErrSongNotFound
		}
		return nil, err
	}
	return &scoreservice.SongContext{
		SongID:           sc.SongID,
		AppearanceID:     sc.AppearanceID,
		RoundID:          sc.RoundID,
		SessionID:        sc.SessionID,
		AppearanceStatus: sc.AppearanceStatus,
		Panelists:        sc.Panelists,
	}, nil
}
