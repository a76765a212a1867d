package adapters

import (
	"context"
	"errors"
	"testing"

	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/application"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// songRepo satisfies rounddb.Repository; only GetSongContext is exercised.
type songRepo struct {
	rounddb.Repository
	ctx *rounddb.SongContext
	err error
}

func (r *songRepo) GetSongContext(context.Context, bun.IDB, sharedtypes.SongID) (*rounddb.SongContext, error) {
	return r.ctx, r.err
}

func TestSongLookupAdapter_GetSongContext(t *testing.T) {
	songID := sharedtypes.NewSongID()
	panelist := sharedtypes.Panelist{
		ID:       sharedtypes.NewPanelistID(),
		Kind:     sharedtypes.PanelistKindOfficial,
		Category: sharedtypes.PanelistCategoryMusic,
	}

	tests := []struct {
		name    string
		repo    *songRepo
		wantErr error
	}{
		{
			name: "maps repository context",
			repo: &songRepo{ctx: &rounddb.SongContext{
				SongID:           songID,
				AppearanceID:     sharedtypes.NewAppearanceID(),
				AppearanceStatus: sharedtypes.AppearanceStatusStarted,
				Panelists:        []sharedtypes.Panelist{panelist},
			}},
		},
		{
			name:    "unknown song",
			repo:    &songRepo{err: rounddb.ErrNotFound},
			wantErr: scoreservice.ErrSongNotFound,
		},
		{
			name:    "infrastructure error passes through",
			repo:    &songRepo{err: errors.New("connection reset")},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSongLookupAdapter(tt.repo).GetSongContext(context.Background(), nil, songID)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.repo.err != nil:
				require.ErrorIs(t, err, tt.repo.err)
				assert.NotErrorIs(t, err, scoreservice.ErrSongNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, songID, got.SongID)
				assert.Equal(t, sharedtypes.AppearanceStatusStarted, got.AppearanceStatus)
				assert.Equal(t, []sharedtypes.Panelist{panelist}, got.Panelists)
			}
		})
	}
}
