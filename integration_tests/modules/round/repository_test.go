//go:build integration

package roundintegrationtests

import (
	"context"
	"math/rand/v2"
	"testing"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/Black-And-White-Club/barbershop-bot/integration_tests/testutils"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var sessionDiffOpts = []cmp.Option{
	cmpopts.IgnoreFields(sharedtypes.Session{}, "UpdatedAt"),
	cmpopts.EquateEmpty(),
}

func TestRepository_SaveAndLoadSession(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	repo := rounddb.NewRepository(testDB.DB)
	gen := testutils.NewTestDataGenerator(7)

	s := gen.ValidatedSession(t, repo, 2, 4)
	require.NoError(t, repo.SaveSession(ctx, nil, &s))

	loaded, err := repo.LoadSession(ctx, nil, s.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(s, *loaded, sessionDiffOpts...); diff != "" {
		t.Errorf("session mismatch (-saved +loaded):\n%s", diff)
	}

	ids, err := repo.ListSessions(ctx, nil, s.ConventionID)
	require.NoError(t, err)
	assert.Equal(t, []sharedtypes.SessionID{s.ID}, ids)

	owner, err := repo.SessionForRound(ctx, nil, s.Rounds[1].ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, owner)

	owner, err = repo.SessionForContest(ctx, nil, s.Contests[0].ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, owner)
}

func TestRepository_DrawnSongsResolve(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	repo := rounddb.NewRepository(testDB.DB)
	gen := testutils.NewTestDataGenerator(11)

	s := gen.ValidatedSession(t, repo, 1, 3)
	require.NoError(t, rounddomain.DrawRound(&s, &s.Rounds[0], rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, repo.SaveSession(ctx, nil, &s))

	a := s.Rounds[0].Appearances[0]
	require.NotEmpty(t, a.Songs)
	song := a.Songs[0]

	sc, err := repo.GetSongContext(ctx, nil, song.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, sc.AppearanceID)
	assert.Equal(t, s.Rounds[0].ID, sc.RoundID)
	assert.Equal(t, s.ID, sc.SessionID)
	assert.Len(t, sc.Panelists, 3)

	_, err = repo.GetSongContext(ctx, nil, sharedtypes.NewSongID())
	assert.ErrorIs(t, err, rounddb.ErrNotFound)
}

func TestRepository_SavePrunesRemovedChildren(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	repo := rounddb.NewRepository(testDB.DB)
	gen := testutils.NewTestDataGenerator(3)

	s := gen.ValidatedSession(t, repo, 1, 3)
	require.NoError(t, repo.SaveSession(ctx, nil, &s))

	removed := s.Rounds[0].Panelists[2].ID
	s.Rounds[0].Panelists = s.Rounds[0].Panelists[:2]
	require.NoError(t, repo.SaveSession(ctx, nil, &s))

	loaded, err := repo.LoadSession(ctx, nil, s.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Rounds[0].Panelists, 2)
	for _, p := range loaded.Rounds[0].Panelists {
		assert.NotEqual(t, removed, p.ID)
	}
}

func TestRepository_UnknownSession(t *testing.T) {
	cleanup(t)
	repo := rounddb.NewRepository(testDB.DB)
	_, err := repo.LoadSession(context.Background(), nil, sharedtypes.NewSessionID())
	assert.ErrorIs(t, err, rounddb.ErrNotFound)
}

func TestRepository_LockSessionInTransaction(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	repo := rounddb.NewRepository(testDB.DB)
	gen := testutils.NewTestDataGenerator(5)

	s := gen.ValidatedSession(t, repo, 1, 2)
	require.NoError(t, repo.SaveSession(ctx, nil, &s))

	err := testDB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := repo.LockSession(ctx, tx, s.ID); err != nil {
			return err
		}
		loaded, err := repo.LoadSession(ctx, tx, s.ID)
		if err != nil {
			return err
		}
		require.NoError(t, rounddomain.StartSession(loaded))
		return repo.SaveSession(ctx, tx, loaded)
	})
	require.NoError(t, err)

	loaded, err := repo.LoadSession(ctx, nil, s.ID)
	require.NoError(t, err)
	assert.Equal(t, sharedtypes.SessionStatusStarted, loaded.Status)
}
