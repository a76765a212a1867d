//go:build integration

package scoreintegrationtests

import (
	"context"
	"testing"

	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/Black-And-White-Club/barbershop-bot/integration_tests/testutils"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var byID = cmpopts.SortSlices(func(a, b sharedtypes.Score) bool { return a.ID.String() < b.ID.String() })

// scorePanel submits one official score per panelist on the song.
func scorePanel(t *testing.T, repo scoredb.Repository, round sharedtypes.Round, song sharedtypes.Song, points []int) []sharedtypes.Score {
	t.Helper()
	var out []sharedtypes.Score
	for i, p := range round.Panelists {
		cat, _ := p.Category.Category()
		sc, err := scoredomain.NewScore(scoredomain.NewScoreParams{
			SongID:     song.ID,
			PanelistID: p.ID,
			Category:   cat,
			Kind:       sharedtypes.ScoreKindOfficial,
			Points:     points[i],
		})
		require.NoError(t, err)
		require.NoError(t, repo.UpsertScore(context.Background(), nil, sc))
		out = append(out, sc)
	}
	return out
}

func setup(t *testing.T, seed uint64) (scoredb.Repository, sharedtypes.Session, *testutils.TestDataGenerator) {
	t.Helper()
	require.NoError(t, testDB.CleanupDatabase(context.Background()))
	gen := testutils.NewTestDataGenerator(seed)
	s := gen.DrawnSession(t, rounddb.NewRepository(testDB.DB), 2)
	return scoredb.NewRepository(testDB.DB), s, gen
}

func TestScoreRepository_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	repo, s, gen := setup(t, 21)
	round := s.Rounds[0]
	song := round.Appearances[0].Songs[0]

	want := scorePanel(t, repo, round, song, gen.TightPanel(3))

	got, err := repo.ListScoresBySong(ctx, nil, song.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, byID, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("scores mismatch (-submitted +stored):\n%s", diff)
	}

	one, err := repo.GetScoreByPanelist(ctx, nil, song.ID, round.Panelists[1].ID)
	require.NoError(t, err)
	assert.Equal(t, want[1].ID, one.ID)
}

func TestScoreRepository_ResubmitReplacesPoints(t *testing.T) {
	ctx := context.Background()
	repo, s, _ := setup(t, 22)
	round := s.Rounds[0]
	song := round.Appearances[0].Songs[0]

	first := scorePanel(t, repo, round, song, []int{70, 71, 72})

	again := first[0]
	again.ID = sharedtypes.NewScoreID()
	again.Points = 75
	require.NoError(t, repo.UpsertScore(ctx, nil, again))

	scores, err := repo.ListScoresBySong(ctx, nil, song.ID)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	stored, err := repo.GetScore(ctx, nil, first[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 75, stored.Points)
}

func TestScoreRepository_UpsertSkipsSettledScore(t *testing.T) {
	ctx := context.Background()
	repo, s, _ := setup(t, 24)
	round := s.Rounds[0]
	song := round.Appearances[0].Songs[0]

	first := scorePanel(t, repo, round, song, []int{70, 71, 72})
	cleared := first[0]
	cleared.Status = sharedtypes.ScoreStatusCleared
	require.NoError(t, repo.UpdateScores(ctx, nil, []sharedtypes.Score{cleared}))

	late := first[0]
	late.ID = sharedtypes.NewScoreID()
	late.Points = 95
	assert.ErrorIs(t, repo.UpsertScore(ctx, nil, late), scoredb.ErrNoRowsAffected)

	stored, err := repo.GetScore(ctx, nil, first[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 70, stored.Points)
	assert.Equal(t, sharedtypes.ScoreStatusCleared, stored.Status)
}

func TestScoreRepository_UpdateScores(t *testing.T) {
	ctx := context.Background()
	repo, s, _ := setup(t, 23)
	round := s.Rounds[0]
	song := round.Appearances[0].Songs[0]

	scores := scorePanel(t, repo, round, song, []int{60, 80, 80})
	flagged := scores[0]
	flagged.IsFlagged = true
	flagged.Status = sharedtypes.ScoreStatusFlagged
	require.NoError(t, repo.UpdateScores(ctx, nil, []sharedtypes.Score{flagged}))

	stored, err := repo.GetScore(ctx, nil, flagged.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFlagged)
	assert.Equal(t, sharedtypes.ScoreStatusFlagged, stored.Status)

	_, err = repo.GetScore(ctx, nil, sharedtypes.NewScoreID())
	assert.ErrorIs(t, err, scoredb.ErrNotFound)
}

func TestScoreRepository_ListByAppearances(t *testing.T) {
	ctx := context.Background()
	repo, s, gen := setup(t, 24)
	round := s.Rounds[0]

	var want []sharedtypes.Score
	var ids []sharedtypes.AppearanceID
	for _, a := range round.Appearances {
		ids = append(ids, a.ID)
		for _, song := range a.Songs {
			want = append(want, scorePanel(t, repo, round, song, gen.TightPanel(3))...)
		}
	}

	got, err := repo.ListScoresByAppearances(ctx, nil, ids)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, byID, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("scores mismatch (-submitted +stored):\n%s", diff)
	}

	got, err = repo.ListScoresByAppearances(ctx, nil, ids[:1])
	require.NoError(t, err)
	assert.Len(t, got, len(round.Appearances[0].Songs)*len(round.Panelists))
}
