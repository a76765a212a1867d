package rounddomain

import (
	"errors"
	"testing"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishAppearance_MissingScoreBlocks(t *testing.T) {
	s := fixture(t, 1, 0, []string{"Alpha"}, championship(1))
	r := &s.Rounds[0]
	a := &r.Appearances[0]
	_, err := StartAppearance(s, a.ID)
	require.NoError(t, err)

	score(r, &a.Songs[0], func(sharedtypes.Panelist) int { return 75 })
	score(r, &a.Songs[1], func(sharedtypes.Panelist) int { return 75 })
	a.Songs[1].Scores = a.Songs[1].Scores[:2]

	_, err = FinishAppearance(s, a.ID)
	var ste *lifecycle.StateTransitionError
	require.True(t, errors.As(err, &ste))
	assert.Equal(t, "song", ste.BlockingEntity)
	assert.Equal(t, a.Songs[1].ID.String(), ste.BlockingID)
	assert.Equal(t, sharedtypes.AppearanceStatusStarted, a.Status)
}

func TestFinishAppearance_AggregatesTotals(t *testing.T) {
	s := fixture(t, 1, 0, []string{"Alpha"}, championship(1))
	r := &s.Rounds[0]
	a := perform(t, s, r, r.Appearances[0].CompetitorID, 75)

	assert.Equal(t, sharedtypes.AppearanceStatusFinished, a.Status)
	require.NotNil(t, a.Totals.TotPoints)
	assert.Equal(t, 450, *a.Totals.TotPoints, "two songs from three judges")
	assert.InDelta(t, 75.0, *a.Totals.TotScore, 1e-9)
}

func TestStartAppearance_RoundNotStarted(t *testing.T) {
	s := fixture(t, 1, 0, []string{"Alpha"}, championship(1))
	s.Rounds[0].Status = sharedtypes.RoundStatusValidated

	_, err := StartAppearance(s, s.Rounds[0].Appearances[0].ID)
	assert.ErrorIs(t, err, lifecycle.ErrStateTransition)

	_, err = StartAppearance(s, sharedtypes.NewAppearanceID())
	assert.ErrorIs(t, err, ErrAppearanceNotFound)
}

func TestVerifyAppearance(t *testing.T) {
	s := fixture(t, 1, 0, []string{"Alpha"}, championship(1))
	r := &s.Rounds[0]
	a := &r.Appearances[0]
	_, err := StartAppearance(s, a.ID)
	require.NoError(t, err)

	byCategory := map[sharedtypes.PanelistCategory]int{
		sharedtypes.PanelistCategoryMusic:       70,
		sharedtypes.PanelistCategoryPerformance: 80,
		sharedtypes.PanelistCategorySinging:     95,
	}
	score(r, &a.Songs[0], func(p sharedtypes.Panelist) int { return byCategory[p.Category] })
	score(r, &a.Songs[1], func(sharedtypes.Panelist) int { return 80 })
	_, err = FinishAppearance(s, a.ID)
	require.NoError(t, err)

	_, res, err := VerifyAppearance(s, a.ID)
	require.NoError(t, err)
	assert.True(t, res.Variance)
	assert.Equal(t, sharedtypes.AppearanceStatusVariance, a.Status)

	// Still flagged: verifying again keeps the appearance in variance.
	_, res, err = VerifyAppearance(s, a.ID)
	require.NoError(t, err)
	assert.True(t, res.Variance)
	assert.Equal(t, sharedtypes.AppearanceStatusVariance, a.Status)

	for i := range a.Songs[0].Scores {
		sc := &a.Songs[0].Scores[i]
		if sc.Status == sharedtypes.ScoreStatusFlagged {
			sc.Points = 82
			sc.Status = sharedtypes.ScoreStatusRevised
		}
	}
	_, res, err = VerifyAppearance(s, a.ID)
	require.NoError(t, err)
	assert.False(t, res.Variance)
	assert.Equal(t, sharedtypes.AppearanceStatusVerified, a.Status)
}
