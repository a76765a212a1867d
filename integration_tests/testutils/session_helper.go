//go:build integration

package testutils

import (
	"context"
	"math/rand/v2"
	"testing"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/stretchr/testify/require"
)

// ValidatedSession stores a convention and returns a validated session with
// three official judges on its first round.
func (g *TestDataGenerator) ValidatedSession(t *testing.T, repo rounddb.Repository, numRounds, competitors int) sharedtypes.Session {
	t.Helper()
	ctx := context.Background()

	conv := sharedtypes.Convention{
		ID:     sharedtypes.NewConventionID(),
		Name:   g.ConventionName(),
		Season: "fall",
		Year:   2026,
		Level:  sharedtypes.ConventionLevelDistrict,
		Status: sharedtypes.ConventionStatusNew,
	}
	require.NoError(t, repo.CreateConvention(ctx, nil, conv))

	s, err := rounddomain.NewSession(rounddomain.NewSessionParams{
		ConventionID: conv.ID,
		Kind:         sharedtypes.SessionKindQuartet,
		Level:        sharedtypes.ConventionLevelDistrict,
		NumRounds:    numRounds,
		Spots:        2,
	})
	require.NoError(t, err)
	require.NoError(t, rounddomain.OpenSession(&s))
	contest, err := rounddomain.AddContest(&s, sharedtypes.Award{
		Name:   "District Quartet Championship",
		Level:  sharedtypes.AwardLevelChampionship,
		Rounds: numRounds,
	})
	require.NoError(t, err)
	for _, name := range g.CompetitorNames(competitors) {
		_, err := rounddomain.RegisterCompetitor(&s, name, []sharedtypes.ContestID{contest.ID})
		require.NoError(t, err)
	}
	require.NoError(t, rounddomain.CloseSession(&s))
	require.NoError(t, rounddomain.ValidateSession(&s, rounddomain.DefaultNumSongs))
	for _, cat := range []sharedtypes.PanelistCategory{
		sharedtypes.PanelistCategoryMusic,
		sharedtypes.PanelistCategoryPerformance,
		sharedtypes.PanelistCategorySinging,
	} {
		_, err := rounddomain.AssignPanelist(&s, s.Rounds[0].ID, g.PanelistName(), sharedtypes.PanelistKindOfficial, cat)
		require.NoError(t, err)
	}
	return s
}

// DrawnSession saves a validated session whose first round has been drawn,
// so its songs exist for scores to reference.
func (g *TestDataGenerator) DrawnSession(t *testing.T, repo rounddb.Repository, competitors int) sharedtypes.Session {
	t.Helper()
	s := g.ValidatedSession(t, repo, 1, competitors)
	require.NoError(t, rounddomain.DrawRound(&s, &s.Rounds[0], rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, repo.SaveSession(context.Background(), nil, &s))
	return s
}
