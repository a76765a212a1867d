package rounddomain

import (
	"math/rand/v2"
	"testing"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int { return &v }

func fp(v float64) *float64 { return &v }

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func championship(rounds int) sharedtypes.Award {
	return sharedtypes.Award{Name: "Quartet Championship", Level: sharedtypes.AwardLevelChampionship, Rounds: rounds}
}

// fixture builds a validated session with the named competitors entered in
// every contest, a three-judge official panel on round one, and round one
// drawn, validated and started.
func fixture(t *testing.T, numRounds, spots int, names []string, awards ...sharedtypes.Award) *sharedtypes.Session {
	t.Helper()
	s, err := NewSession(NewSessionParams{
		ConventionID: sharedtypes.NewConventionID(),
		Kind:         sharedtypes.SessionKindQuartet,
		Level:        sharedtypes.ConventionLevelDistrict,
		NumRounds:    numRounds,
		Spots:        spots,
	})
	require.NoError(t, err)
	require.NoError(t, OpenSession(&s))

	var contests []sharedtypes.ContestID
	for _, a := range awards {
		c, err := AddContest(&s, a)
		require.NoError(t, err)
		contests = append(contests, c.ID)
	}
	for _, n := range names {
		_, err := RegisterCompetitor(&s, n, contests)
		require.NoError(t, err)
	}
	require.NoError(t, CloseSession(&s))
	require.NoError(t, ValidateSession(&s, 2))

	r := &s.Rounds[0]
	for _, c := range []sharedtypes.PanelistCategory{
		sharedtypes.PanelistCategoryMusic,
		sharedtypes.PanelistCategoryPerformance,
		sharedtypes.PanelistCategorySinging,
	} {
		_, err := AssignPanelist(&s, r.ID, string(c)+" judge", sharedtypes.PanelistKindOfficial, c)
		require.NoError(t, err)
	}
	require.NoError(t, DrawRound(&s, r, testRNG()))
	require.NoError(t, ValidateRound(r))
	require.NoError(t, StartSession(&s))
	require.NoError(t, StartRound(&s, r))
	return &s
}

func competitorNamed(t *testing.T, s *sharedtypes.Session, name string) sharedtypes.CompetitorID {
	t.Helper()
	for _, c := range s.Competitors {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("no competitor %q", name)
	return sharedtypes.CompetitorID{}
}

// perform starts the appearance, records the same points from every scoring
// panelist on every song and finishes it.
func perform(t *testing.T, s *sharedtypes.Session, r *sharedtypes.Round, comp sharedtypes.CompetitorID, points int) *sharedtypes.Appearance {
	t.Helper()
	a := r.AppearanceFor(comp)
	require.NotNil(t, a)
	_, err := StartAppearance(s, a.ID)
	require.NoError(t, err)
	for i := range a.Songs {
		score(r, &a.Songs[i], func(sharedtypes.Panelist) int { return points })
	}
	_, err = FinishAppearance(s, a.ID)
	require.NoError(t, err)
	return a
}

func score(r *sharedtypes.Round, song *sharedtypes.Song, points func(sharedtypes.Panelist) int) {
	for _, p := range r.Panelists {
		if !p.Scores() {
			continue
		}
		cat, _ := p.Category.Category()
		kind, _ := p.Kind.ScoreKind()
		song.Scores = append(song.Scores, sharedtypes.Score{
			ID:         sharedtypes.NewScoreID(),
			SongID:     song.ID,
			PanelistID: p.ID,
			Category:   cat,
			Kind:       kind,
			Points:     points(p),
			Status:     sharedtypes.ScoreStatusNew,
		})
	}
}
