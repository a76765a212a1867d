package scoredomain

import (
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

func official(c sharedtypes.Category, points int) sharedtypes.Score {
	return sharedtypes.Score{
		ID:         sharedtypes.NewScoreID(),
		PanelistID: sharedtypes.NewPanelistID(),
		Category:   c,
		Kind:       sharedtypes.ScoreKindOfficial,
		Points:     points,
		Status:     sharedtypes.ScoreStatusNew,
	}
}

func practice(c sharedtypes.Category, points int) sharedtypes.Score {
	s := official(c, points)
	s.Kind = sharedtypes.ScoreKindPractice
	return s
}

func songOf(scores ...sharedtypes.Score) sharedtypes.Song {
	id := sharedtypes.NewSongID()
	for i := range scores {
		scores[i].SongID = id
	}
	return sharedtypes.Song{ID: id, Num: 1, Scores: scores}
}

// spread assigns categories round-robin so no category average check fires
// on a three-judge panel.
func spread(points ...int) []sharedtypes.Score {
	cats := []sharedtypes.Category{sharedtypes.CategoryMusic, sharedtypes.CategoryPerformance, sharedtypes.CategorySinging}
	out := make([]sharedtypes.Score, len(points))
	for i, p := range points {
		out[i] = official(cats[i%len(cats)], p)
	}
	return out
}

func intPtr(v int) *int { return &v }

func cloneAppearance(a sharedtypes.Appearance) sharedtypes.Appearance {
	s := sharedtypes.Session{Rounds: []sharedtypes.Round{{Appearances: []sharedtypes.Appearance{a}}}}
	return s.Clone().Rounds[0].Appearances[0]
}
