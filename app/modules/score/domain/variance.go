package scoredomain

import (
	"cmp"
	"math"
	"slices"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const (
	// CategoryVarianceLimit is the largest allowed distance from the category average.
	CategoryVarianceLimit = 5.0
	// OutlierGap is the minimum point gap, exclusive, for a Dixon outlier.
	OutlierGap = 5
	// SmallPanelGap is the neighbor gap, inclusive, that flags an extreme on a three-judge panel.
	SmallPanelGap = 10
)

// dixonCritical holds the Q critical values per official panel size. No other
// sizes are supported.
var dixonCritical = map[int]float64{
	3:  0.941,
	6:  0.56,
	9:  0.376,
	12: 0.437,
	15: 0.338,
}

// SupportedPanelSize reports whether Dixon's Q test can run on n official scores.
func SupportedPanelSize(n int) bool {
	_, ok := dixonCritical[n]
	return ok
}

// VarianceReport lists what the detector found on one song.
type VarianceReport struct {
	SongID sharedtypes.SongID

	// CategoryFlagged holds official scores too far from their category average.
	CategoryFlagged []sharedtypes.ScoreID
	// LowOutlier and HighOutlier are the official extremes rejected by Dixon's Q.
	LowOutlier  *sharedtypes.ScoreID
	HighOutlier *sharedtypes.ScoreID
	// Masked holds practice scores at or beyond a rejected extreme.
	Masked []sharedtypes.ScoreID
}

// Flagged returns every official score the detector flagged, without duplicates.
func (r VarianceReport) Flagged() []sharedtypes.ScoreID {
	out := slices.Clone(r.CategoryFlagged)
	for _, id := range []*sharedtypes.ScoreID{r.LowOutlier, r.HighOutlier} {
		if id != nil && !slices.Contains(out, *id) {
			out = append(out, *id)
		}
	}
	return out
}

// Variance reports whether any official score was flagged.
func (r VarianceReport) Variance() bool { return len(r.Flagged()) > 0 }

func (r VarianceReport) IsFlagged(id sharedtypes.ScoreID) bool {
	return slices.Contains(r.Flagged(), id)
}

func (r VarianceReport) IsMasked(id sharedtypes.ScoreID) bool {
	return slices.Contains(r.Masked, id)
}

// DetectVariance runs the category-average check over the song's official
// scores and, only when that flags nothing, Dixon's Q test. The panel size
// matters only for the Q test. It does not modify the song.
func DetectVariance(song sharedtypes.Song) (VarianceReport, error) {
	report := VarianceReport{SongID: song.ID}

	var official, practice []sharedtypes.Score
	for _, s := range song.Scores {
		switch s.Kind {
		case sharedtypes.ScoreKindOfficial:
			official = append(official, s)
		case sharedtypes.ScoreKindPractice:
			practice = append(practice, s)
		}
	}

	for _, s := range official {
		if avg, ok := categoryAverage(official, s.Category); ok && deviates(s.Points, avg) {
			report.CategoryFlagged = append(report.CategoryFlagged, s.ID)
		}
	}
	if len(report.CategoryFlagged) > 0 {
		return report, nil
	}

	critical, ok := dixonCritical[len(official)]
	if !ok {
		return report, &UnsupportedPanelSizeError{Size: len(official), SongID: song.ID}
	}

	sorted := slices.Clone(official)
	slices.SortStableFunc(sorted, func(a, b sharedtypes.Score) int { return cmp.Compare(a.Points, b.Points) })
	n := len(sorted)
	low, high := sorted[0], sorted[n-1]

	if n == 3 {
		mid := sorted[1]
		switch {
		case high.Points-mid.Points >= SmallPanelGap:
			report.HighOutlier = &high.ID
		case mid.Points-low.Points >= SmallPanelGap:
			report.LowOutlier = &low.ID
		}
	} else if spread := high.Points - low.Points; spread > 0 {
		if gap := sorted[1].Points - low.Points; rejects(gap, spread, critical) {
			report.LowOutlier = &low.ID
		}
		if gap := high.Points - sorted[n-2].Points; rejects(gap, spread, critical) {
			report.HighOutlier = &high.ID
		}
	}

	for _, p := range practice {
		switch {
		case report.LowOutlier != nil && p.Points <= low.Points:
			report.Masked = append(report.Masked, p.ID)
		case report.HighOutlier != nil && p.Points >= high.Points:
			report.Masked = append(report.Masked, p.ID)
		}
	}

	return report, nil
}

func rejects(gap, spread int, critical float64) bool {
	q := float64(gap) / float64(spread)
	return q > critical && gap > OutlierGap
}

func categoryAverage(scores []sharedtypes.Score, c sharedtypes.Category) (float64, bool) {
	sum, n := 0, 0
	for _, s := range scores {
		if s.Official() && s.Category == c {
			sum += s.Points
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

func deviates(points int, avg float64) bool {
	return math.Abs(float64(points)-avg) > CategoryVarianceLimit
}
