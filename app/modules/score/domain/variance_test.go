package scoredomain

import (
	"errors"
	"slices"
	"testing"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/brianvoe/gofakeit/v7"
)

func TestDetectVariance_SmallPanel(t *testing.T) {
	tests := []struct {
		name     string
		points   []int
		wantLow  *int
		wantHigh *int
	}{
		{name: "high extreme", points: []int{70, 80, 95}, wantHigh: intPtr(95)},
		{name: "low extreme", points: []int{60, 70, 75}, wantLow: intPtr(60)},
		{name: "both gaps prefer the high end", points: []int{50, 60, 70}, wantHigh: intPtr(70)},
		{name: "within tolerance", points: []int{70, 78, 85}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song := songOf(spread(tt.points...)...)
			report, err := DetectVariance(song)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkExtreme(t, "low", song, report.LowOutlier, tt.wantLow)
			checkExtreme(t, "high", song, report.HighOutlier, tt.wantHigh)
			if want := tt.wantLow != nil || tt.wantHigh != nil; report.Variance() != want {
				t.Errorf("expected variance %v, got %v", want, report.Variance())
			}
		})
	}
}

func checkExtreme(t *testing.T, end string, song sharedtypes.Song, got *sharedtypes.ScoreID, want *int) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("unexpected %s outlier %s", end, got)
		}
		return
	}
	if got == nil {
		t.Fatalf("expected %s outlier %d, got none", end, *want)
	}
	for _, s := range song.Scores {
		if s.ID == *got && s.Points != *want {
			t.Errorf("expected %s outlier %d, got %d", end, *want, s.Points)
		}
	}
}

func TestDetectVariance_DixonMasksPractice(t *testing.T) {
	scores := []sharedtypes.Score{
		official(sharedtypes.CategoryMusic, 75),
		official(sharedtypes.CategoryMusic, 76),
		official(sharedtypes.CategoryPerformance, 77),
		official(sharedtypes.CategoryPerformance, 78),
		official(sharedtypes.CategorySinging, 80),
		official(sharedtypes.CategorySinging, 90),
		practice(sharedtypes.CategorySinging, 91),
		practice(sharedtypes.CategorySinging, 90),
		practice(sharedtypes.CategoryMusic, 80),
	}
	song := songOf(scores...)

	report, err := DetectVariance(song)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.HighOutlier == nil || *report.HighOutlier != song.Scores[5].ID {
		t.Fatalf("expected 90 to be the high outlier, got %v", report.HighOutlier)
	}
	if report.LowOutlier != nil {
		t.Errorf("unexpected low outlier")
	}
	wantMasked := []sharedtypes.ScoreID{song.Scores[6].ID, song.Scores[7].ID}
	if !slices.Equal(report.Masked, wantMasked) {
		t.Errorf("expected practice scores at or above 90 masked, got %v", report.Masked)
	}
	if report.IsMasked(song.Scores[8].ID) {
		t.Error("practice score below the extreme must not be masked")
	}
	if !report.IsFlagged(song.Scores[5].ID) {
		t.Error("expected 90 flagged")
	}
}

func TestDetectVariance_LowOutlier(t *testing.T) {
	song := songOf(
		official(sharedtypes.CategoryMusic, 50),
		official(sharedtypes.CategoryMusic, 60),
		official(sharedtypes.CategoryPerformance, 61),
		official(sharedtypes.CategoryPerformance, 62),
		official(sharedtypes.CategorySinging, 63),
		official(sharedtypes.CategorySinging, 64),
		practice(sharedtypes.CategoryMusic, 45),
		practice(sharedtypes.CategoryMusic, 50),
		practice(sharedtypes.CategoryMusic, 60),
	)

	report, err := DetectVariance(song)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.LowOutlier == nil || *report.LowOutlier != song.Scores[0].ID {
		t.Fatalf("expected 50 to be the low outlier, got %v", report.LowOutlier)
	}
	if len(report.Masked) != 2 || report.IsMasked(song.Scores[8].ID) {
		t.Errorf("expected practice 45 and 50 masked, got %v", report.Masked)
	}
}

func TestDetectVariance_CategoryCheckRunsFirst(t *testing.T) {
	tests := []struct {
		name   string
		scores []sharedtypes.Score
	}{
		{
			name: "unsupported panel size",
			scores: []sharedtypes.Score{
				official(sharedtypes.CategorySinging, 60),
				official(sharedtypes.CategorySinging, 90),
				official(sharedtypes.CategorySinging, 62),
				official(sharedtypes.CategorySinging, 61),
			},
		},
		{
			name: "supported panel size",
			scores: []sharedtypes.Score{
				official(sharedtypes.CategoryMusic, 70),
				official(sharedtypes.CategoryMusic, 71),
				official(sharedtypes.CategoryPerformance, 72),
				official(sharedtypes.CategoryPerformance, 73),
				official(sharedtypes.CategorySinging, 74),
				official(sharedtypes.CategorySinging, 90),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song := songOf(tt.scores...)
			report, err := DetectVariance(song)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var high sharedtypes.ScoreID
			for _, s := range song.Scores {
				if s.Points == 90 {
					high = s.ID
				}
			}
			if !report.Variance() || !report.IsFlagged(high) {
				t.Errorf("expected 90 flagged by its category average, got %+v", report)
			}
			if report.LowOutlier != nil || report.HighOutlier != nil {
				t.Errorf("Q test must not run once the category check flags: %+v", report)
			}
		})
	}
}

func TestDetectVariance_GapMustExceedFive(t *testing.T) {
	song := songOf(
		official(sharedtypes.CategoryMusic, 70),
		official(sharedtypes.CategoryMusic, 70),
		official(sharedtypes.CategoryPerformance, 70),
		official(sharedtypes.CategoryPerformance, 70),
		official(sharedtypes.CategorySinging, 70),
		official(sharedtypes.CategorySinging, 75),
	)
	report, err := DetectVariance(song)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Variance() {
		t.Errorf("a five point gap is not an outlier: %+v", report)
	}
}

func TestDetectVariance_UnsupportedPanelSize(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 7, 16} {
		points := make([]int, n)
		for i := range points {
			points[i] = 70
		}
		song := songOf(spread(points...)...)
		_, err := DetectVariance(song)
		var sizeErr *UnsupportedPanelSizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("n=%d: expected *UnsupportedPanelSizeError, got %v", n, err)
		}
		if sizeErr.Size != n || sizeErr.SongID != song.ID {
			t.Errorf("n=%d: unexpected error fields %+v", n, sizeErr)
		}
	}
}

func TestDetectVariance_PracticeScoresDoNotCountTowardPanel(t *testing.T) {
	song := songOf(append(spread(70, 72, 74), practice(sharedtypes.CategoryMusic, 10))...)
	report, err := DetectVariance(song)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Variance() || len(report.Masked) != 0 {
		t.Errorf("expected clean report, got %+v", report)
	}
}

// Identical official points never produce an outlier, whatever the panel size.
func TestDetectVariance_UniformPanelsNeverFlag(t *testing.T) {
	f := gofakeit.New(42)
	for _, n := range []int{3, 6, 9, 12, 15} {
		for range 20 {
			v := f.IntRange(MinPoints, MaxPoints)
			points := make([]int, n)
			for i := range points {
				points[i] = v
			}
			report, err := DetectVariance(songOf(spread(points...)...))
			if err != nil {
				t.Fatalf("n=%d: unexpected error: %v", n, err)
			}
			if report.Variance() {
				t.Fatalf("n=%d points=%d: unexpected variance %+v", n, v, report)
			}
		}
	}
}

func TestDetectVariance_DoesNotMutate(t *testing.T) {
	song := songOf(spread(70, 80, 95)...)
	before := slices.Clone(song.Scores)
	if _, err := DetectVariance(song); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(before, song.Scores) {
		t.Error("detector mutated the song")
	}
}
