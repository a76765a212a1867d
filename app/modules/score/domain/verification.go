package scoredomain

import (
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// VerificationResult summarizes what ApplyVerification did to one appearance.
type VerificationResult struct {
	Reports  []VarianceReport
	Flagged  []sharedtypes.ScoreID
	Variance bool
	Totals   sharedtypes.Totals
}

// FlaggedByCategory counts newly flagged official scores per category.
func (v VerificationResult) FlaggedByCategory(a sharedtypes.Appearance) map[sharedtypes.Category]int {
	out := make(map[sharedtypes.Category]int)
	for _, song := range a.Songs {
		for _, s := range song.Scores {
			for _, id := range v.Flagged {
				if s.ID == id {
					out[s.Category]++
				}
			}
		}
	}
	return out
}

// ApplyVerification runs variance detection over every song of the appearance
// and settles each score:
//
//	new, verified -> verified -> flagged | cleared
//	revised       -> confirmed
//
// Cleared, flagged and confirmed scores are left alone, so re-running it on
// unchanged input changes nothing. Practice scores are never aggregated; they
// only pick up the flag mask of a rejected extreme. The appearance totals are
// recomputed at the end.
func ApplyVerification(a *sharedtypes.Appearance) (VerificationResult, error) {
	var res VerificationResult

	for i := range a.Songs {
		song := &a.Songs[i]
		AggregateSong(song)

		report, err := DetectVariance(*song)
		if err != nil {
			return VerificationResult{}, err
		}
		res.Reports = append(res.Reports, report)

		for j := range song.Scores {
			s := &song.Scores[j]
			switch s.Kind {
			case sharedtypes.ScoreKindOfficial:
				flagged, err := settleOfficial(s, report)
				if err != nil {
					return VerificationResult{}, err
				}
				if flagged {
					res.Flagged = append(res.Flagged, s.ID)
				}
				if s.Status == sharedtypes.ScoreStatusFlagged {
					res.Variance = true
				}
			case sharedtypes.ScoreKindPractice:
				s.IsFlagged = report.IsMasked(s.ID)
				if err := clearPractice(s); err != nil {
					return VerificationResult{}, err
				}
			}
		}
	}

	res.Totals = AggregateAppearance(a)
	return res, nil
}

// settleOfficial moves one official score through verification and reports
// whether it was newly flagged.
func settleOfficial(s *sharedtypes.Score, report VarianceReport) (bool, error) {
	switch s.Status {
	case sharedtypes.ScoreStatusNew, sharedtypes.ScoreStatusVerified:
		if s.Status == sharedtypes.ScoreStatusNew {
			status, err := ScoreMachine.Transition(s.ID, s.Status, sharedtypes.ScoreStatusVerified)
			if err != nil {
				return false, err
			}
			s.Status = status
		}
		target := sharedtypes.ScoreStatusCleared
		if report.IsFlagged(s.ID) {
			target = sharedtypes.ScoreStatusFlagged
		}
		status, err := ScoreMachine.Transition(s.ID, s.Status, target)
		if err != nil {
			return false, err
		}
		s.Status = status
		if status != sharedtypes.ScoreStatusFlagged {
			return false, nil
		}
		s.IsFlagged = true
		if s.Original == nil {
			original := s.Points
			s.Original = &original
		}
		return true, nil
	case sharedtypes.ScoreStatusRevised:
		status, err := ScoreMachine.Transition(s.ID, s.Status, sharedtypes.ScoreStatusConfirmed)
		if err != nil {
			return false, err
		}
		s.Status = status
		s.IsFlagged = false
	}
	return false, nil
}

// clearPractice walks a new practice score through verified to cleared. A
// practice score is never flagged; masking only marks it.
func clearPractice(s *sharedtypes.Score) error {
	steps := []struct{ from, to sharedtypes.ScoreStatus }{
		{sharedtypes.ScoreStatusNew, sharedtypes.ScoreStatusVerified},
		{sharedtypes.ScoreStatusVerified, sharedtypes.ScoreStatusCleared},
	}
	for _, step := range steps {
		if s.Status != step.from {
			continue
		}
		status, err := ScoreMachine.Transition(s.ID, s.Status, step.to)
		if err != nil {
			return err
		}
		s.Status = status
	}
	return nil
}
