package scoredb

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Score is one judge's points for one song. (song_id, panelist_id) is unique.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:sc"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	SongID     uuid.UUID `bun:"song_id,notnull,type:uuid,unique:scores_song_panelist"`
	PanelistID uuid.UUID `bun:"panelist_id,notnull,type:uuid,unique:scores_song_panelist"`
	Category   string    `bun:"category,notnull"`
	Kind       string    `bun:"kind,notnull"`
	Points     int       `bun:"points,notnull"`
	Penalty    int       `bun:"penalty,notnull,default:0"`
	Original   *int      `bun:"original"`
	IsFlagged  bool      `bun:"is_flagged,notnull,default:false"`
	Status     string    `bun:"status,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ToShared converts the row into the domain score.
func (s Score) ToShared() sharedtypes.Score {
	return sharedtypes.Score{
		ID:         sharedtypes.ScoreID{UUID: s.ID},
		SongID:     sharedtypes.SongID{UUID: s.SongID},
		PanelistID: sharedtypes.PanelistID{UUID: s.PanelistID},
		Category:   sharedtypes.Category(s.Category),
		Kind:       sharedtypes.ScoreKind(s.Kind),
		Points:     s.Points,
		Penalty:    s.Penalty,
		Original:   s.Original,
		IsFlagged:  s.IsFlagged,
		Status:     sharedtypes.ScoreStatus(s.Status),
	}
}

// FromShared builds a row from a domain score.
func FromShared(s sharedtypes.Score) Score {
	return Score{
		ID:         s.ID.UUID,
		SongID:     s.SongID.UUID,
		PanelistID: s.PanelistID.UUID,
		Category:   string(s.Category),
		Kind:       string(s.Kind),
		Points:     s.Points,
		Penalty:    s.Penalty,
		Original:   s.Original,
		IsFlagged:  s.IsFlagged,
		Status:     string(s.Status),
	}
}

func toShared(rows []Score) []sharedtypes.Score {
	out := make([]sharedtypes.Score, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToShared())
	}
	return out
}
