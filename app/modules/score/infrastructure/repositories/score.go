package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*sharedtypes.Score, error) {
	db = r.resolveDB(db)
	row := new(Score)
	err := db.NewSelect().
		Model(row).
		Where("sc.id = ?", id.UUID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score %s: %w", id, err)
	}
	s := row.ToShared()
	return &s, nil
}

func (r *Impl) GetScoreByPanelist(ctx context.Context, db bun.IDB, songID sharedtypes.SongID, panelistID sharedtypes.PanelistID) (*sharedtypes.Score, error) {
	db = r.resolveDB(db)
	row := new(Score)
	err := db.NewSelect().
		Model(row).
		Where("sc.song_id = ?", songID.UUID).
		Where("sc.panelist_id = ?", panelistID.UUID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score for song %s panelist %s: %w", songID, panelistID, err)
	}
	s := row.ToShared()
	return &s, nil
}

func (r *Impl) UpsertScore(ctx context.Context, db bun.IDB, score sharedtypes.Score) error {
	db = r.resolveDB(db)
	row := FromShared(score)
	row.UpdatedAt = time.Now()
	res, err := db.NewInsert().
		Model(&row).
		On("CONFLICT (song_id, panelist_id) DO UPDATE").
		Set("points = EXCLUDED.points").
		Set("penalty = EXCLUDED.penalty").
		Set("updated_at = EXCLUDED.updated_at").
		Where("sc.status = ?", sharedtypes.ScoreStatusNew).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert score %s: %w", score.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) UpdateScores(ctx context.Context, db bun.IDB, scores []sharedtypes.Score) error {
	if len(scores) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	now := time.Now()
	rows := make([]Score, 0, len(scores))
	for _, s := range scores {
		row := FromShared(s)
		row.UpdatedAt = now
		rows = append(rows, row)
	}
	res, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("points = EXCLUDED.points").
		Set("original = EXCLUDED.original").
		Set("is_flagged = EXCLUDED.is_flagged").
		Set("status = EXCLUDED.status").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update %d scores: %w", len(scores), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) ListScoresBySong(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) ([]sharedtypes.Score, error) {
	db = r.resolveDB(db)
	var rows []Score
	err := db.NewSelect().
		Model(&rows).
		Where("sc.song_id = ?", songID.UUID).
		Order("sc.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for song %s: %w", songID, err)
	}
	return toShared(rows), nil
}

func (r *Impl) ListScoresByAppearances(ctx context.Context, db bun.IDB, ids []sharedtypes.AppearanceID) ([]sharedtypes.Score, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.UUID)
	}
	var rows []Score
	err := db.NewSelect().
		Model(&rows).
		Join("JOIN songs AS s ON s.id = sc.song_id").
		Where("s.appearance_id IN (?)", bun.In(raw)).
		Order("sc.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for %d appearances: %w", len(ids), err)
	}
	return toShared(rows), nil
}
