package rounddb

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

// NewRepository creates a new round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateConvention(ctx context.Context, db bun.IDB, c sharedtypes.Convention) error {
	db = r.resolveDB(db)
	row := ConventionFromShared(c)
	if _, err := db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create convention %s: %w", c.ID, err)
	}
	return nil
}

func (r *Impl) GetConvention(ctx context.Context, db bun.IDB, id sharedtypes.ConventionID) (*sharedtypes.Convention, error) {
	db = r.resolveDB(db)
	row := new(Convention)
	err := db.NewSelect().Model(row).Where("cv.id = ?", id.UUID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get convention %s: %w", id, err)
	}
	c := row.ToShared()
	return &c, nil
}

func (r *Impl) UpdateConvention(ctx context.Context, db bun.IDB, c sharedtypes.Convention) error {
	db = r.resolveDB(db)
	row := ConventionFromShared(c)
	row.UpdatedAt = time.Now()
	res, err := db.NewUpdate().
		Model(&row).
		Column("name", "season", "year", "level", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update convention %s: %w", c.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) LockSession(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) error {
	db = r.resolveDB(db)
	if _, err := db.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", id.String()); err != nil {
		return fmt.Errorf("failed to lock session %s: %w", id, err)
	}
	return nil
}

func (r *Impl) LoadSession(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) (*sharedtypes.Session, error) {
	db = r.resolveDB(db)
	var in rows
	err := db.NewSelect().Model(&in.session).Where("ss.id = ?", id.UUID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	children := []struct {
		name  string
		model any
		order string
	}{
		{"contests", &in.contests, "position ASC"},
		{"competitors", &in.competitors, "position ASC"},
		{"entries", &in.entries, "position ASC"},
		{"rounds", &in.rounds, "num ASC"},
		{"outcomes", &in.outcomes, "num ASC"},
		{"panelists", &in.panelists, "num ASC"},
		{"appearances", &in.appearances, "num ASC"},
		{"songs", &in.songs, "num ASC"},
	}
	for _, c := range children {
		if err := db.NewSelect().
			Model(c.model).
			Where("?TableAlias.session_id = ?", id.UUID).
			OrderExpr(c.order).
			Scan(ctx); err != nil {
			return nil, fmt.Errorf("failed to load %s for session %s: %w", c.name, id, err)
		}
	}
	return assemble(in), nil
}

func (r *Impl) SaveSession(ctx context.Context, db bun.IDB, s *sharedtypes.Session) error {
	db = r.resolveDB(db)
	out := flatten(s)
	out.session.UpdatedAt = time.Now()
	sid := s.ID.UUID

	if _, err := db.NewInsert().
		Model(&out.session).
		On("CONFLICT (id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("num_rounds = EXCLUDED.num_rounds").
		Set("spots = EXCLUDED.spots").
		Set("primary_contest_id = EXCLUDED.primary_contest_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}

	// Parents before children so foreign keys hold; deletes run in reverse.
	if err := upsert(ctx, db, "contests", out.contests); err != nil {
		return err
	}
	if err := upsert(ctx, db, "competitors", out.competitors); err != nil {
		return err
	}
	if err := upsert(ctx, db, "entries", out.entries); err != nil {
		return err
	}
	if err := upsert(ctx, db, "rounds", out.rounds); err != nil {
		return err
	}
	if err := upsert(ctx, db, "outcomes", out.outcomes); err != nil {
		return err
	}
	if err := upsert(ctx, db, "panelists", out.panelists); err != nil {
		return err
	}
	if err := upsert(ctx, db, "appearances", out.appearances); err != nil {
		return err
	}
	if err := upsert(ctx, db, "songs", out.songs); err != nil {
		return err
	}

	prune := []struct {
		model any
		ids   []uuid.UUID
	}{
		{(*Song)(nil), ids(out.songs, func(x Song) uuid.UUID { return x.ID })},
		{(*Appearance)(nil), ids(out.appearances, func(x Appearance) uuid.UUID { return x.ID })},
		{(*Panelist)(nil), ids(out.panelists, func(x Panelist) uuid.UUID { return x.ID })},
		{(*Outcome)(nil), ids(out.outcomes, func(x Outcome) uuid.UUID { return x.ID })},
		{(*Round)(nil), ids(out.rounds, func(x Round) uuid.UUID { return x.ID })},
		{(*Entry)(nil), ids(out.entries, func(x Entry) uuid.UUID { return x.ID })},
		{(*Competitor)(nil), ids(out.competitors, func(x Competitor) uuid.UUID { return x.ID })},
		{(*Contest)(nil), ids(out.contests, func(x Contest) uuid.UUID { return x.ID })},
	}
	for _, p := range prune {
		q := db.NewDelete().Model(p.model).Where("?TableAlias.session_id = ?", sid)
		if len(p.ids) > 0 {
			q = q.Where("?TableAlias.id NOT IN (?)", bun.In(p.ids))
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to prune session %s: %w", s.ID, err)
		}
	}
	return nil
}

// upsert writes every column of rows, replacing existing rows by id.
func upsert[T any](ctx context.Context, db bun.IDB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to save %s: %w", table, err)
	}
	return nil
}

func ids[T any](rows []T, id func(T) uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}

func (r *Impl) ListSessions(ctx context.Context, db bun.IDB, conventionID sharedtypes.ConventionID) ([]sharedtypes.SessionID, error) {
	db = r.resolveDB(db)
	var raw []uuid.UUID
	err := db.NewSelect().
		Model((*Session)(nil)).
		ColumnExpr("ss.id").
		Where("ss.convention_id = ?", conventionID.UUID).
		Order("ss.created_at ASC").
		Scan(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for convention %s: %w", conventionID, err)
	}
	out := make([]sharedtypes.SessionID, 0, len(raw))
	for _, id := range raw {
		out = append(out, sharedtypes.SessionID{UUID: id})
	}
	return out, nil
}

func (r *Impl) SessionForRound(ctx context.Context, db bun.IDB, id sharedtypes.RoundID) (sharedtypes.SessionID, error) {
	sid, err := r.sessionOf(ctx, db, (*Round)(nil), id.UUID)
	if err != nil {
		return sharedtypes.SessionID{}, fmt.Errorf("round %s: %w", id, err)
	}
	return sid, nil
}

func (r *Impl) SessionForContest(ctx context.Context, db bun.IDB, id sharedtypes.ContestID) (sharedtypes.SessionID, error) {
	sid, err := r.sessionOf(ctx, db, (*Contest)(nil), id.UUID)
	if err != nil {
		return sharedtypes.SessionID{}, fmt.Errorf("contest %s: %w", id, err)
	}
	return sid, nil
}

func (r *Impl) sessionOf(ctx context.Context, db bun.IDB, model any, id uuid.UUID) (sharedtypes.SessionID, error) {
	db = r.resolveDB(db)
	var sid uuid.UUID
	err := db.NewSelect().
		Model(model).
		ColumnExpr("?TableAlias.session_id").
		Where("?TableAlias.id = ?", id).
		Scan(ctx, &sid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sharedtypes.SessionID{}, ErrNotFound
		}
		return sharedtypes.SessionID{}, err
	}
	return sharedtypes.SessionID{UUID: sid}, nil
}

func (r *Impl) GetSongContext(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) (*SongContext, error) {
	db = r.resolveDB(db)
	var row struct {
		SongID           uuid.UUID `bun:"song_id"`
		AppearanceID     uuid.UUID `bun:"appearance_id"`
		RoundID          uuid.UUID `bun:"round_id"`
		SessionID        uuid.UUID `bun:"session_id"`
		AppearanceStatus string    `bun:"appearance_status"`
	}
	err := db.NewSelect().
		TableExpr("songs AS s").
		ColumnExpr("s.id AS song_id").
		ColumnExpr("ap.id AS appearance_id").
		ColumnExpr("ap.round_id AS round_id").
		ColumnExpr("ap.session_id AS session_id").
		ColumnExpr("ap.status AS appearance_status").
		Join("JOIN appearances AS ap ON ap.id = s.appearance_id").
		Where("s.id = ?", songID.UUID).
		Scan(ctx, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get context for song %s: %w", songID, err)
	}

	var panelists []Panelist
	if err := db.NewSelect().
		Model(&panelists).
		Where("pn.round_id = ?", row.RoundID).
		Order("pn.num ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list panelists for round %s: %w", row.RoundID, err)
	}

	sc := &SongContext{
		SongID:           sharedtypes.SongID{UUID: row.SongID},
		AppearanceID:     sharedtypes.AppearanceID{UUID: row.AppearanceID},
		RoundID:          sharedtypes.RoundID{UUID: row.RoundID},
		SessionID:        sharedtypes.SessionID{UUID: row.SessionID},
		AppearanceStatus: sharedtypes.AppearanceStatus(row.AppearanceStatus),
	}
	for _, p := range panelists {
		sc.Panelists = append(sc.Panelists, p.ToShared())
	}
	return sc, nil
}
