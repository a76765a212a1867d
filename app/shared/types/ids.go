package sharedtypes

import "github.com/google/uuid"

// Identifiers embed uuid.UUID so they keep its text, JSON and SQL encodings
// while staying distinct at compile time.

type ConventionID struct{ uuid.UUID }

type SessionID struct{ uuid.UUID }

type RoundID struct{ uuid.UUID }

type AppearanceID struct{ uuid.UUID }

type SongID struct{ uuid.UUID }

type ScoreID struct{ uuid.UUID }

type PanelistID struct{ uuid.UUID }

type CompetitorID struct{ uuid.UUID }

type ContestID struct{ uuid.UUID }

type EntryID struct{ uuid.UUID }

type AwardID struct{ uuid.UUID }

type OutcomeID struct{ uuid.UUID }

func NewConventionID() ConventionID { return ConventionID{uuid.New()} }
func NewSessionID() SessionID       { return SessionID{uuid.New()} }
func NewRoundID() RoundID           { return RoundID{uuid.New()} }
func NewAppearanceID() AppearanceID { return AppearanceID{uuid.New()} }
func NewSongID() SongID             { return SongID{uuid.New()} }
func NewScoreID() ScoreID           { return ScoreID{uuid.New()} }
func NewPanelistID() PanelistID     { return PanelistID{uuid.New()} }
func NewCompetitorID() CompetitorID { return CompetitorID{uuid.New()} }
func NewContestID() ContestID       { return ContestID{uuid.New()} }
func NewEntryID() EntryID           { return EntryID{uuid.New()} }
func NewAwardID() AwardID           { return AwardID{uuid.New()} }
func NewOutcomeID() OutcomeID       { return OutcomeID{uuid.New()} }

// IsZero reports whether the identifier was never assigned.
func (id SessionID) IsZero() bool    { return id.UUID == uuid.Nil }
func (id RoundID) IsZero() bool      { return id.UUID == uuid.Nil }
func (id AppearanceID) IsZero() bool { return id.UUID == uuid.Nil }
func (id SongID) IsZero() bool       { return id.UUID == uuid.Nil }
func (id ScoreID) IsZero() bool      { return id.UUID == uuid.Nil }
func (id ContestID) IsZero() bool    { return id.UUID == uuid.Nil }
func (id AwardID) IsZero() bool      { return id.UUID == uuid.Nil }
func (id CompetitorID) IsZero() bool { return id.UUID == uuid.Nil }
