// Package rounddomain holds the contest workflow rules: the transition
// tables, session building, draws, advancement and finalization. Nothing in
// it performs I/O.
package rounddomain

import (
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

var RoundMachine = lifecycle.NewMachine("round",
	[]sharedtypes.RoundStatus{
		sharedtypes.RoundStatusNew,
		sharedtypes.RoundStatusDrawn,
		sharedtypes.RoundStatusValidated,
		sharedtypes.RoundStatusStarted,
		sharedtypes.RoundStatusFinished,
		sharedtypes.RoundStatusPublished,
	},
	map[sharedtypes.RoundStatus][]sharedtypes.RoundStatus{
		sharedtypes.RoundStatusNew:       {sharedtypes.RoundStatusDrawn},
		sharedtypes.RoundStatusDrawn:     {sharedtypes.RoundStatusValidated},
		sharedtypes.RoundStatusValidated: {sharedtypes.RoundStatusStarted},
		sharedtypes.RoundStatusStarted:   {sharedtypes.RoundStatusFinished},
		sharedtypes.RoundStatusFinished:  {sharedtypes.RoundStatusPublished},
	},
)

// AppearanceMachine leaves disqualified and scratched out of the normal
// table; only an administrative override reaches them.
var AppearanceMachine = lifecycle.NewMachine("appearance",
	[]sharedtypes.AppearanceStatus{
		sharedtypes.AppearanceStatusNew,
		sharedtypes.AppearanceStatusBuilt,
		sharedtypes.AppearanceStatusStarted,
		sharedtypes.AppearanceStatusFinished,
		sharedtypes.AppearanceStatusVariance,
		sharedtypes.AppearanceStatusVerified,
		sharedtypes.AppearanceStatusAdvanced,
		sharedtypes.AppearanceStatusDisqualified,
		sharedtypes.AppearanceStatusScratched,
	},
	map[sharedtypes.AppearanceStatus][]sharedtypes.AppearanceStatus{
		sharedtypes.AppearanceStatusNew:      {sharedtypes.AppearanceStatusBuilt},
		sharedtypes.AppearanceStatusBuilt:    {sharedtypes.AppearanceStatusStarted},
		sharedtypes.AppearanceStatusStarted:  {sharedtypes.AppearanceStatusFinished},
		sharedtypes.AppearanceStatusFinished: {sharedtypes.AppearanceStatusVariance, sharedtypes.AppearanceStatusVerified},
		sharedtypes.AppearanceStatusVariance: {sharedtypes.AppearanceStatusVerified},
		sharedtypes.AppearanceStatusVerified: {sharedtypes.AppearanceStatusAdvanced},
	},
)

var SessionMachine = lifecycle.NewMachine("session",
	[]sharedtypes.SessionStatus{
		sharedtypes.SessionStatusNew,
		sharedtypes.SessionStatusOpened,
		sharedtypes.SessionStatusClosed,
		sharedtypes.SessionStatusValidated,
		sharedtypes.SessionStatusStarted,
		sharedtypes.SessionStatusFinished,
		sharedtypes.SessionStatusPublished,
	},
	map[sharedtypes.SessionStatus][]sharedtypes.SessionStatus{
		sharedtypes.SessionStatusNew:       {sharedtypes.SessionStatusOpened},
		sharedtypes.SessionStatusOpened:    {sharedtypes.SessionStatusClosed},
		sharedtypes.SessionStatusClosed:    {sharedtypes.SessionStatusValidated},
		sharedtypes.SessionStatusValidated: {sharedtypes.SessionStatusStarted},
		sharedtypes.SessionStatusStarted:   {sharedtypes.SessionStatusFinished},
		sharedtypes.SessionStatusFinished:  {sharedtypes.SessionStatusPublished},
	},
)

var ConventionMachine = lifecycle.NewMachine("convention",
	[]sharedtypes.ConventionStatus{
		sharedtypes.ConventionStatusNew,
		sharedtypes.ConventionStatusListed,
		sharedtypes.ConventionStatusOpened,
		sharedtypes.ConventionStatusStarted,
		sharedtypes.ConventionStatusFinished,
	},
	map[sharedtypes.ConventionStatus][]sharedtypes.ConventionStatus{
		sharedtypes.ConventionStatusNew:     {sharedtypes.ConventionStatusListed},
		sharedtypes.ConventionStatusListed:  {sharedtypes.ConventionStatusOpened},
		sharedtypes.ConventionStatusOpened:  {sharedtypes.ConventionStatusStarted},
		sharedtypes.ConventionStatusStarted: {sharedtypes.ConventionStatusFinished},
	},
)

var EntryMachine = lifecycle.NewMachine("entry",
	[]sharedtypes.EntryStatus{
		sharedtypes.EntryStatusNew,
		sharedtypes.EntryStatusStarted,
		sharedtypes.EntryStatusFinished,
		sharedtypes.EntryStatusPublished,
		sharedtypes.EntryStatusScratched,
		sharedtypes.EntryStatusDisqualified,
	},
	map[sharedtypes.EntryStatus][]sharedtypes.EntryStatus{
		sharedtypes.EntryStatusNew:      {sharedtypes.EntryStatusStarted},
		sharedtypes.EntryStatusStarted:  {sharedtypes.EntryStatusFinished},
		sharedtypes.EntryStatusFinished: {sharedtypes.EntryStatusPublished},
	},
)

// TransitionConvention moves a convention along its lifecycle.
func TransitionConvention(c *sharedtypes.Convention, to sharedtypes.ConventionStatus) error {
	status, err := ConventionMachine.Transition(c.ID, c.Status, to)
	if err != nil {
		return err
	}
	c.Status = status
	return nil
}
