package roundhandlers

import (
	"context"
	"sync"

	roundservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// FakeRoundService is a programmable stub for roundservice.Service. Calls
// without a programmed func return an empty result.
type FakeRoundService struct {
	mu    sync.Mutex
	calls []string

	CreateConventionFunc     func(ctx context.Context, req roundservice.CreateConventionRequest) (results.OperationResult[sharedtypes.Convention, error], error)
	TransitionConventionFunc func(ctx context.Context, id sharedtypes.ConventionID, to sharedtypes.ConventionStatus) (results.OperationResult[roundservice.ConventionTransition, error], error)
	CreateSessionFunc        func(ctx context.Context, req rounddomain.NewSessionParams) (results.OperationResult[sharedtypes.Session, error], error)
	AddContestFunc           func(ctx context.Context, sessionID sharedtypes.SessionID, award sharedtypes.Award) (results.OperationResult[sharedtypes.Contest, error], error)
	RegisterCompetitorFunc   func(ctx context.Context, sessionID sharedtypes.SessionID, name string, contests []sharedtypes.ContestID) (results.OperationResult[sharedtypes.Competitor, error], error)
	AssignPanelistFunc       func(ctx context.Context, req roundservice.AssignPanelistRequest) (results.OperationResult[sharedtypes.Panelist, error], error)
	ReleasePanelistFunc      func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.PanelistID) (results.OperationResult[sharedtypes.Panelist, error], error)
	OpenSessionFunc          func(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error)
	CloseSessionFunc         func(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error)
	ValidateSessionFunc      func(ctx context.Context, id sharedtypes.SessionID, numSongs int) (results.OperationResult[roundservice.SessionTransition, error], error)
	StartSessionFunc         func(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error)
	FinishSessionFunc        func(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error)
	PublishSessionFunc       func(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error)
	DrawRoundFunc            func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error)
	ValidateRoundFunc        func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error)
	StartRoundFunc           func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error)
	FinishRoundFunc          func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error)
	PublishRoundFunc         func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error)
	StartAppearanceFunc      func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[roundservice.AppearanceTransition, error], error)
	FinishAppearanceFunc     func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[roundservice.AppearanceTransition, error], error)
	VerifyAppearanceFunc     func(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[roundservice.AppearanceTransition, error], error)
	OverrideFunc             func(ctx context.Context, req roundservice.OverrideRequest) (results.OperationResult[rounddomain.Override, error], error)
}

func (f *FakeRoundService) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

// Calls returns the service methods invoked so far.
func (f *FakeRoundService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeRoundService) CreateConvention(ctx context.Context, req roundservice.CreateConventionRequest) (results.OperationResult[sharedtypes.Convention, error], error) {
	f.record("CreateConvention")
	if f.CreateConventionFunc != nil {
		return f.CreateConventionFunc(ctx, req)
	}
	return results.OperationResult[sharedtypes.Convention, error]{}, nil
}

func (f *FakeRoundService) TransitionConvention(ctx context.Context, id sharedtypes.ConventionID, to sharedtypes.ConventionStatus) (results.OperationResult[roundservice.ConventionTransition, error], error) {
	f.record("TransitionConvention")
	if f.TransitionConventionFunc != nil {
		return f.TransitionConventionFunc(ctx, id, to)
	}
	return results.OperationResult[roundservice.ConventionTransition, error]{}, nil
}

func (f *FakeRoundService) CreateSession(ctx context.Context, req rounddomain.NewSessionParams) (results.OperationResult[sharedtypes.Session, error], error) {
	f.record("CreateSession")
	if f.CreateSessionFunc != nil {
		return f.CreateSessionFunc(ctx, req)
	}
	return results.OperationResult[sharedtypes.Session, error]{}, nil
}

func (f *FakeRoundService) AddContest(ctx context.Context, sessionID sharedtypes.SessionID, award sharedtypes.Award) (results.OperationResult[sharedtypes.Contest, error], error) {
	f.record("AddContest")
	if f.AddContestFunc != nil {
		return f.AddContestFunc(ctx, sessionID, award)
	}
	return results.OperationResult[sharedtypes.Contest, error]{}, nil
}

func (f *FakeRoundService) RegisterCompetitor(ctx context.Context, sessionID sharedtypes.SessionID, name string, contests []sharedtypes.ContestID) (results.OperationResult[sharedtypes.Competitor, error], error) {
	f.record("RegisterCompetitor")
	if f.RegisterCompetitorFunc != nil {
		return f.RegisterCompetitorFunc(ctx, sessionID, name, contests)
	}
	return results.OperationResult[sharedtypes.Competitor, error]{}, nil
}

func (f *FakeRoundService) AssignPanelist(ctx context.Context, req roundservice.AssignPanelistRequest) (results.OperationResult[sharedtypes.Panelist, error], error) {
	f.record("AssignPanelist")
	if f.AssignPanelistFunc != nil {
		return f.AssignPanelistFunc(ctx, req)
	}
	return results.OperationResult[sharedtypes.Panelist, error]{}, nil
}

func (f *FakeRoundService) ReleasePanelist(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.PanelistID) (results.OperationResult[sharedtypes.Panelist, error], error) {
	f.record("ReleasePanelist")
	if f.ReleasePanelistFunc != nil {
		return f.ReleasePanelistFunc(ctx, sessionID, id)
	}
	return results.OperationResult[sharedtypes.Panelist, error]{}, nil
}

func (f *FakeRoundService) OpenSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error) {
	f.record("OpenSession")
	if f.OpenSessionFunc != nil {
		return f.OpenSessionFunc(ctx, id)
	}
	return results.OperationResult[roundservice.SessionTransition, error]{}, nil
}

func (f *FakeRoundService) CloseSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error) {
	f.record("CloseSession")
	if f.CloseSessionFunc != nil {
		return f.CloseSessionFunc(ctx, id)
	}
	return results.OperationResult[roundservice.SessionTransition, error]{}, nil
}

func (f *FakeRoundService) ValidateSession(ctx context.Context, id sharedtypes.SessionID, numSongs int) (results.OperationResult[roundservice.SessionTransition, error], error) {
	f.record("ValidateSession")
	if f.ValidateSessionFunc != nil {
		return f.ValidateSessionFunc(ctx, id, numSongs)
	}
	return results.OperationResult[roundservice.SessionTransition, error]{}, nil
}

func (f *FakeRoundService) StartSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error) {
	f.record("StartSession")
	if f.StartSessionFunc != nil {
		return f.StartSessionFunc(ctx, id)
	}
	return results.OperationResult[roundservice.SessionTransition, error]{}, nil
}

func (f *FakeRoundService) FinishSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error) {
	f.record("FinishSession")
	if f.FinishSessionFunc != nil {
		return f.FinishSessionFunc(ctx, id)
	}
	return results.OperationResult[roundservice.SessionTransition, error]{}, nil
}

func (f *FakeRoundService) PublishSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[roundservice.SessionTransition, error], error) {
	f.record("PublishSession")
	if f.PublishSessionFunc != nil {
		return f.PublishSessionFunc(ctx, id)
	}
	return results.OperationResult[roundservice.SessionTransition, error]{}, nil
}

func (f *FakeRoundService) DrawRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error) {
	f.record("DrawRound")
	if f.DrawRoundFunc != nil {
		return f.DrawRoundFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.RoundTransition, error]{}, nil
}

func (f *FakeRoundService) ValidateRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error) {
	f.record("ValidateRound")
	if f.ValidateRoundFunc != nil {
		return f.ValidateRoundFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.RoundTransition, error]{}, nil
}

func (f *FakeRoundService) StartRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error) {
	f.record("StartRound")
	if f.StartRoundFunc != nil {
		return f.StartRoundFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.RoundTransition, error]{}, nil
}

func (f *FakeRoundService) FinishRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error) {
	f.record("FinishRound")
	if f.FinishRoundFunc != nil {
		return f.FinishRoundFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.RoundTransition, error]{}, nil
}

func (f *FakeRoundService) PublishRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[roundservice.RoundTransition, error], error) {
	f.record("PublishRound")
	if f.PublishRoundFunc != nil {
		return f.PublishRoundFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.RoundTransition, error]{}, nil
}

func (f *FakeRoundService) StartAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[roundservice.AppearanceTransition, error], error) {
	f.record("StartAppearance")
	if f.StartAppearanceFunc != nil {
		return f.StartAppearanceFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.AppearanceTransition, error]{}, nil
}

func (f *FakeRoundService) FinishAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[roundservice.AppearanceTransition, error], error) {
	f.record("FinishAppearance")
	if f.FinishAppearanceFunc != nil {
		return f.FinishAppearanceFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.AppearanceTransition, error]{}, nil
}

func (f *FakeRoundService) VerifyAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[roundservice.AppearanceTransition, error], error) {
	f.record("VerifyAppearance")
	if f.VerifyAppearanceFunc != nil {
		return f.VerifyAppearanceFunc(ctx, sessionID, id)
	}
	return results.OperationResult[roundservice.AppearanceTransition, error]{}, nil
}

func (f *FakeRoundService) Override(ctx context.Context, req roundservice.OverrideRequest) (results.OperationResult[rounddomain.Override, error], error) {
	f.record("Override")
	if f.OverrideFunc != nil {
		return f.OverrideFunc(ctx, req)
	}
	return results.OperationResult[rounddomain.Override, error]{}, nil
}

var _ roundservice.Service = (*FakeRoundService)(nil)
