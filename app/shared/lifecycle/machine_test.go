package lifecycle

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type light string

const (
	red    light = "red"
	green  light = "green"
	yellow light = "yellow"
)

func testMachine() Machine[light] {
	return NewMachine("light", []light{red, green, yellow}, map[light][]light{
		red:    {green},
		green:  {yellow},
		yellow: {red},
	})
}

func TestMachineTransition(t *testing.T) {
	m := testMachine()
	id := uuid.New()

	tests := []struct {
		name     string
		from, to light
		wantErr  bool
	}{
		{name: "forward", from: red, to: green},
		{name: "skip is rejected", from: red, to: yellow, wantErr: true},
		{name: "backward is rejected", from: green, to: red, wantErr: true},
		{name: "self loop is rejected", from: green, to: green, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Transition(id, tt.from, tt.to)
			if tt.wantErr {
				var ste *StateTransitionError
				if !errors.As(err, &ste) {
					t.Fatalf("expected StateTransitionError, got %v", err)
				}
				if !errors.Is(err, ErrStateTransition) {
					t.Errorf("expected errors.Is to match ErrStateTransition")
				}
				if got != tt.from {
					t.Errorf("rejected transition must keep state %q, got %q", tt.from, got)
				}
				if ste.ID != id.String() {
					t.Errorf("expected id %s, got %s", id, ste.ID)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.to {
				t.Errorf("expected %q, got %q", tt.to, got)
			}
		})
	}
}

func TestMachineForce(t *testing.T) {
	m := testMachine()
	id := uuid.New()

	got, err := m.Force(id, green, red)
	if err != nil || got != red {
		t.Fatalf("expected forced move to red, got %q, %v", got, err)
	}
	if _, err := m.Force(id, green, light("blue")); err == nil {
		t.Fatal("expected unknown state to be rejected")
	}
}

func TestNewMachinePanicsOnUnknownStates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown target")
		}
	}()
	NewMachine("light", []light{red}, map[light][]light{red: {green}})
}

func TestBlockedMessage(t *testing.T) {
	round, child := uuid.New(), uuid.New()
	err := Blocked("round", round, "started", "finished", "appearance not verified", "appearance", child)
	want := "round " + round.String() + `: cannot move from "started" to "finished": appearance not verified (blocked by appearance ` + child.String() + ")"
	if err.Error() != want {
		t.Errorf("unexpected message:\n got: %s\nwant: %s", err.Error(), want)
	}
}
