// Package lifecycle holds the explicit transition tables that govern every
// status field in the contest aggregate.
package lifecycle

import (
	"fmt"
	"slices"
)

// Machine is a forward-only transition table. Privileged corrections go
// through Force, never through Transition.
type Machine[S ~string] struct {
	entity string
	states []S
	next   map[S][]S
}

// NewMachine builds a table for entity. Every state that appears as a source
// or target must also be listed in states.
func NewMachine[S ~string](entity string, states []S, next map[S][]S) Machine[S] {
	for from, targets := range next {
		if !slices.Contains(states, from) {
			panic(fmt.Sprintf("lifecycle: %s: unknown source state %q", entity, from))
		}
		for _, to := range targets {
			if !slices.Contains(states, to) {
				panic(fmt.Sprintf("lifecycle: %s: unknown target state %q", entity, to))
			}
		}
	}
	return Machine[S]{entity: entity, states: states, next: next}
}

// Entity names the kind of record the machine governs.
func (m Machine[S]) Entity() string { return m.entity }

// Known reports whether s is a state of this machine.
func (m Machine[S]) Known(s S) bool { return slices.Contains(m.states, s) }

// Allowed reports whether from -> to is a normal forward transition.
func (m Machine[S]) Allowed(from, to S) bool {
	return slices.Contains(m.next[from], to)
}

// Transition validates a normal transition and returns the target state.
func (m Machine[S]) Transition(id fmt.Stringer, from, to S) (S, error) {
	if !m.Allowed(from, to) {
		return from, &StateTransitionError{
			Entity: m.entity,
			ID:     id.String(),
			From:   string(from),
			To:     string(to),
			Reason: "transition not allowed",
		}
	}
	return to, nil
}

// Force validates only that the target exists. It backs administrative
// overrides and must not be reachable from the normal workflow.
func (m Machine[S]) Force(id fmt.Stringer, from, to S) (S, error) {
	if !m.Known(to) {
		return from, &StateTransitionError{
			Entity: m.entity,
			ID:     id.String(),
			From:   string(from),
			To:     string(to),
			Reason: "unknown state",
		}
	}
	return to, nil
}
