package automaton

import (
	"fmt"

	"github.com/pkg/errors"
)

// StructuralError reports that a RabinAutomaton violates one of
// spec.md §3's invariants: a transition, an initial state or a marked
// state referencing something outside the declared state/event sets.
// It is always fatal — spec.md §7 classifies it as the one error
// taxonomy entry that must fail immediately rather than degrade to a
// partial result.
type StructuralError struct {
	cause error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error: %v", e.cause)
}

func (e *StructuralError) Unwrap() error {
	return e.cause
}

func newStructuralError(format string, args ...interface{}) *StructuralError {
	return &StructuralError{cause: errors.Errorf(format, args...)}
}

// Validate checks the invariants spec.md §3 requires of a
// RabinAutomaton: every transition references states and an event
// already known to the automaton, and initial/marked states are
// subsets of the state set (guaranteed here by construction, but
// re-checked in case a RabinAutomaton was assembled by hand rather than
// through AddState/AddTransition).
func (g *RabinAutomaton) Validate() error {
	for _, t := range g.trans {
		if !g.HasState(t.From) {
			return newStructuralError("transition %v references unknown source state %v", t, t.From)
		}
		if !g.HasState(t.To) {
			return newStructuralError("transition %v references unknown target state %v", t, t.To)
		}
		if !g.HasEvent(t.Event) {
			return newStructuralError("transition %v references unknown event %v", t, t.Event)
		}
	}
	for st := range g.initial {
		if !g.HasState(st) {
			return newStructuralError("initial state %v is not a member of the state set", st)
		}
	}
	for st := range g.marked {
		if !g.HasState(st) {
			return newStructuralError("marked state %v is not a member of the state set", st)
		}
	}
	for _, pair := range g.Acceptance.Pairs {
		for st := range pair.R {
			if !g.HasState(st) {
				return newStructuralError("Rabin pair %q R-set references unknown state %v", pair.Name, st)
			}
		}
		for st := range pair.I {
			if !g.HasState(st) {
				return newStructuralError("Rabin pair %q I-set references unknown state %v", pair.Name, st)
			}
		}
	}
	return nil
}
