package automaton

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// State is an opaque state identifier.
type State uint32

const StateNil = State(0)

func (s State) String() string {
	return fmt.Sprintf("s%d", uint32(s))
}

func (s State) IsNil() bool {
	return s == StateNil
}

// StateTable is a bidirectional ID/name table for states, analogous to
// EventTable. A state's name is optional; states with no registered
// name still print via State.String().
type StateTable struct {
	text2St   map[string]State
	st2Text   map[State]string
	nextState State
}

func NewStateTable() *StateTable {
	return &StateTable{
		text2St:   map[string]State{},
		st2Text:   map[State]string{},
		nextState: 1,
	}
}

func (t *StateTable) Writer() *StateTableWriter {
	return &StateTableWriter{t}
}

func (t *StateTable) Reader() *StateTableReader {
	return &StateTableReader{t}
}

type StateTableWriter struct {
	*StateTable
}

type StateTableReader struct {
	*StateTable
}

// New allocates a fresh, unnamed state.
func (w *StateTableWriter) New() State {
	s := w.nextState
	w.nextState++
	return s
}

// Named allocates a fresh state and records its printable name. Unlike
// events, state names are not deduplicated by name: a RabinAutomaton is
// small enough in this domain that callers are expected to keep their
// own name uniqueness invariants (e.g. RabinProduct's "q1|q2" naming).
func (w *StateTableWriter) Named(name string) State {
	s := w.New()
	w.st2Text[s] = norm.NFC.String(name)
	return s
}

// SetName attaches or overwrites a name after the state has already
// been allocated. The name is Unicode-normalised (NFC) first, the way
// the teacher's fuzzy-search index normalises every string it indexes
// or queries with before comparing — state names coming from a hand-
// edited YAML document deserve the same treatment so that two
// differently-composed spellings of the same name are not silently
// treated as two different states.
func (w *StateTableWriter) SetName(s State, name string) {
	w.st2Text[s] = norm.NFC.String(name)
}

func (r *StateTableReader) Name(s State) (string, bool) {
	name, ok := r.st2Text[s]
	return name, ok
}

// States returns every state named or allocated through this table, in
// ascending ID order.
func (r *StateTableReader) States() []State {
	sts := make([]State, 0, r.nextState.Int()-1)
	for s := State(1); s < r.nextState; s++ {
		sts = append(sts, s)
	}
	sort.Slice(sts, func(i, j int) bool { return sts[i] < sts[j] })
	return sts
}

func (s State) Int() int {
	return int(s)
}

// StateSet is an immutable-by-convention set of states, used for marked
// sets, initial sets and Rabin pair components. It always iterates in
// ascending order so that output depends only on state identity, never
// on insertion order — required by spec.md §5's determinism clause.
type StateSet map[State]struct{}

func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

func (s StateSet) Add(st State) {
	s[st] = struct{}{}
}

func (s StateSet) Has(st State) bool {
	_, ok := s[st]
	return ok
}

func (s StateSet) Clone() StateSet {
	c := make(StateSet, len(s))
	for st := range s {
		c[st] = struct{}{}
	}
	return c
}

func (s StateSet) Union(o StateSet) StateSet {
	c := s.Clone()
	for st := range o {
		c[st] = struct{}{}
	}
	return c
}

func (s StateSet) Minus(o StateSet) StateSet {
	c := make(StateSet, len(s))
	for st := range s {
		if !o.Has(st) {
			c[st] = struct{}{}
		}
	}
	return c
}

func (s StateSet) Intersects(o StateSet) bool {
	small, big := s, o
	if len(o) < len(s) {
		small, big = o, s
	}
	for st := range small {
		if big.Has(st) {
			return true
		}
	}
	return false
}

// Sorted returns the set's elements in ascending order.
func (s StateSet) Sorted() []State {
	out := make([]State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
