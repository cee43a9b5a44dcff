package automaton

import "sort"

// Transition is one (From, Event, To) edge. A RabinAutomaton may hold
// more than one transition for the same (From, Event) pair — the core
// is built around nondeterministic automata; determinism is exactly
// what rabin.PseudoDet produces.
type Transition struct {
	From  State
	Event Event
	To    State
}

// RabinAutomaton is the finite-automaton container the four
// transforms consume and produce (spec.md §3): an alphabet, a state
// set, designated initial and marked states, a transition relation and
// a Rabin acceptance condition.
type RabinAutomaton struct {
	Name string

	Events *EventTable
	States *StateTable

	alphabet map[Event]struct{}
	states   map[State]struct{}
	initial  StateSet
	marked   StateSet

	// out indexes transitions by source state for O(1) successor
	// lookup; trans holds the flat relation for iteration.
	trans []Transition
	out   map[State][]Transition

	Acceptance RabinAcceptance
}

// New creates an empty automaton backed by the given symbol tables.
// Passing shared tables lets callers build several automata (e.g. a
// plant and a spec) whose event/state identifiers are allocated from
// the same universe. rabin.Product does not depend on this: it
// intersects alphabets by event name, so automata built from separate
// tables combine as well.
func New(name string, events *EventTable, states *StateTable) *RabinAutomaton {
	if events == nil {
		events = NewEventTable()
	}
	if states == nil {
		states = NewStateTable()
	}
	return &RabinAutomaton{
		Name:     name,
		Events:   events,
		States:   states,
		alphabet: map[Event]struct{}{},
		states:   map[State]struct{}{},
		initial:  NewStateSet(),
		marked:   NewStateSet(),
		out:      map[State][]Transition{},
	}
}

// AddState registers st as a member of this automaton's state set. It
// is idempotent.
func (g *RabinAutomaton) AddState(st State) {
	g.states[st] = struct{}{}
}

func (g *RabinAutomaton) HasState(st State) bool {
	_, ok := g.states[st]
	return ok
}

// AddEvent registers ev as a member of this automaton's alphabet. It is
// idempotent.
func (g *RabinAutomaton) AddEvent(ev Event) {
	g.alphabet[ev] = struct{}{}
}

func (g *RabinAutomaton) HasEvent(ev Event) bool {
	_, ok := g.alphabet[ev]
	return ok
}

func (g *RabinAutomaton) SetInitial(st State) {
	g.AddState(st)
	g.initial.Add(st)
}

func (g *RabinAutomaton) SetMarked(st State) {
	g.AddState(st)
	g.marked.Add(st)
}

func (g *RabinAutomaton) IsInitial(st State) bool {
	return g.initial.Has(st)
}

func (g *RabinAutomaton) IsMarked(st State) bool {
	return g.marked.Has(st)
}

// AddTransition records From-Event->To. Both states must already be
// known to the automaton and the event must already be in its
// alphabet; AddTransition does not implicitly register either, so that
// a caller who forgot to add a state gets caught by Validate rather
// than silently growing the state set.
func (g *RabinAutomaton) AddTransition(from State, ev Event, to State) {
	t := Transition{From: from, Event: ev, To: to}
	g.trans = append(g.trans, t)
	g.out[from] = append(g.out[from], t)
}

// Next returns every state reachable from st on ev — spec.md's δ(q, σ).
func (g *RabinAutomaton) Next(st State, ev Event) []State {
	var out []State
	for _, t := range g.out[st] {
		if t.Event == ev {
			out = append(out, t.To)
		}
	}
	return out
}

// Alphabet returns the automaton's events in ascending ID order.
func (g *RabinAutomaton) Alphabet() []Event {
	evs := make([]Event, 0, len(g.alphabet))
	for ev := range g.alphabet {
		evs = append(evs, ev)
	}
	sort.Slice(evs, func(i, j int) bool { return evs[i] < evs[j] })
	return evs
}

// StateList returns the automaton's states in ascending ID order.
func (g *RabinAutomaton) StateList() []State {
	sts := make([]State, 0, len(g.states))
	for st := range g.states {
		sts = append(sts, st)
	}
	sort.Slice(sts, func(i, j int) bool { return sts[i] < sts[j] })
	return sts
}

// InitialStates returns the initial state set in ascending ID order.
func (g *RabinAutomaton) InitialStates() []State {
	return g.initial.Sorted()
}

func (g *RabinAutomaton) InitialStateSet() StateSet {
	return g.initial.Clone()
}

// MarkedStates returns the marked state set in ascending ID order.
func (g *RabinAutomaton) MarkedStates() []State {
	return g.marked.Sorted()
}

// Transitions returns the transition relation in insertion order. Every
// on-the-fly exploration in this repository appends transitions in a
// deterministic order (ordered event iteration over an ordered worklist
// of states), so insertion order already satisfies spec.md §5.
func (g *RabinAutomaton) Transitions() []Transition {
	return g.trans
}

// StateName returns st's display name, falling back to its numeric
// identifier.
func (g *RabinAutomaton) StateName(st State) string {
	if name, ok := g.States.Reader().Name(st); ok {
		return name
	}
	return st.String()
}

// EventName returns ev's display name, falling back to its numeric
// identifier.
func (g *RabinAutomaton) EventName(ev Event) string {
	if name, ok := g.Events.Reader().Name(ev); ok {
		return name
	}
	return ev.String()
}
