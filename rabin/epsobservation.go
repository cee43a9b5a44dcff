package rabin

import "github.com/nihei9/omegarabin/automaton"

// silentEventName is the printable name under which the silent event
// is registered. spec.md §9 warns against detecting "the" silent event
// by a substring match on its name; this package instead always
// tracks the silent event's identifier explicitly via
// EventTable.EnsureSilentEvent / SilentEvent, and this constant is used
// only to pick a human-readable name the first time the event is
// created.
const silentEventName = "ε"

// EpsObservation collapses every unobservable event's transitions onto
// a single fresh silent event (spec.md §4.3). State space, initial and
// marked states and the Rabin acceptance condition are unchanged; only
// the alphabet and transition relation differ.
func EpsObservation(g *automaton.RabinAutomaton, opts ...Option) (*automaton.RabinAutomaton, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	cfg.logger.Debugf("EpsObservation(%s)", g.Name)

	hasUnobservable := false
	for _, ev := range g.Alphabet() {
		if !g.Events.Reader().Attr(ev).Observable {
			hasUnobservable = true
			break
		}
	}
	if !hasUnobservable {
		cfg.logger.Debugf("EpsObservation(%s): no unobservable events, returning unchanged", g.Name)
		return g, nil
	}

	out := automaton.New("EpsObservation("+g.Name+")", automaton.NewEventTable(), g.States)
	for _, st := range g.StateList() {
		out.AddState(st)
	}
	for _, st := range g.InitialStates() {
		out.SetInitial(st)
	}
	for _, st := range g.MarkedStates() {
		out.SetMarked(st)
	}
	out.Acceptance = g.Acceptance

	silent := out.Events.Writer().EnsureSilentEvent(silentEventName)
	out.AddEvent(silent)

	keep := map[automaton.Event]automaton.Event{}
	for _, ev := range g.Alphabet() {
		attr := g.Events.Reader().Attr(ev)
		if !attr.Observable {
			continue
		}
		newEv := out.Events.Writer().Register(g.EventName(ev), attr)
		out.AddEvent(newEv)
		keep[ev] = newEv
	}

	for _, t := range g.Transitions() {
		attr := g.Events.Reader().Attr(t.Event)
		if !attr.Observable {
			out.AddTransition(t.From, silent, t.To)
			continue
		}
		out.AddTransition(t.From, keep[t.Event], t.To)
	}

	return out, nil
}
