package rabin

import (
	"sort"

	"github.com/nihei9/omegarabin/automaton"
)

// ExpandToControlPatterns replaces g's alphabet with an augmented
// alphabet of (event, control-pattern) pairs (spec.md §4.2): each
// augmented event (a, γ) is enabled from q iff a is enabled from q and
// a ∈ γ, where γ ranges over every valid control pattern — a subset of
// the original alphabet containing every uncontrollable event plus a
// (possibly empty) subset of controllable.
//
// The set-generation shape (iterate 2^|C| subsets, build one derived
// object per subset) follows the closure-computation style of the
// teacher's grammar/first.go, generalised from first-set computation to
// powerset enumeration.
func ExpandToControlPatterns(g *automaton.RabinAutomaton, controllable []automaton.Event, opts ...Option) (*automaton.RabinAutomaton, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	cfg.logger.Debugf("ExpandToControlPatterns(%s)", g.Name)

	if len(controllable) > cfg.limits.MaxControlPatternEvents {
		return nil, newCapacityError(CapMaxControlPatterns,
			"control-pattern expansion needs 2^%d patterns, which exceeds the configured limit of 2^%d",
			len(controllable), cfg.limits.MaxControlPatternEvents)
	}

	cSet := map[automaton.Event]struct{}{}
	for _, ev := range controllable {
		cSet[ev] = struct{}{}
	}
	var cList []automaton.Event
	for _, ev := range g.Alphabet() {
		if _, ok := cSet[ev]; ok {
			cList = append(cList, ev)
		}
	}
	sort.Slice(cList, func(i, j int) bool { return cList[i] < cList[j] })

	var uncontrolled []automaton.Event
	for _, ev := range g.Alphabet() {
		if _, ok := cSet[ev]; !ok {
			uncontrolled = append(uncontrolled, ev)
		}
	}

	// patterns lists every valid control pattern γ = (Σ\C) ∪ S for each
	// subset S ⊆ C, one per bitmask over cList. All 2^|C| patterns are
	// built eagerly; the cap on |C| checked above is what bounds memory.
	// The patterns are then sorted lexicographically by their ascending
	// event-ID lists.
	n := len(cList)
	numPatterns := 1 << n
	patterns := make([][]automaton.Event, numPatterns)
	for mask := 0; mask < numPatterns; mask++ {
		pat := append([]automaton.Event(nil), uncontrolled...)
		for bit := 0; bit < n; bit++ {
			if mask&(1<<bit) != 0 {
				pat = append(pat, cList[bit])
			}
		}
		sort.Slice(pat, func(i, j int) bool { return pat[i] < pat[j] })
		patterns[mask] = pat
	}
	sort.Slice(patterns, func(i, j int) bool {
		p, q := patterns[i], patterns[j]
		for k := 0; k < len(p) && k < len(q); k++ {
			if p[k] != q[k] {
				return p[k] < q[k]
			}
		}
		return len(p) < len(q)
	})

	out := automaton.New("ExpandToControlPatterns("+g.Name+")", automaton.NewEventTable(), g.States)
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

	// The augmented alphabet is the full |Σ|·2^|C| Cartesian product of
	// base events with valid patterns (spec.md §4.2), registered up
	// front in (event-id, pattern) lexicographic order — including
	// augmented events no transition will ever use, e.g. (a,γ) with
	// a∉γ. Only the ones with a∈γ go on to carry transitions below.
	augEvent := map[string]automaton.Event{}
	for _, base := range g.Alphabet() {
		attr := g.Events.Reader().Attr(base)
		for _, pat := range patterns {
			key := augmentedEventKey(g, base, pat)
			ev := out.Events.Writer().Register(key, attr)
			out.AddEvent(ev)
			augEvent[key] = ev
		}
	}

	patternContains := func(pat []automaton.Event, ev automaton.Event) bool {
		for _, p := range pat {
			if p == ev {
				return true
			}
		}
		return false
	}

	for _, t := range g.Transitions() {
		for _, pat := range patterns {
			if !patternContains(pat, t.Event) {
				continue
			}
			aug := augEvent[augmentedEventKey(g, t.Event, pat)]
			out.AddTransition(t.From, aug, t.To)
		}
	}

	return out, nil
}

// augmentedEventKey renders (a, γ) as the printable name spec.md §3
// describes for an augmented event, used both as the map key for
// deduplicating registrations and as the event's display name.
func augmentedEventKey(g *automaton.RabinAutomaton, base automaton.Event, pattern []automaton.Event) string {
	s := g.EventName(base) + "/{"
	for i, ev := range pattern {
		if i > 0 {
			s += ","
		}
		s += g.EventName(ev)
	}
	return s + "}"
}
