package rabin

import (
	"github.com/nihei9/omegarabin/automaton"
)

// Product computes the synchronous product of g1 and g2 with Rabin
// acceptance lifting (spec.md §4.1). g1 is the "plant" by the caller's
// convention: shared events inherit their controllable/observable/
// forcible attributes from g1, never from g2.
//
// The construction is eager rather than on-the-fly — spec.md §4.1
// allows either, and an eager Cartesian product is acceptable for the
// small supervisory-synthesis models this library targets — but the
// exploration shape (a worklist of already-seen product states feeding
// a queue of unchecked ones) follows the teacher's genLR0Automaton
// worklist in grammar/lr0.go.
func Product(g1, g2 *automaton.RabinAutomaton, opts ...Option) (*automaton.RabinAutomaton, error) {
	if err := g1.Validate(); err != nil {
		return nil, err
	}
	if err := g2.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	cfg.logger.Debugf("Product(%s, %s)", g1.Name, g2.Name)

	out := automaton.New(g1.Name+"||"+g2.Name, automaton.NewEventTable(), automaton.NewStateTable())

	shared := sharedAlphabet(g1, g2)
	outEvOf := map[automaton.Event]automaton.Event{}
	for _, ev := range shared {
		attr := g1.Events.Reader().Attr(ev)
		outEv := out.Events.Writer().Register(g1.EventName(ev), attr)
		out.AddEvent(outEv)
		outEvOf[ev] = outEv
	}

	outState := map[pair]automaton.State{}
	nameOf := func(p pair) string {
		return g1.StateName(p.a) + "|" + g2.StateName(p.b)
	}

	ensureState := func(p pair) automaton.State {
		if st, ok := outState[p]; ok {
			return st
		}
		st := out.States.Writer().Named(nameOf(p))
		out.AddState(st)
		outState[p] = st
		if g1.IsMarked(p.a) && g2.IsMarked(p.b) {
			out.SetMarked(st)
		}
		return st
	}

	var queue []pair
	for _, a := range g1.InitialStates() {
		for _, b := range g2.InitialStates() {
			p := pair{a, b}
			st := ensureState(p)
			out.SetInitial(st)
			queue = append(queue, p)
		}
	}

	seen := map[pair]struct{}{}
	for _, p := range queue {
		seen[p] = struct{}{}
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		from := ensureState(p)
		for _, ev := range shared {
			for _, a2 := range g1.Next(p.a, ev) {
				for _, b2 := range g2.Next(p.b, ev) {
					np := pair{a2, b2}
					to := ensureState(np)
					out.AddTransition(from, outEvOf[ev], to)
					if _, ok := seen[np]; !ok {
						seen[np] = struct{}{}
						queue = append(queue, np)
					}
				}
			}
		}
	}

	out.Acceptance = liftAcceptance(g1, g2, outState)
	return out, nil
}

// pair is a product-state key: one state from each component automaton.
type pair struct{ a, b automaton.State }

// sharedAlphabet returns the intersection of g1's and g2's alphabets,
// matched by event name since g1 and g2 may have been built from
// independent event tables (spec.md §4.1: "alphabet: intersection of
// input alphabets").
func sharedAlphabet(g1, g2 *automaton.RabinAutomaton) []automaton.Event {
	names2 := map[string]struct{}{}
	for _, ev := range g2.Alphabet() {
		names2[g2.EventName(ev)] = struct{}{}
	}
	var shared []automaton.Event
	for _, ev := range g1.Alphabet() {
		if _, ok := names2[g1.EventName(ev)]; ok {
			shared = append(shared, ev)
		}
	}
	return shared
}

// liftAcceptance implements spec.md §4.1's acceptance lifting: for
// every (j,k) combination of g1's and g2's Rabin pairs (substituting a
// synthetic empty pair on whichever side has none), emit one product
// pair R = (R1×States2) ∪ (States1×R2), I = (I1×States2) ∪ (States1×I2)
// restricted to states that were actually reached during product
// construction.
func liftAcceptance(g1, g2 *automaton.RabinAutomaton, outState map[pair]automaton.State) automaton.RabinAcceptance {
	var pairs []automaton.RabinPair
	for _, p1 := range g1.Acceptance.PairsOrSentinel() {
		for _, p2 := range g2.Acceptance.PairsOrSentinel() {
			r := automaton.NewStateSet()
			i := automaton.NewStateSet()
			for pr, st := range outState {
				if p1.R.Has(pr.a) || p2.R.Has(pr.b) {
					r.Add(st)
				}
				if p1.I.Has(pr.a) || p2.I.Has(pr.b) {
					i.Add(st)
				}
			}
			name := p1.Name
			if p2.Name != "" {
				if name != "" {
					name += "×"
				}
				name += p2.Name
			}
			pairs = append(pairs, automaton.NewRabinPair(name, r, i))
		}
	}
	return automaton.NewRabinAcceptance(pairs...)
}
