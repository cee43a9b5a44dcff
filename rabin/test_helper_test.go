package rabin

import "github.com/nihei9/omegarabin/automaton"

// builder is a small fluent helper for assembling test fixtures; it
// keeps package tests focused on the transform under test rather than
// on bookkeeping, the way grammar/test_helper_test.go's generators keep
// grammar package tests focused on LR construction.
type builder struct {
	g     *automaton.RabinAutomaton
	st    map[string]automaton.State
	ev    map[string]automaton.Event
}

func newBuilder(name string) *builder {
	return &builder{
		g:  automaton.New(name, nil, nil),
		st: map[string]automaton.State{},
		ev: map[string]automaton.Event{},
	}
}

func (b *builder) state(name string) automaton.State {
	if st, ok := b.st[name]; ok {
		return st
	}
	st := b.g.States.Writer().Named(name)
	b.g.AddState(st)
	b.st[name] = st
	return st
}

func (b *builder) event(name string, attr automaton.EventAttr) automaton.Event {
	if ev, ok := b.ev[name]; ok {
		return ev
	}
	ev := b.g.Events.Writer().Register(name, attr)
	b.g.AddEvent(ev)
	b.ev[name] = ev
	return ev
}

func (b *builder) initial(names ...string) *builder {
	for _, n := range names {
		b.g.SetInitial(b.state(n))
	}
	return b
}

func (b *builder) marked(names ...string) *builder {
	for _, n := range names {
		b.g.SetMarked(b.state(n))
	}
	return b
}

func (b *builder) trans(from, ev, to string) *builder {
	b.g.AddTransition(b.state(from), b.ev[ev], b.state(to))
	return b
}

func (b *builder) rabinPair(name string, r, i []string) *builder {
	rs := automaton.NewStateSet()
	for _, n := range r {
		rs.Add(b.state(n))
	}
	is := automaton.NewStateSet()
	for _, n := range i {
		is.Add(b.state(n))
	}
	b.g.Acceptance.Pairs = append(b.g.Acceptance.Pairs, automaton.NewRabinPair(name, rs, is))
	return b
}

func (b *builder) build() *automaton.RabinAutomaton {
	return b.g
}
