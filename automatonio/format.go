package automatonio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nihei9/omegarabin/automaton"
)

// doc is the on-disk shape of a RabinAutomaton. Every field is a plain
// exported struct so yaml.v3 can unmarshal it directly, the way the
// teacher's config.RuleSet is a bare slice of exported-field structs
// decoded straight off gopkg.in/yaml.v3 with validation run as a
// separate pass afterwards.
type doc struct {
	Name        string         `yaml:"name"`
	Events      []eventDoc     `yaml:"events"`
	States      []stateDoc     `yaml:"states"`
	Transitions []transDoc     `yaml:"transitions"`
	Acceptance  []acceptDoc    `yaml:"acceptance,omitempty"`
}

type eventDoc struct {
	Name         string `yaml:"name"`
	Controllable bool   `yaml:"controllable,omitempty"`
	Observable   bool   `yaml:"observable,omitempty"`
	Forcible     bool   `yaml:"forcible,omitempty"`
	Silent       bool   `yaml:"silent,omitempty"`
}

type stateDoc struct {
	Name    string `yaml:"name"`
	Initial bool   `yaml:"initial,omitempty"`
	Marked  bool   `yaml:"marked,omitempty"`
}

type transDoc struct {
	From  string `yaml:"from"`
	Event string `yaml:"event"`
	To    string `yaml:"to"`
}

type acceptDoc struct {
	Name string   `yaml:"name,omitempty"`
	R    []string `yaml:"r"`
	I    []string `yaml:"i"`
}

// Decode parses a YAML automaton description into a fresh
// RabinAutomaton. Every state and event referenced anywhere in the
// document (including transitions.from/to and acceptance.r/i) must
// first be declared in the top-level states/events lists; Decode does
// not implicitly invent states the way RabinAutomaton.AddTransition
// does not, so malformed input is caught here rather than surfacing
// later as a Validate error with a less specific location.
func Decode(data []byte) (*automaton.RabinAutomaton, error) {
	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, &FormatError{Cause: err}
	}

	g := automaton.New(d.Name, automaton.NewEventTable(), automaton.NewStateTable())

	for _, ed := range d.Events {
		attr := automaton.EventAttr{Controllable: ed.Controllable, Observable: ed.Observable, Forcible: ed.Forcible}
		var ev automaton.Event
		if ed.Silent {
			ev = g.Events.Writer().EnsureSilentEvent(ed.Name)
			g.Events.Writer().SetAttr(ev, attr)
		} else {
			ev = g.Events.Writer().Register(ed.Name, attr)
		}
		g.AddEvent(ev)
	}

	byName := map[string]automaton.State{}
	for _, sd := range d.States {
		st := g.States.Writer().Named(sd.Name)
		g.AddState(st)
		byName[sd.Name] = st
		if sd.Initial {
			g.SetInitial(st)
		}
		if sd.Marked {
			g.SetMarked(st)
		}
	}

	lookupState := func(name string) (automaton.State, error) {
		st, ok := byName[name]
		if !ok {
			return automaton.StateNil, &FormatError{Cause: fmt.Errorf("undeclared state %q", name)}
		}
		return st, nil
	}
	lookupEvent := func(name string) (automaton.Event, error) {
		ev, ok := g.Events.Reader().ByName(name)
		if !ok {
			return automaton.EventNil, &FormatError{Cause: fmt.Errorf("undeclared event %q", name)}
		}
		return ev, nil
	}

	for _, td := range d.Transitions {
		from, err := lookupState(td.From)
		if err != nil {
			return nil, err
		}
		to, err := lookupState(td.To)
		if err != nil {
			return nil, err
		}
		ev, err := lookupEvent(td.Event)
		if err != nil {
			return nil, err
		}
		g.AddTransition(from, ev, to)
	}

	var pairs []automaton.RabinPair
	for _, ad := range d.Acceptance {
		r := automaton.NewStateSet()
		for _, name := range ad.R {
			st, err := lookupState(name)
			if err != nil {
				return nil, err
			}
			r.Add(st)
		}
		i := automaton.NewStateSet()
		for _, name := range ad.I {
			st, err := lookupState(name)
			if err != nil {
				return nil, err
			}
			i.Add(st)
		}
		pairs = append(pairs, automaton.NewRabinPair(ad.Name, r, i))
	}
	g.Acceptance = automaton.NewRabinAcceptance(pairs...)

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Encode renders g as a YAML document in the same shape Decode accepts.
func Encode(g *automaton.RabinAutomaton) ([]byte, error) {
	var d doc
	d.Name = g.Name

	for _, ev := range g.Events.Reader().Events() {
		if !g.HasEvent(ev) {
			continue
		}
		attr := g.Events.Reader().Attr(ev)
		silentEv, hasSilent := g.Events.Reader().SilentEvent()
		d.Events = append(d.Events, eventDoc{
			Name:         g.EventName(ev),
			Controllable: attr.Controllable,
			Observable:   attr.Observable,
			Forcible:     attr.Forcible,
			Silent:       hasSilent && ev == silentEv,
		})
	}

	for _, st := range g.StateList() {
		d.States = append(d.States, stateDoc{
			Name:    g.StateName(st),
			Initial: g.IsInitial(st),
			Marked:  g.IsMarked(st),
		})
	}

	for _, t := range g.Transitions() {
		d.Transitions = append(d.Transitions, transDoc{
			From:  g.StateName(t.From),
			Event: g.EventName(t.Event),
			To:    g.StateName(t.To),
		})
	}

	for _, pair := range g.Acceptance.Pairs {
		d.Acceptance = append(d.Acceptance, acceptDoc{
			Name: pair.Name,
			R:    stateNames(g, pair.R.Sorted()),
			I:    stateNames(g, pair.I.Sorted()),
		})
	}

	return yaml.Marshal(&d)
}

func stateNames(g *automaton.RabinAutomaton, sts []automaton.State) []string {
	names := make([]string, len(sts))
	for i, st := range sts {
		names[i] = g.StateName(st)
	}
	return names
}

// FormatError wraps a decoding failure. Adapted from the teacher's
// error.SpecError, which attaches a source row to a parse failure; this
// format has no row concept of its own (yaml.v3 already prefixes line
// numbers onto its own errors), so Cause is surfaced as-is.
type FormatError struct {
	Cause error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("automatonio: %v", e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
