// Package automaton provides the finite-automaton container that the
// rabin package's transforms operate on: events, states, transitions and
// a Rabin acceptance condition. It plays the role of the collaborator
// library described by the surrounding specification — the core
// transforms never construct one of these from scratch, they only
// consume and produce them.
package automaton

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Event is an opaque event identifier. Events compare by identifier, not
// by name.
type Event uint32

// EventNil is never a valid registered event.
const EventNil = Event(0)

func (e Event) String() string {
	return fmt.Sprintf("e%d", uint32(e))
}

// IsNil reports whether e is the zero value.
func (e Event) IsNil() bool {
	return e == EventNil
}

// EventAttr holds the three Boolean flags a supervisory-control event
// carries (spec.md §3).
type EventAttr struct {
	Controllable bool
	Observable   bool
	Forcible     bool
}

// EventTable is a bidirectional name/attribute table for events, split
// into a Writer (registration) and Reader (lookup) half the way
// grammar/symbol.SymbolTable is split — this keeps mutation sites
// explicit at call sites that only need to read.
type EventTable struct {
	text2Ev   map[string]Event
	ev2Text   map[Event]string
	ev2Attr   map[Event]EventAttr
	nextEvent Event
	silent    Event // EventNil until EnsureSilentEvent is called
}

// NewEventTable creates an empty event table.
func NewEventTable() *EventTable {
	return &EventTable{
		text2Ev:   map[string]Event{},
		ev2Text:   map[Event]string{},
		ev2Attr:   map[Event]EventAttr{},
		nextEvent: 1,
	}
}

// Writer returns the mutating half of the table.
func (t *EventTable) Writer() *EventTableWriter {
	return &EventTableWriter{t}
}

// Reader returns the read-only half of the table.
func (t *EventTable) Reader() *EventTableReader {
	return &EventTableReader{t}
}

type EventTableWriter struct {
	*EventTable
}

type EventTableReader struct {
	*EventTable
}

// Register creates (or looks up, if the name is already known) an event
// with the given attributes. Re-registering an existing name returns
// its existing ID; the attributes passed on a re-registration are
// ignored, matching the idempotent-insertion policy spec.md §5 requires
// for the silent event.
func (w *EventTableWriter) Register(name string, attr EventAttr) Event {
	name = norm.NFC.String(name)
	if ev, ok := w.text2Ev[name]; ok {
		return ev
	}
	ev := w.nextEvent
	w.nextEvent++
	w.text2Ev[name] = ev
	w.ev2Text[ev] = name
	w.ev2Attr[ev] = attr
	return ev
}

// EnsureSilentEvent returns the epsilon event used by EpsObservation,
// creating it under the given name on first use and reusing it on every
// subsequent call — spec.md §4.3 requires that the silent event's
// identifier not clash with an existing one and that insertion be
// idempotent.
func (w *EventTableWriter) EnsureSilentEvent(name string) Event {
	name = norm.NFC.String(name)
	if !w.silent.IsNil() {
		return w.silent
	}
	if ev, ok := w.text2Ev[name]; ok {
		w.silent = ev
		return ev
	}
	ev := w.Register(name, EventAttr{Controllable: false, Observable: false, Forcible: false})
	w.silent = ev
	return ev
}

// SetAttr overwrites the attributes of an already-registered event —
// used by control-pattern expansion to derive an augmented event's
// attributes from its base event.
func (w *EventTableWriter) SetAttr(ev Event, attr EventAttr) {
	w.ev2Attr[ev] = attr
}

func (r *EventTableReader) Name(ev Event) (string, bool) {
	name, ok := r.ev2Text[ev]
	return name, ok
}

func (r *EventTableReader) ByName(name string) (Event, bool) {
	ev, ok := r.text2Ev[norm.NFC.String(name)]
	return ev, ok
}

func (r *EventTableReader) Attr(ev Event) EventAttr {
	return r.ev2Attr[ev]
}

// SilentEvent returns the epsilon event if one has been created, and
// false otherwise.
func (r *EventTableReader) SilentEvent() (Event, bool) {
	return r.silent, !r.silent.IsNil()
}

// Events returns every registered event in ascending ID order, which is
// the order spec.md §5's determinism requirement calls "ordered
// iteration of events."
func (r *EventTableReader) Events() []Event {
	evs := make([]Event, 0, len(r.ev2Text))
	for ev := range r.ev2Text {
		evs = append(evs, ev)
	}
	sort.Slice(evs, func(i, j int) bool { return evs[i] < evs[j] })
	return evs
}
