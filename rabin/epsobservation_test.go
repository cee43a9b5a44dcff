package rabin

import (
	"testing"

	"github.com/nihei9/omegarabin/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEpsObservationNoOpOnFullyObservableInput is spec.md §8 Scenario D:
// EpsObservation on an automaton with no unobservable events returns it
// unchanged.
func TestEpsObservationNoOpOnFullyObservableInput(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	b.initial("q").marked("q").trans("q", "a", "q")
	g := b.build()

	out, err := EpsObservation(g)
	require.NoError(t, err)
	assert.Same(t, g, out)
}

func TestEpsObservationCollapsesUnobservableEvents(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	b.event("tau", automaton.EventAttr{Observable: false})
	b.initial("q0").marked("q2")
	b.trans("q0", "a", "q1").trans("q1", "tau", "q2")
	g := b.build()

	out, err := EpsObservation(g)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.Len(t, out.Alphabet(), 2) // "a" kept, "tau" collapsed onto one silent event

	silent, ok := out.Events.Reader().SilentEvent()
	require.True(t, ok)

	var sawSilentTransition bool
	for _, tr := range out.Transitions() {
		if tr.Event == silent {
			sawSilentTransition = true
		}
	}
	assert.True(t, sawSilentTransition)

	// Re-running EpsObservation on the already-collapsed automaton is
	// not a no-op: its silent event is unobservable by construction, so
	// a new automaton is built with a fresh event table. The silent event
	// is registered first in that table again, so it gets the same
	// identifier, and the result has one silent event, not two.
	out2, err := EpsObservation(out)
	require.NoError(t, err)
	silent2, ok := out2.Events.Reader().SilentEvent()
	require.True(t, ok)
	assert.Equal(t, silent, silent2)
}

func TestEpsObservationPreservesAcceptance(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	b.event("tau", automaton.EventAttr{Observable: false})
	b.initial("q0")
	b.trans("q0", "tau", "q1")
	b.rabinPair("p", []string{"q0"}, []string{"q1"})
	g := b.build()

	out, err := EpsObservation(g)
	require.NoError(t, err)
	require.Len(t, out.Acceptance.Pairs, 1)
	assert.ElementsMatch(t, g.Acceptance.Pairs[0].R.Sorted(), out.Acceptance.Pairs[0].R.Sorted())
	assert.ElementsMatch(t, g.Acceptance.Pairs[0].I.Sorted(), out.Acceptance.Pairs[0].I.Sorted())
}
