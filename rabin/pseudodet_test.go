package rabin

import (
	"testing"

	"github.com/nihei9/omegarabin/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPseudoDetMergesNondeterministicBranches is spec.md §8 Scenario B:
// states {1,2,3}, a single event a, transitions 1-a->2 and 1-a->3, no
// Rabin pairs. Subset construction (no acceptance pairs means Step 3
// never branches) collapses {2,3} into a single macro-state.
func TestPseudoDetMergesNondeterministicBranches(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	b.initial("1").trans("1", "a", "2").trans("1", "a", "3")
	g := b.build()

	res, err := PseudoDet(g)
	require.NoError(t, err)
	require.NoError(t, res.Automaton.Validate())

	assert.Len(t, res.Automaton.StateList(), 2)
	assert.Len(t, res.Automaton.Transitions(), 1)
	assertDeterministic(t, res.Automaton)
	assertAllTreesSatisfyInvariants(t, res, DefaultLimits().MaxNodesPerTree)
}

// assertAllTreesSatisfyInvariants checks spec.md §8's P1: every tree
// behind a macro-state PseudoDet actually produced satisfies (T1)-(T5),
// not just hand-built fixtures.
func assertAllTreesSatisfyInvariants(t *testing.T, res *DetResult, maxNodes int) {
	t.Helper()
	require.NotEmpty(t, res.trees)
	for st, tree := range res.trees {
		t.Run(st.String(), func(t *testing.T) {
			invariantsHold(t, tree, maxNodes)
		})
	}
}

// assertDeterministic checks spec.md §8's P2: at most one outgoing
// transition per (state, event) pair in the output of PseudoDet.
func assertDeterministic(t *testing.T, g *automaton.RabinAutomaton) {
	t.Helper()
	seen := map[automaton.State]map[automaton.Event]int{}
	for _, tr := range g.Transitions() {
		if seen[tr.From] == nil {
			seen[tr.From] = map[automaton.Event]int{}
		}
		seen[tr.From][tr.Event]++
	}
	for st, byEv := range seen {
		for ev, count := range byEv {
			assert.LessOrEqualf(t, count, 1, "state %v has %d transitions on event %v", st, count, ev)
		}
	}
}

func TestPseudoDetOnDeterministicInputIsUnchangedInShape(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	b.initial("s0").marked("s0").trans("s0", "a", "s0")
	b.rabinPair("p", []string{"s0"}, []string{"s0"})
	g := b.build()

	res, err := PseudoDet(g)
	require.NoError(t, err)
	require.NoError(t, res.Automaton.Validate())
	assertDeterministic(t, res.Automaton)
	assert.NotEmpty(t, res.Automaton.StateList())
	assert.NotEmpty(t, res.Automaton.InitialStates())
}

func TestPseudoDetOnAutomatonWithNoInitialStatesIsEmpty(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	g := b.build() // no initial() call

	res, err := PseudoDet(g)
	require.NoError(t, err)
	assert.Empty(t, res.Automaton.StateList())
	assert.Empty(t, res.Automaton.Transitions())
}

func TestPseudoDetRespectsMacroStepCap(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	b.initial("1", "2").trans("1", "a", "2").trans("2", "a", "1")
	g := b.build()

	limits := DefaultLimits()
	limits.MaxMacroSteps = 1
	res, err := PseudoDet(g, WithLimits(limits))
	require.NoError(t, err)

	require.NotEmpty(t, res.Warnings)
	var sawCap bool
	for _, w := range res.Warnings {
		if w.Cap == CapMaxMacroSteps {
			sawCap = true
		}
	}
	assert.True(t, sawCap)
}

// TestPseudoDetCapacityCapYieldsValidPartialResult is spec.md §8
// Scenario F: a high-fan-out input that would require more macro-states
// than the configured cap returns a partial result with a warning, and
// every macro-state actually emitted before the cap still satisfies
// (T1)-(T5) and (P2).
func TestPseudoDetCapacityCapYieldsValidPartialResult(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	b.initial("1").
		trans("1", "a", "2").trans("1", "a", "3").
		trans("2", "a", "4").trans("2", "a", "5").
		trans("3", "a", "6").trans("3", "a", "7").
		trans("4", "a", "4").trans("5", "a", "5").
		trans("6", "a", "6").trans("7", "a", "7")
	g := b.build()

	limits := DefaultLimits()
	limits.MaxMacroStates = 2
	res, err := PseudoDet(g, WithLimits(limits))
	require.NoError(t, err)

	var sawCap bool
	for _, w := range res.Warnings {
		if w.Cap == CapMaxMacroStates {
			sawCap = true
		}
	}
	assert.True(t, sawCap, "expected a CapMaxMacroStates warning")

	require.NoError(t, res.Automaton.Validate())
	assertDeterministic(t, res.Automaton)
	assertAllTreesSatisfyInvariants(t, res, limits.MaxNodesPerTree)
}

func TestPseudoDetAlphabetExcludesSilentEvent(t *testing.T) {
	b := newBuilder("g")
	b.event("a", automaton.EventAttr{Observable: true})
	tau := b.event("tau", automaton.EventAttr{Observable: false})
	_ = tau
	b.g.Events.Writer().EnsureSilentEvent("tau")
	b.initial("q").trans("q", "a", "q")
	g := b.build()

	res, err := PseudoDet(g)
	require.NoError(t, err)
	assertDeterministic(t, res.Automaton)
	for _, tr := range res.Automaton.Transitions() {
		assert.NotEqual(t, "tau", res.Automaton.EventName(tr.Event))
	}
}
