package rabin

import (
	"testing"

	"github.com/nihei9/omegarabin/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProductAcceptanceLifting is spec.md §8 Scenario C: G1 has states
// {p,q} with acceptance <({p},{q})>, G2 has states {x,y} with
// acceptance <({y},{x})>, and the shared alphabet is {a}. Every state
// of both components is initial with a self-loop on a, so every
// product combination (p,x), (p,y), (q,x), (q,y) is reachable and the
// expected lifted pair covers all four.
func TestProductAcceptanceLifting(t *testing.T) {
	b1 := newBuilder("g1")
	b1.event("a", automaton.EventAttr{Observable: true})
	b1.initial("p", "q").trans("p", "a", "p").trans("q", "a", "q")
	b1.rabinPair("pair1", []string{"p"}, []string{"q"})
	g1 := b1.build()

	b2 := newBuilder("g2")
	b2.event("a", automaton.EventAttr{Observable: true})
	b2.initial("x", "y").trans("x", "a", "x").trans("y", "a", "y")
	b2.rabinPair("pair2", []string{"y"}, []string{"x"})
	g2 := b2.build()

	out, err := Product(g1, g2)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	require.Len(t, out.Acceptance.Pairs, 1)
	pair := out.Acceptance.Pairs[0]

	name := func(a, b string) automaton.State {
		for _, st := range out.StateList() {
			if out.StateName(st) == a+"|"+b {
				return st
			}
		}
		t.Fatalf("product state %s|%s not found", a, b)
		return automaton.StateNil
	}

	expectedR := automaton.NewStateSet(name("p", "x"), name("p", "y"), name("q", "y"))
	expectedI := automaton.NewStateSet(name("p", "x"), name("q", "x"), name("q", "y"))

	assert.ElementsMatch(t, expectedR.Sorted(), pair.R.Sorted())
	assert.ElementsMatch(t, expectedI.Sorted(), pair.I.Sorted())
}

func TestProductAlphabetIsIntersection(t *testing.T) {
	b1 := newBuilder("g1")
	b1.event("a", automaton.EventAttr{Observable: true})
	b1.event("b", automaton.EventAttr{Observable: true})
	b1.initial("p").trans("p", "a", "p")
	g1 := b1.build()

	b2 := newBuilder("g2")
	b2.event("a", automaton.EventAttr{Observable: true})
	b2.event("c", automaton.EventAttr{Observable: true})
	b2.initial("x").trans("x", "a", "x")
	g2 := b2.build()

	out, err := Product(g1, g2)
	require.NoError(t, err)
	assert.Len(t, out.Alphabet(), 1) // P3: alphabet == intersection == {a}
}

func TestProductStateCountBound(t *testing.T) {
	b1 := newBuilder("g1")
	b1.event("a", automaton.EventAttr{Observable: true})
	b1.initial("p", "q").trans("p", "a", "q").trans("q", "a", "p")
	g1 := b1.build()

	b2 := newBuilder("g2")
	b2.event("a", automaton.EventAttr{Observable: true})
	b2.initial("x", "y", "z").trans("x", "a", "y").trans("y", "a", "z").trans("z", "a", "x")
	g2 := b2.build()

	out, err := Product(g1, g2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out.StateList()), 2*3) // P4
}

func TestProductEmptyAlphabetYieldsNoTransitions(t *testing.T) {
	b1 := newBuilder("g1")
	b1.event("a", automaton.EventAttr{Observable: true})
	b1.initial("p").trans("p", "a", "p")
	g1 := b1.build()

	b2 := newBuilder("g2")
	b2.event("b", automaton.EventAttr{Observable: true})
	b2.initial("x").trans("x", "b", "x")
	g2 := b2.build()

	out, err := Product(g1, g2)
	require.NoError(t, err)
	assert.Empty(t, out.Alphabet())
	assert.Empty(t, out.Transitions())
	assert.Len(t, out.StateList(), 1) // the initial cross-product state still exists
}
