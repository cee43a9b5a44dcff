package rabin

import (
	"testing"

	"github.com/nihei9/omegarabin/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitialTreeIsSingleWhiteNode(t *testing.T) {
	initial := automaton.NewStateSet(1, 2)
	tree := newInitialTree(initial)

	require.Len(t, tree.nodeIDs(), 1)
	root := tree.get(tree.root)
	assert.Equal(t, White, root.color)
	assert.Empty(t, root.children)
	assert.Empty(t, root.aSet)
	assert.Empty(t, root.rSet)
	assert.ElementsMatch(t, initial.Sorted(), root.label.Sorted())
}

// TestSignatureIsInvariantUnderNodeIDAllocationOrder exercises spec.md
// §9's open question about signature canonicalisation: two trees with
// identical shape, labels and colours but different underlying NodeID
// values (because one allocated and then discarded an extra node) must
// still hash to the same macro-state signature.
func TestSignatureIsInvariantUnderNodeIDAllocationOrder(t *testing.T) {
	a := newInitialTree(automaton.NewStateSet(1, 2))
	a.addChild(a.root, automaton.NewStateSet(1), White)
	a.addChild(a.root, automaton.NewStateSet(2), White)

	b := newInitialTree(automaton.NewStateSet(1, 2))
	throwaway := b.addChild(b.root, automaton.NewStateSet(9), White)
	b.deleteNode(throwaway)
	b.addChild(b.root, automaton.NewStateSet(1), White)
	b.addChild(b.root, automaton.NewStateSet(2), White)

	assert.Equal(t, a.signature(), b.signature())
}

func TestSignatureDistinguishesDifferentColors(t *testing.T) {
	a := newInitialTree(automaton.NewStateSet(1))
	b := newInitialTree(automaton.NewStateSet(1))
	b.get(b.root).color = Green

	assert.NotEqual(t, a.signature(), b.signature())
}

func TestDeleteNodeCascadesAndCleansReferences(t *testing.T) {
	tree := newInitialTree(automaton.NewStateSet(1, 2, 3))
	child := tree.addChild(tree.root, automaton.NewStateSet(1), White)
	grandchild := tree.addChild(child, automaton.NewStateSet(1), White)
	tree.get(tree.root).rSet[grandchild] = struct{}{}

	tree.deleteNode(child)

	assert.Nil(t, tree.get(child))
	assert.Nil(t, tree.get(grandchild))
	assert.Empty(t, tree.get(tree.root).children)
	assert.Empty(t, tree.get(tree.root).rSet) // T4: dangling back-reference purged
}

// invariantsHold checks tree invariants T1-T6 against the given cap.
func invariantsHold(t *testing.T, tree *Tree, maxNodes int) {
	t.Helper()
	assert.LessOrEqual(t, tree.nodeCount(), maxNodes, "T6: node cap")

	for id, n := range tree.nodes {
		assert.NotEmpty(t, n.label, "T1: node %d has a non-empty label", id)

		if n.color == Red {
			assert.Empty(t, n.children, "T5: red node %d has no children", id)
		}

		seen := automaton.NewStateSet()
		for _, childID := range n.children {
			child := tree.get(childID)
			require.NotNil(t, child, "T4: child %d of %d must exist", childID, id)
			assert.Equal(t, id, child.parent, "T4: child %d's parent back-reference", childID)
			for st := range child.label {
				assert.True(t, n.label.Has(st), "T3: child %d label subset of parent %d", childID, id)
			}
			for st := range child.label {
				assert.False(t, seen.Has(st), "T2: sibling disjointness under %d", id)
			}
			seen = seen.Union(child.label)
		}

		for ref := range n.aSet {
			assert.NotNil(t, tree.get(ref), "T4: A-set reference %d must exist", ref)
		}
		for ref := range n.rSet {
			assert.NotNil(t, tree.get(ref), "T4: R-set reference %d must exist", ref)
		}
	}
}

func TestInvariantsHoldOnFreshAndBuiltTrees(t *testing.T) {
	tree := newInitialTree(automaton.NewStateSet(1, 2, 3))
	invariantsHold(t, tree, 100)

	c1 := tree.addChild(tree.root, automaton.NewStateSet(1), White)
	tree.addChild(tree.root, automaton.NewStateSet(2, 3), White)
	tree.addChild(c1, automaton.NewStateSet(1), White)
	invariantsHold(t, tree, 100)
}
