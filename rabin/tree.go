package rabin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nihei9/omegarabin/automaton"
)

// Color is the three-valued tag spec.md §3 assigns to a tree node,
// modelled as one enumerated type rather than a bare bool pair.
// String switches over all three values; the macro-step compares
// colours with ==.
type Color int

const (
	White Color = iota
	Red
	Green
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Red:
		return "red"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// NodeID is a monotonically increasing identifier, unique within one
// Tree, allocated in creation order. Age order among siblings (spec.md
// §3) falls directly out of comparing NodeIDs, so no separate age
// field is needed (spec.md §9).
type NodeID uint32

const nodeIDNil NodeID = 0

// node is a tree node. All cross-references — parent, children, A-set,
// R-set — are NodeIDs resolved through the owning Tree's arena, never
// direct pointers, so that a cascading delete only has to rewrite
// integer sets (spec.md §9).
type node struct {
	id     NodeID
	parent NodeID
	label  automaton.StateSet
	// children is ordered by age: older siblings first. Because IDs
	// are allocated monotonically, this is always a NodeID-ascending
	// slice, and is kept that way by every mutator in this file.
	children []NodeID
	color    Color
	aSet     map[NodeID]struct{}
	rSet     map[NodeID]struct{}
}

func newNode(id, parent NodeID, label automaton.StateSet) *node {
	return &node{
		id:       id,
		parent:   parent,
		label:    label,
		color:    White,
		aSet:     map[NodeID]struct{}{},
		rSet:     map[NodeID]struct{}{},
	}
}

func (n *node) clone() *node {
	c := &node{
		id:       n.id,
		parent:   n.parent,
		label:    n.label.Clone(),
		children: append([]NodeID(nil), n.children...),
		color:    n.color,
		aSet:     make(map[NodeID]struct{}, len(n.aSet)),
		rSet:     make(map[NodeID]struct{}, len(n.rSet)),
	}
	for id := range n.aSet {
		c.aSet[id] = struct{}{}
	}
	for id := range n.rSet {
		c.rSet[id] = struct{}{}
	}
	return c
}

// Tree is a labelled tree: a macro-state of the output automaton
// (spec.md §3, §4.4). Nodes live in an arena keyed by NodeID, following
// the design note in spec.md §9 ("implement nodes as records in an
// arena... all cross-references are IDs, never direct pointers").
type Tree struct {
	root   NodeID
	nodes  map[NodeID]*node
	nextID NodeID
}

// newInitialTree builds the single-node initial macro-state of spec.md
// §4.4.1: one root labelled with the input automaton's initial states,
// empty A-/R-sets, no children, white.
func newInitialTree(initial automaton.StateSet) *Tree {
	t := &Tree{
		nodes:  map[NodeID]*node{},
		nextID: 1,
	}
	root := t.allocNode(nodeIDNil, initial)
	t.root = root
	return t
}

func (t *Tree) allocNode(parent NodeID, label automaton.StateSet) NodeID {
	id := t.nextID
	t.nextID++
	t.nodes[id] = newNode(id, parent, label)
	return id
}

// clone deep-copies the tree so a macro-step can mutate a working copy
// without disturbing the macro-state already stored in the output
// automaton (spec.md §4.4.2: "all steps operate on a working copy T'
// of T").
func (t *Tree) clone() *Tree {
	c := &Tree{
		root:   t.root,
		nodes:  make(map[NodeID]*node, len(t.nodes)),
		nextID: t.nextID,
	}
	for id, n := range t.nodes {
		c.nodes[id] = n.clone()
	}
	return c
}

// nodeIDs returns every live node ID in the tree, in ascending
// (= age, = pre-order-compatible-for-siblings) order.
func (t *Tree) nodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *Tree) get(id NodeID) *node {
	return t.nodes[id]
}

// children returns id's ordered (age order) child list.
func (t *Tree) children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// addChild appends a brand-new, strictly-youngest child to parent with
// the given label and colour, preserving age order (spec.md §4.4.2
// Step 3: "appended to the child list... node ID is strictly greater
// than any previous ID").
func (t *Tree) addChild(parent NodeID, label automaton.StateSet, color Color) NodeID {
	id := t.allocNode(parent, label)
	t.nodes[id].color = color
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// deleteNode cascades: it removes id from its parent's child list and
// purges id from every other node's A-/R-sets, then recursively deletes
// id's own subtree (spec.md §3 "ownership and lifecycle").
func (t *Tree) deleteNode(id NodeID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	for _, child := range append([]NodeID(nil), n.children...) {
		t.deleteNode(child)
	}
	if parent, ok := t.nodes[n.parent]; ok {
		parent.children = removeID(parent.children, id)
	}
	for _, other := range t.nodes {
		delete(other.aSet, id)
		delete(other.rSet, id)
	}
	delete(t.nodes, id)
}

func removeID(ids []NodeID, target NodeID) []NodeID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// nodeCount reports the tree's current size, used against
// Limits.MaxNodesPerTree (T6).
func (t *Tree) nodeCount() int {
	return len(t.nodes)
}

// hasColor scans the whole tree for a node of colour c; used both by marking (spec.md
// §4.4.3) and by the output acceptance condition (spec.md §4.4.4).
func (t *Tree) hasColor(c Color) bool {
	for _, n := range t.nodes {
		if n.color == c {
			return true
		}
	}
	return false
}

// signature computes the deterministic string spec.md §4.4.3
// describes, after first canonicalising node IDs by a pre-order walk
// (spec.md §9's open question: the source signature embeds raw node
// IDs and is therefore sensitive to allocation order, not just to tree
// shape; this implementation renumbers nodes 0..N-1 in pre-order — child
// lists already carry age order — before hashing, so two structurally
// identical trees with different underlying NodeIDs collapse to the
// same macro-state, fixing the divergence flagged in spec.md §9).
func (t *Tree) signature() string {
	renumber := map[NodeID]int{}
	var walk func(id NodeID)
	var b strings.Builder
	next := 0
	walk = func(id NodeID) {
		renumber[id] = next
		next++
	}
	var preorder func(id NodeID)
	preorder = func(id NodeID) {
		walk(id)
		n := t.nodes[id]
		fmt.Fprintf(&b, "%d:%s:%s;", renumber[id], n.label.Sorted(), n.color)
		for _, child := range n.children {
			preorder(child)
		}
	}
	preorder(t.root)
	return b.String()
}

// String renders a human-readable dump of the tree, the Go-idiom
// replacement for the original construction's TreeNode::ToString() /
// LabeledTree debug dump (see SPEC_FULL.md §3.6), routed through the
// injectable Logger rather than std::cout.
func (t *Tree) String() string {
	var b strings.Builder
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		n := t.nodes[id]
		fmt.Fprintf(&b, "%s node#%d{states=%v color=%s aSet=%v rSet=%v}\n",
			strings.Repeat("  ", depth), id, n.label.Sorted(), n.color, sortedIDs(n.aSet), sortedIDs(n.rSet))
		for _, child := range n.children {
			walk(child, depth+1)
		}
	}
	walk(t.root, 0)
	return b.String()
}

func sortedIDs(set map[NodeID]struct{}) []NodeID {
	out := make([]NodeID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
