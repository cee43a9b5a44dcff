package rabin

import (
	"github.com/google/uuid"
	"github.com/nihei9/omegarabin/automaton"
)

// DetResult is the output of PseudoDet: the deterministic automaton
// plus whatever Warnings were raised while hitting a safety cap
// (spec.md §7).
type DetResult struct {
	Automaton *automaton.RabinAutomaton
	Warnings  []Warning
	RunID     string

	// trees maps every discovered macro-state back to the labelled
	// tree it was built from. Unexported: it exists so the package's
	// own tests can assert invariants (T1)-(T5) (spec.md §8 P1) against
	// trees PseudoDet actually produced, not just hand-built fixtures.
	trees map[automaton.State]*Tree
}

// macroState is one entry in the exploration worklist: a labelled tree
// together with the output automaton State that represents it.
type macroState struct {
	tree *Tree
	st   automaton.State
}

// PseudoDet determinises g via labelled-tree pseudo-determinisation
// (spec.md §4.4), a Safra-style construction specialised for the Rabin
// acceptance condition. The worklist/BFS shape — a set of known
// signatures, a queue of unchecked macro-states, one output state
// allocated per newly discovered signature — follows the teacher's genLR0Automaton
// (grammar/lr0.go), with the "kernel" of LR automaton construction
// replaced by a labelled tree and kernel-hashing replaced by tree
// signature canonicalisation.
func PseudoDet(g *automaton.RabinAutomaton, opts ...Option) (*DetResult, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	runID := uuid.NewString()
	cfg.logger.Debugf("PseudoDet(%s) run=%s", g.Name, runID)

	out := automaton.New("PseudoDet("+g.Name+")", automaton.NewEventTable(), automaton.NewStateTable())
	for _, ev := range g.Alphabet() {
		attr := g.Events.Reader().Attr(ev)
		name := g.EventName(ev)
		outEv := out.Events.Writer().Register(name, attr)
		out.AddEvent(outEv)
	}
	silentEv, hasSilent := g.Events.Reader().SilentEvent()

	if len(g.InitialStates()) == 0 {
		cfg.logger.Debugf("PseudoDet(%s) run=%s: no initial states, returning empty automaton", g.Name, runID)
		return &DetResult{Automaton: out, RunID: runID}, nil
	}

	res := &DetResult{RunID: runID}

	initTree := newInitialTree(g.InitialStateSet())

	sig2State := map[string]automaton.State{}
	tree2State := map[automaton.State]*Tree{}

	newMacroState := func(t *Tree) (automaton.State, bool) {
		sig := t.signature()
		if st, ok := sig2State[sig]; ok {
			return st, false
		}
		st := out.States.Writer().New()
		out.AddState(st)
		sig2State[sig] = st
		tree2State[st] = t
		if cfg.dumpTrees {
			cfg.logger.Debugf("PseudoDet(%s) run=%s tree for state %v:\n%s", g.Name, runID, st, t.String())
		}
		if t.hasColor(Green) && !t.hasColor(Red) {
			out.SetMarked(st)
		}
		return st, true
	}

	initState, _ := newMacroState(initTree)
	out.SetInitial(initState)

	queue := []macroState{{tree: initTree, st: initState}}
	steps := 0

stepLoop:
	for len(queue) > 0 {
		if len(sig2State) > cfg.limits.MaxMacroStates {
			res.Warnings = append(res.Warnings, Warning{Cap: CapMaxMacroStates, Detail: "exploration queue not drained", RunID: runID})
			break
		}

		cur := queue[0]
		queue = queue[1:]

		for _, ev := range g.Alphabet() {
			if hasSilent && ev == silentEv {
				continue
			}
			if steps >= cfg.limits.MaxMacroSteps {
				res.Warnings = append(res.Warnings, Warning{Cap: CapMaxMacroSteps, Detail: "macro-step budget exhausted", RunID: runID})
				break stepLoop
			}
			steps++
			cfg.logger.Debugf("PseudoDet(%s) run=%s macro-step %d: state %v on %s", g.Name, runID, steps, cur.st, g.EventName(ev))

			next, warns := macroStep(g, cur.tree, ev, cfg.limits, runID)
			res.Warnings = append(res.Warnings, warns...)
			if next == nil {
				// No state of cur.tree has a successor on ev: the
				// label-update step produced an empty root label,
				// meaning this event is simply not enabled from this
				// macro-state.
				continue
			}

			st, isNew := newMacroState(next)
			outEv, ok := out.Events.Reader().ByName(g.EventName(ev))
			if !ok {
				outEv = ev
			}
			out.AddTransition(cur.st, outEv, st)
			if isNew {
				queue = append(queue, macroState{tree: next, st: st})
			}
		}
	}

	globalR := automaton.NewStateSet()
	globalI := automaton.NewStateSet()
	for st, t := range tree2State {
		if t.hasColor(Red) {
			globalR.Add(st)
		}
		if t.hasColor(Green) {
			globalI.Add(st)
		}
	}
	if len(globalR) > 0 && len(globalI) > 0 {
		out.Acceptance = automaton.NewRabinAcceptance(automaton.NewRabinPair("rabin", globalR, globalI))
	}

	res.Automaton = out
	res.trees = tree2State
	return res, nil
}

// macroStep runs the nine steps of spec.md §4.4.2 against tree t for
// event ev, returning the successor tree. A nil return means ev is not
// enabled from any node's label (the root's label became empty after
// Step 2), mirroring "no outgoing transition" rather than an error.
func macroStep(g *automaton.RabinAutomaton, t *Tree, ev automaton.Event, limits Limits, runID string) (*Tree, []Warning) {
	work := t.clone()
	var warnings []Warning

	silentEv, hasSilent := g.Events.Reader().SilentEvent()
	evIsSilent := hasSilent && ev == silentEv

	// Step 1 — reset colours.
	for _, id := range work.nodeIDs() {
		work.get(id).color = White
	}

	// Step 2 — state-label update.
	for _, id := range work.nodeIDs() {
		n := work.get(id)
		newLabel := automaton.NewStateSet()
		for _, q := range n.label.Sorted() {
			for _, q2 := range g.Next(q, ev) {
				newLabel.Add(q2)
			}
			if evIsSilent {
				newLabel.Add(q)
			}
		}
		n.label = newLabel
	}
	if len(work.get(work.root).label) == 0 {
		return nil, nil
	}

	// Step 3 — acceptance-driven branching.
	newChildCount := 0
stepThree:
	for _, id := range work.nodeIDs() {
		n := work.get(id)
		for _, pair := range g.Acceptance.Pairs {
			wset := n.label.Minus(pair.I)
			if len(wset) == 0 {
				continue
			}
			subsumed := false
			for _, childID := range work.children(id) {
				if work.get(childID).label.Intersects(wset) {
					subsumed = true
					break
				}
			}
			if subsumed {
				continue
			}
			if len(work.children(id)) >= limits.MaxChildrenPerNode {
				warnings = append(warnings, Warning{Cap: CapMaxChildren, Detail: "node exceeded max children", RunID: runID})
				continue
			}
			if newChildCount >= limits.MaxNewChildrenPerMacroStep {
				warnings = append(warnings, Warning{Cap: CapMaxNewChildren, Detail: "macro-step exceeded max new children", RunID: runID})
				break stepThree
			}
			if len(wset) > limits.MaxStatesPerNewChild {
				warnings = append(warnings, Warning{Cap: CapMaxNodes, Detail: "new child state-label exceeded max size", RunID: runID})
				continue
			}
			if work.nodeCount() >= limits.MaxNodesPerTree {
				warnings = append(warnings, Warning{Cap: CapMaxNodes, Detail: "tree exceeded max nodes", RunID: runID})
				break stepThree
			}
			work.addChild(id, wset, Red)
			newChildCount++
		}
	}

	// Step 4 — sibling disjointness (older-wins).
	for _, id := range work.nodeIDs() {
		children := work.children(id)
		for i := 1; i < len(children); i++ {
			younger := work.get(children[i])
			for j := 0; j < i; j++ {
				older := work.get(children[j])
				younger.label = younger.label.Minus(older.label)
			}
		}
	}

	// Step 5 — prune empties.
	for _, id := range work.nodeIDs() {
		if id == work.root {
			continue
		}
		n, ok := work.nodes[id]
		if !ok {
			continue
		}
		if len(n.label) == 0 {
			work.deleteNode(id)
		}
	}

	// Step 6 — red breakpoint.
	for _, id := range work.nodeIDs() {
		n, ok := work.nodes[id]
		if !ok {
			continue
		}
		union := automaton.NewStateSet()
		for _, childID := range n.children {
			union = union.Union(work.get(childID).label)
		}
		if len(union) == 0 || !setEqual(union, n.label) {
			continue
		}
		n.color = Red
		for _, childID := range append([]NodeID(nil), n.children...) {
			work.deleteNode(childID)
		}
		n.children = nil
		n.aSet = map[NodeID]struct{}{}
		n.rSet = map[NodeID]struct{}{}
	}

	// Step 7 — A/R-set cleanup.
	for _, id := range work.nodeIDs() {
		n := work.get(id)
		for ref := range n.aSet {
			if _, ok := work.nodes[ref]; !ok {
				delete(n.aSet, ref)
			}
		}
		for ref := range n.rSet {
			if _, ok := work.nodes[ref]; !ok {
				delete(n.rSet, ref)
			}
		}
	}

	// Step 8 — green promotion.
	for _, id := range work.nodeIDs() {
		n := work.get(id)
		if n.color == Red {
			continue
		}
		if len(n.aSet) == 0 {
			n.color = Green
			n.aSet = n.rSet
			n.rSet = map[NodeID]struct{}{}
		}
	}

	// Step 9 — R-set update from red nodes.
	redIDs := map[NodeID]struct{}{}
	for _, id := range work.nodeIDs() {
		if work.get(id).color == Red {
			redIDs[id] = struct{}{}
		}
	}
	for _, id := range work.nodeIDs() {
		n := work.get(id)
		if n.color == Red {
			continue
		}
		for rid := range redIDs {
			n.rSet[rid] = struct{}{}
		}
	}

	return work, warnings
}

func setEqual(a, b automaton.StateSet) bool {
	if len(a) != len(b) {
		return false
	}
	for st := range a {
		if !b.Has(st) {
			return false
		}
	}
	return true
}
