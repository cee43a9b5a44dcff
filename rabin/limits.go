package rabin

// Limits collects the safety caps spec.md §3 (T6), §4.2 and §4.4.5
// require of an implementation that must terminate in practice even
// though the underlying construction is only guaranteed to terminate
// in a doubly-exponential bound. Hitting a soft cap produces a Warning
// and a partial result (spec.md §7); hitting MaxControlPatternEvents
// is the one hard cap and returns a CapacityError instead, because
// spec.md §4.2 explicitly calls for "a documented error on overflow."
type Limits struct {
	// MaxNodesPerTree bounds (T6): the total number of nodes any one
	// labelled tree may hold.
	MaxNodesPerTree int

	// MaxChildrenPerNode bounds how many children Step 3 of the
	// macro-step (spec.md §4.4.2) may attach to a single node.
	MaxChildrenPerNode int

	// MaxNewChildrenPerMacroStep bounds the total number of children
	// created across every node during one macro-step.
	MaxNewChildrenPerMacroStep int

	// MaxStatesPerNewChild bounds the size of a new child's
	// state-label.
	MaxStatesPerNewChild int

	// MaxMacroStates is checked each time PseudoDet dequeues a
	// macro-state: once more than this many distinct macro-states have
	// been discovered, exploration stops with a Warning and a partial
	// result (spec.md §4.4.5). Macro-states discovered while expanding
	// the last dequeued one are kept, so the result can hold up to
	// |Σ| more than this.
	MaxMacroStates int

	// MaxMacroSteps bounds the number of (macro-state, event)
	// macro-steps PseudoDet may execute.
	MaxMacroSteps int

	// MaxControlPatternEvents bounds |C| in ExpandToControlPatterns:
	// the augmented alphabet has size |Σ|·2^|C|, so a caller asking
	// for more controllable events than this gets a CapacityError
	// instead of attempting to materialise an astronomically large
	// alphabet.
	MaxControlPatternEvents int
}

// DefaultLimits returns the caps this package uses unless overridden.
// They are generous enough for the small supervisory-synthesis models
// spec.md §4.1 says the product construction targets, while still
// bounding worst-case memory for pathological inputs.
func DefaultLimits() Limits {
	return Limits{
		MaxNodesPerTree:            100,
		MaxChildrenPerNode:         32,
		MaxNewChildrenPerMacroStep: 256,
		MaxStatesPerNewChild:       10000,
		MaxMacroStates:             100000,
		MaxMacroSteps:              1000000,
		MaxControlPatternEvents:    20,
	}
}

// Option configures a pipeline call. All four transforms accept
// options and honour WithLogger; WithLimits affects PseudoDet and
// ExpandToControlPatterns, and WithTreeDump affects only PseudoDet.
type Option func(*config)

type config struct {
	limits    Limits
	logger    Logger
	dumpTrees bool
}

func newConfig(opts []Option) *config {
	c := &config{
		limits: DefaultLimits(),
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLimits overrides the safety caps.
func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}

// WithLogger installs the diagnostic sink (spec.md §6). The default is
// NopLogger, i.e. silence.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTreeDump makes PseudoDet log the full labelled tree behind every
// newly discovered macro-state via the configured Logger's Debugf, the
// Go-idiom replacement for the original construction's
// TreeNode::ToString()/LabeledTree debug dump (see SPEC_FULL.md §3.6).
// Has no effect unless a Logger is also installed with WithLogger.
func WithTreeDump() Option {
	return func(c *config) { c.dumpTrees = true }
}
