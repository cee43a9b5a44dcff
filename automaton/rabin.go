package automaton

// RabinPair is one (R, I) pair of a Rabin acceptance condition
// (spec.md §3): an infinite run is accepting with respect to this pair
// iff it visits R only finitely often and I infinitely often.
type RabinPair struct {
	Name string
	R    StateSet
	I    StateSet
}

// NewRabinPair builds a pair from the given R and I state sets. Either
// set, or both, may be empty — spec.md §7 treats empty acceptance data
// as valid, not an error.
func NewRabinPair(name string, r, i StateSet) RabinPair {
	if r == nil {
		r = NewStateSet()
	}
	if i == nil {
		i = NewStateSet()
	}
	return RabinPair{Name: name, R: r, I: i}
}

// RabinAcceptance is an ordered sequence of Rabin pairs. An empty
// sequence is a valid acceptance condition meaning "every infinite run
// is rejected by definition has no witnessing pair" (spec.md §3).
type RabinAcceptance struct {
	Pairs []RabinPair
}

func NewRabinAcceptance(pairs ...RabinPair) RabinAcceptance {
	return RabinAcceptance{Pairs: pairs}
}

func (a RabinAcceptance) Empty() bool {
	return len(a.Pairs) == 0
}

// emptyPairSentinel is substituted for an empty acceptance sequence
// during product lifting (spec.md §4.1) so the nested (j,k) enumeration
// still emits at least one pair per side.
var emptyPairSentinel = RabinPair{Name: "", R: NewStateSet(), I: NewStateSet()}

// PairsOrSentinel returns a's pairs, or a single synthetic empty pair
// if a has none — spec.md §4.1's rule for RabinProduct's nested (j,k)
// enumeration, exported so rabin.Product can use it across the package
// boundary between the collaborator container and the core transforms.
func (a RabinAcceptance) PairsOrSentinel() []RabinPair {
	if a.Empty() {
		return []RabinPair{emptyPairSentinel}
	}
	return a.Pairs
}
