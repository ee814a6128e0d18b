package commutable

// Problem is the minimal contract a set system must satisfy.
//
// Implementations describe which subsets of the ground set {0, …, N-1}
// are solutions, and how to solve the restricted subproblem the tree
// walker uses to propose children. Everything else (admission checks,
// seed tests, candidate streams, auxiliary state) has a default and can
// be overridden through the optional interfaces below.
type Problem interface {
	// Size returns the ground-set size N.
	Size() int

	// IsGood reports whether s is a valid (not necessarily maximal)
	// solution. s must not be modified.
	IsGood(s []int) bool

	// RestrictedProblem enumerates the solutions of the subproblem
	// induced by s together with a new boundary element v, invoking emit
	// for each one as an unordered node list. Enumeration stops early
	// when emit returns false. Every emitted solution must contain v.
	RestrictedProblem(s []int, v int, emit func(sol []int) bool)
}

// CanAdder lets a problem decide cheaply whether v can be appended to s
// while preserving IsGood. The aux value is the problem's auxiliary
// state for the active completion (see AuxProvider).
//
// The default rebuilds s ∪ {v} and calls IsGood.
type CanAdder interface {
	CanAdd(s []int, aux any, v int) bool
}

// Seeder lets a problem decide which nodes may serve as seeds.
// When s is nil, v is being tested as a root seed of the whole
// enumeration; otherwise v is tested as a seed of the solution s.
//
// The default accepts v iff IsGood({v}).
type Seeder interface {
	IsSeed(v int, s []int) bool
}

// CandStreamer exposes the candidate stream opened when newElem enters a
// solution. The engine indexes each stream by integer position: it calls
// CompleteCand with increasing idx until ok is false. stream identifies
// the origin iterator and is stable for the lifetime of a completion.
// When ground is non-nil, only nodes from ground may be returned.
//
// Streams must be stable with respect to (newElem, idx); they need not
// be sorted, but sorted streams give the engine its best-case ordering.
//
// The default yields the whole ground set (or all of [0, N) when ground
// is nil) regardless of newElem.
type CandStreamer interface {
	CompleteCand(ground []int, newElem, stream, idx int) (node int, ok bool)
}

// RestrictedCandser yields every node outside s that is a legal boundary
// element for the tree walker. Order is not significant.
//
// The default yields all nodes of the ground set not in s.
type RestrictedCandser interface {
	RestrictedCands(s []int, level []int32, emit func(v int) bool)
}

// AuxProvider manages opaque auxiliary state used to accelerate CanAdd.
// InitAux is called once per completion pass with the starting solution;
// UpdateAux is called after each insertion, with s already containing
// the new element at position pos. The default carries no state.
type AuxProvider interface {
	InitAux(s []int) any
	UpdateAux(aux any, s []int, pos int)
}

// MultiRestricter reports whether RestrictedProblem may return more than
// one solution for the same (s, v). When true, the walker performs an
// extra disambiguation completion per child candidate.
//
// The default is true, which is always safe.
type MultiRestricter interface {
	RestrMultiple() bool
}
