package gnp

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/gnp/inserter"
	"github.com/katalvlaran/gnp/learner"
	"github.com/katalvlaran/gnp/pathplan"
)

// ErrInvalidDim is a precondition violation (spec.md §7): dim must be
// positive for a configuration space to make sense.
var ErrInvalidDim = errors.New("gnp: dim must be positive")

// nnKind selects the nearest-neighbour index implementation backing an
// Engine (spec.md §6's "nn.type and its parameters").
type nnKind int

const (
	nnLinear nnKind = iota
	nnGrid
	nnVPTree
)

// config collects the new(params) fields spec.md §6 enumerates, before
// they are split across learner.Option/inserter.Option/pathplan.Option at
// construction time.
type config struct {
	epsW, epsN   float64
	alpha, beta  float64
	ageMax       int
	rMax         int
	lambda       int
	h            float64
	warmStart    int
	seedTriplets bool
	faceEmission bool
	tournament   int
	maxDepthFree int
	rng          *rand.Rand

	nnKind   nnKind
	gridCell float64
	vpEffort int
}

func defaultConfig() config {
	return config{
		epsW: 0.2, epsN: 0.006,
		alpha: 0.5, beta: 0.995,
		ageMax: 50, rMax: 6,
		lambda: 50, h: 0.1,
		warmStart: 0, tournament: 1, maxDepthFree: 1,
		nnKind: nnLinear, gridCell: 1.0, vpEffort: 1,
	}
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithEpsW sets the winner learning rate ε_w.
func WithEpsW(v float64) Option { return func(c *config) { c.epsW = v } }

// WithEpsN sets the neighbour learning rate ε_n.
func WithEpsN(v float64) Option { return func(c *config) { c.epsN = v } }

// WithAlpha sets the insertion error-decay factor α.
func WithAlpha(v float64) Option { return func(c *config) { c.alpha = v } }

// WithBeta sets the per-step error decay β.
func WithBeta(v float64) Option { return func(c *config) { c.beta = v } }

// WithAgeMax sets the edge age at which an edge is pruned.
func WithAgeMax(v int) Option { return func(c *config) { c.ageMax = v } }

// WithMaxDegree sets the per-vertex degree cap r_max.
func WithMaxDegree(v int) Option { return func(c *config) { c.rMax = v } }

// WithLambda sets the insertion period λ.
func WithLambda(v int) Option { return func(c *config) { c.lambda = v } }

// WithRefinementStep sets the path-refinement spatial resolution h.
func WithRefinementStep(v float64) Option { return func(c *config) { c.h = v } }

// WithWarmStart sets the vertex-count threshold enabling the planning
// variant's classify-and-cut-subnet behavior on insertion.
func WithWarmStart(v int) Option { return func(c *config) { c.warmStart = v } }

// WithSeedTriplets enables the "two coincident triplets" heuristic when
// cut-subnet leaves a newly inserted vertex isolated.
func WithSeedTriplets() Option { return func(c *config) { c.seedTriplets = true } }

// WithFaceEmission enables the learner's optional surface-variant face
// emission step.
func WithFaceEmission() Option { return func(c *config) { c.faceEmission = true } }

// WithMaxDepthFree sets how many hops beyond the FREE region a NONE
// vertex may still be admissible to a path (spec.md §4.P admissibility
// rule).
func WithMaxDepthFree(v int) Option { return func(c *config) { c.maxDepthFree = v } }

// WithTournament sets the random-sampling size used by Engine.Tournament,
// the per-class tournament selection spec.md §6's `tournament` parameter
// configures.
func WithTournament(v int) Option { return func(c *config) { c.tournament = v } }

// WithRand sets an explicit *rand.Rand source for Engine.Tournament,
// following builder.WithRand's convention: a nil rng is a no-op and
// leaves tournament sampling deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithSeed creates a new *rand.Rand seeded with v and installs it as the
// source for Engine.Tournament, following builder.WithSeed's convention
// for reproducible randomness.
func WithSeed(v int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(v)) }
}

// WithLinearIndex selects the brute-force nnindex.Linear backing (the
// default).
func WithLinearIndex() Option { return func(c *config) { c.nnKind = nnLinear } }

// WithGridIndex selects the bucketed nnindex.Grid backing, with the given
// cell size.
func WithGridIndex(cellSize float64) Option {
	return func(c *config) { c.nnKind = nnGrid; c.gridCell = cellSize }
}

// WithVPTreeIndex selects the gonum vp-tree-backed nnindex.VPTree backing,
// with the given rebuild effort.
func WithVPTreeIndex(effort int) Option {
	return func(c *config) { c.nnKind = nnVPTree; c.vpEffort = effort }
}

func (c config) learnerOptions() []learner.Option {
	return []learner.Option{
		learner.WithEpsW(c.epsW),
		learner.WithEpsN(c.epsN),
		learner.WithBeta(c.beta),
		learner.WithAgeMax(c.ageMax),
		learner.WithLambda(c.lambda),
		learner.WithH(c.h),
	}
}

func (c config) learnerFaceOption() []learner.Option {
	if !c.faceEmission {
		return nil
	}
	return []learner.Option{learner.WithFaceEmission()}
}

func (c config) inserterOptions() []inserter.Option {
	opts := []inserter.Option{
		inserter.WithAlpha(c.alpha),
		inserter.WithWarmStart(c.warmStart),
	}
	if c.seedTriplets {
		opts = append(opts, inserter.WithSeedTriplets(true))
	}
	return opts
}

func (c config) pathplanOptions() []pathplan.Option {
	return []pathplan.Option{
		pathplan.WithMaxDepthFree(c.maxDepthFree),
		pathplan.WithRefinementStep(c.h),
	}
}
