// Package learner implements the ECHL (error-driven competitive Hebbian
// learning) step: given one input signal, it finds the two nearest
// vertices, connects or refreshes the edge between them, refines the local
// triangulation, moves the winner and its neighbours toward the signal, and
// ages/prunes edges.
//
// Package errors are logged rather than returned where spec.md §7 classifies
// the condition as an "oracle malfunction" (the NN-index returning fewer
// than two candidates on a populated graph) — the step is aborted and Step
// returns nil, so the run loop continues.
package learner

import (
	"errors"
	"log"
)

// ErrDimMismatch is a precondition violation (spec.md §7): the input
// signal's dimensionality does not match the graph's configured dim.
var ErrDimMismatch = errors.New("learner: input signal dimension mismatch")

var logger = log.Default()

// Option configures a Learner at construction time.
type Option func(*Learner)

// WithEpsW sets the winner learning rate ε_w (spec.md §4.L step 6).
func WithEpsW(epsW float64) Option {
	return func(l *Learner) { l.epsW = epsW }
}

// WithEpsN sets the neighbour learning rate ε_n (spec.md §4.L step 6).
func WithEpsN(epsN float64) Option {
	return func(l *Learner) { l.epsN = epsN }
}

// WithBeta sets the per-step error decay β (spec.md §9 lazy β-decay).
// Changing β rebuilds the precomputed power tables.
func WithBeta(beta float64) Option {
	return func(l *Learner) { l.beta = beta }
}

// WithAgeMax sets the edge age at which an edge is pruned (spec.md §4.L
// step 8).
func WithAgeMax(ageMax int) Option {
	return func(l *Learner) { l.ageMax = ageMax }
}

// WithLambda sets the insertion period λ, used only to size the first
// β-power table (spec.md §9: "a table of β^k for k ∈ [0, λ]"). The
// Inserter owns its own copy of λ for scheduling; this one exists purely
// for table sizing.
func WithLambda(lambda int) Option {
	return func(l *Learner) { l.lambda = lambda }
}

// WithH sets the obstacle-repulsion radius h (spec.md §4.L: "if ξ is
// within a configured h of any OBST vertex, skip the step entirely").
// Stored squared internally to avoid a sqrt per candidate.
func WithH(h float64) Option {
	return func(l *Learner) { l.hSq = h * h }
}

// WithFaceEmission enables the optional surface variant's face-emission
// step (spec.md §4.L step 5), instantiating up to two triangular
// core.Face values per step.
func WithFaceEmission() Option {
	return func(l *Learner) { l.faceEmission = true }
}
