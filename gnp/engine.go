package gnp

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/katalvlaran/gnp/classes"
	"github.com/katalvlaran/gnp/core"
	"github.com/katalvlaran/gnp/errheap"
	"github.com/katalvlaran/gnp/inserter"
	"github.com/katalvlaran/gnp/learner"
	"github.com/katalvlaran/gnp/nnindex"
	"github.com/katalvlaran/gnp/oracle"
	"github.com/katalvlaran/gnp/pathplan"
	"github.com/katalvlaran/gnp/svt"
)

// ErrOpsIncomplete is a precondition violation: Run was called before
// AddOps supplied both InputSignal and Eval.
var ErrOpsIncomplete = errors.New("gnp: InputSignal and Eval must both be set before Run")

var logger = log.Default()

// Engine ties a growing graph, its nearest-neighbour index, error heap
// and class manager to the learner and inserter that mutate them, plus
// the oracle callbacks that drive each step (spec.md §2's data-flow: the
// oracle feeds the learner, the learner and inserter grow the graph, the
// path extractor reads it back out).
type Engine struct {
	dim int
	cfg config

	g   *core.Graph
	nn  nnindex.Index
	cm  *classes.Manager
	eh  *errheap.Heap
	lrn *learner.Learner
	ins *inserter.Inserter

	ops   oracle.Ops
	steps int64
}

// New constructs an Engine for a dim-dimensional configuration space,
// applying opts over the spec.md §6 default parameters.
func New(dim int, opts ...Option) (*Engine, error) {
	if dim <= 0 {
		return nil, ErrInvalidDim
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := core.NewGraph(core.WithMaxDegree(cfg.rMax))
	nn := newIndex(cfg)
	cm := classes.NewManager()
	eh := errheap.New()

	lrnOpts := append(cfg.learnerOptions(), cfg.learnerFaceOption()...)
	lrn := learner.New(g, nn, cm, eh, lrnOpts...)
	ins := inserter.New(g, nn, cm, eh, cfg.inserterOptions()...)

	return &Engine{
		dim: dim,
		cfg: cfg,
		g:   g,
		nn:  nn,
		cm:  cm,
		eh:  eh,
		lrn: lrn,
		ins: ins,
		ops: oracle.DefaultOps(),
	}, nil
}

func newIndex(cfg config) nnindex.Index {
	switch cfg.nnKind {
	case nnGrid:
		return nnindex.NewGrid(cfg.gridCell)
	case nnVPTree:
		return nnindex.NewVPTree(cfg.vpEffort)
	default:
		return nnindex.NewLinear()
	}
}

// AddOps installs the oracle callbacks driving Run. Fields left zero on
// ops fall back to oracle.DefaultOps' no-ops, except InputSignal and
// Eval, which Run requires to be set.
func (e *Engine) AddOps(ops oracle.Ops) {
	defaults := oracle.DefaultOps()
	if ops.Terminate == nil {
		ops.Terminate = defaults.Terminate
	}
	if ops.Callback == nil {
		ops.Callback = defaults.Callback
	}
	e.ops = ops
}

// Steps returns the number of learner steps run so far.
func (e *Engine) Steps() int64 { return e.steps }

// Graph exposes the underlying graph store for read-only inspection
// (diagnostics, diag.NewAdjacencyMatrix, custom visualization).
func (e *Engine) Graph() *core.Graph { return e.g }

// Classes exposes the FREE/OBST class manager for read-only inspection
// and for driving Engine.Tournament.
func (e *Engine) Classes() *classes.Manager { return e.cm }

// Tournament draws up to the configured WithTournament sample size of
// distinct vertex IDs from the FREE or OBST class (spec.md §6's
// `tournament` parameter), via classes.Manager.Tournament and the
// WithRand/WithSeed-configured RNG.
func (e *Engine) Tournament(class core.Class) []string {
	return e.cm.Tournament(class, e.cfg.tournament, e.cfg.rng)
}

// Run drives the ECHL step loop (spec.md §5): draw a signal, run one
// learner.Step, and every λ steps run one inserter.Insert, until ctx is
// canceled or ops.Terminate reports true. Both mechanisms are honored;
// either can stop the loop.
func (e *Engine) Run(ctx context.Context) error {
	if e.ops.InputSignal == nil || e.ops.Eval == nil {
		return ErrOpsIncomplete
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if e.ops.Terminate() {
			return nil
		}

		xi := e.ops.InputSignal()
		if len(xi) != e.dim {
			panic("gnp: input signal dimension mismatch")
		}

		memo := oracle.NewMemo(e.ops.Eval)
		// Learner already logs oracle malfunctions and aborts just the
		// one step (spec.md §7); the run loop continues regardless.
		_ = e.lrn.Step(xi, memo.Eval)
		e.steps++

		if e.cfg.lambda > 0 && e.steps%int64(e.cfg.lambda) == 0 {
			if err := e.ins.Insert(memo.Eval); err != nil && !errors.Is(err, inserter.ErrHeapEmpty) {
				logger.Printf("gnp: insert at step %d: %v", e.steps, err)
			}
		}

		e.ops.ShouldNotify(e.steps)
	}
}

// FindPath extracts a refined path between start and goal through the
// current graph (spec.md §4.P). It may be called concurrently with
// nothing else touching the Engine — Run must not be active at the same
// time, since both mutate the shared graph.
func (e *Engine) FindPath(start, goal []float64) (*pathplan.Path, error) {
	if len(start) != e.dim || len(goal) != e.dim {
		panic("gnp: FindPath input dimension mismatch")
	}
	return pathplan.FindPath(e.g, e.nn, e.cm, e.eh, start, goal, e.ops.Eval, e.cfg.pathplanOptions()...)
}

// DumpSVT writes the current graph to w in the SVT text format under the
// given name (spec.md §6).
func (e *Engine) DumpSVT(w io.Writer, name string) error {
	return svt.Dump(w, e.g, name)
}

// LoadSVT parses an SVT text dump into a fresh *core.Graph, returning the
// dumped name alongside it. It does not attach to any Engine — callers
// that need to resume learning from a loaded graph construct an Engine
// independently and substitute its graph via the lower-level packages.
func LoadSVT(r io.Reader) (*core.Graph, string, error) {
	return svt.Load(r)
}
