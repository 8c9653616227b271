// Package gnp wires the growing-neural-graph family into a single engine:
//
//   - a graph store with bounded vertex degree (core)
//   - a pluggable nearest-neighbour index (nnindex)
//   - a max-error priority queue driving periodic growth (errheap)
//   - a FREE/OBST/NONE class manager (classes)
//   - the error-driven competitive Hebbian learning step (learner)
//   - the periodic edge-split growth step, with an optional cut-subnet
//     planning variant (inserter)
//   - a Dijkstra-style admissible-vertex path extractor (pathplan)
//   - the four-callback contract with the outside world (oracle)
//
// Under the hood, Engine.Run drives one learner.Step per input signal and,
// every λ steps, one inserter.Insert — exactly the outer loop spec.md §5
// describes, expressed as a single Go loop honoring both ctx.Done() and
// ops.Terminate. Engine.FindPath and Engine.DumpSVT/LoadSVT expose the
// read side: extracting a refined path and snapshotting the graph to the
// line-oriented SVT text format, respectively.
//
// Quick example:
//
//	e, err := gnp.New(2, gnp.WithLambda(50), gnp.WithAgeMax(20))
//	if err != nil {
//		log.Fatal(err)
//	}
//	e.AddOps(oracle.Ops{
//		InputSignal: randomSampler,
//		Eval:        collisionCheck,
//		Terminate:   func() bool { return e.Steps() >= 5000 },
//	})
//	if err := e.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//	path, err := e.FindPath(start, goal)
package gnp
