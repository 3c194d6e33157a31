package cetsp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gitrdm/gokando-cetsp/internal/parallel"
)

// Engine runs one branch-and-bound search (§4.5). Callers do not
// construct an Engine directly; Optimize builds, runs, and discards one
// per call.
type Engine struct {
	inst   *Instance
	opts   Options
	socp   SOCPOracle
	tsp    TSPOracle
	branch BranchStrategy
	rules  []PruningRule

	frontier  *Frontier
	stats     *Stats
	execStats *parallel.ExecutionStats
	ctx       context.Context

	incMu        sync.Mutex
	incumbent    Solution
	hasIncumbent bool

	reasonOnce sync.Once
	reason     Reason

	active int64 // atomic: workers currently processing a popped node
}

// Optimize runs one branch-and-bound search over inst with opts,
// returning the best trajectory found, a valid global lower bound on the
// optimum, and run statistics (§4.5, §5, §6).
//
// The zero Options is not useful; callers should start from
// DefaultOptions and override only what they need.
func Optimize(ctx context.Context, inst *Instance, opts Options) (Solution, float64, *Stats, error) {
	if err := inst.Validate(); err != nil {
		return Solution{}, 0, nil, err
	}

	socp := opts.SOCPOracle
	if socp == nil {
		socp = NewReferenceSOCPOracle()
	}
	tsp := opts.TSPOracle
	if tsp == nil {
		tsp = NewTwoOptTSPOracle()
	}

	watchdog := parallel.NewDeadlockDetector(30*time.Second, 5*time.Second)
	defer watchdog.Shutdown()
	execStats := parallel.NewExecutionStats()
	socp = newMonitoredSOCPOracle(socp, watchdog, execStats)

	registry := newStrategyRegistry()
	root, err := registry.root(opts.RootStrategy)
	if err != nil {
		return Solution{}, 0, nil, err
	}
	branch, err := registry.branch(opts.BranchStrategy)
	if err != nil {
		return Solution{}, 0, nil, err
	}
	search, err := registry.search(opts.SearchStrategy)
	if err != nil {
		return Solution{}, 0, nil, err
	}
	rules := make([]PruningRule, 0, len(opts.Rules))
	for _, name := range opts.Rules {
		r, err := registry.rule(name)
		if err != nil {
			return Solution{}, 0, nil, err
		}
		rules = append(rules, r)
	}

	numThreads := opts.NumThreads
	if numThreads <= 0 {
		numThreads = 1
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if opts.Timelimit > 0 {
		runCtx, cancel = context.WithTimeout(ctx, opts.Timelimit)
		defer cancel()
	}

	stats := NewStats()

	heuristic := NewAdaptiveHeuristic(socp, tsp)
	heuristic.Options = opts.Heuristic
	incumbentSol, heurErr := heuristic.Run(runCtx, inst)

	engine := &Engine{
		inst:      inst,
		opts:      opts,
		socp:      socp,
		tsp:       tsp,
		branch:    branch,
		rules:     rules,
		stats:     stats,
		execStats: execStats,
		ctx:       runCtx,
	}
	if heurErr == nil {
		engine.hasIncumbent = true
		engine.incumbent = incumbentSol
		stats.recordUpperBound(incumbentSol.Length)
	} else {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf("primal heuristic failed: %v", heurErr))
	}

	rootRng := rand.New(rand.NewSource(opts.Seed))
	rootPS, err := root.SelectRoot(runCtx, inst, socp, opts.FeasibilityTol, rootRng)
	if err != nil {
		stats.finish(ReasonCancelled)
		sol, _ := engine.incumbentSnapshot()
		return sol, engine.upperBound(), stats, err
	}
	rootNode := NewNode(rootPS, nil)

	engine.frontier = search.NewFrontier(numThreads, opts.Seed)
	engine.frontier.Push(0, []*Node{rootNode})

	watchDone := make(chan struct{})
	go func() {
		select {
		case <-runCtx.Done():
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
				engine.setReason(ReasonTimelimit)
			} else {
				engine.setReason(ReasonCancelled)
			}
			engine.frontier.Close()
		case <-watchDone:
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numThreads; w++ {
		wg.Add(1)
		go engine.worker(w, &wg)
	}
	wg.Wait()
	close(watchDone)

	finalLB := engine.frontier.GlobalLowerBound()
	if math.IsInf(finalLB, 1) {
		if sol, ok := engine.incumbentSnapshot(); ok {
			finalLB = sol.Length
		} else {
			finalLB = 0
		}
	}

	execStats.Finalize()
	stats.Execution = execStats
	drainStallWarnings(watchdog, stats)
	stats.finish(engine.reasonOrDefault())

	sol, ok := engine.incumbentSnapshot()
	if !ok {
		return Solution{}, finalLB, stats, fmt.Errorf("%w: search completed with no feasible solution", ErrInternalInvariant)
	}
	return sol, finalLB, stats, nil
}

// worker runs the per-thread pop/evaluate/branch loop of §4.5/§4.6 until
// the frontier is closed and drained.
func (e *Engine) worker(workerID int, wg *sync.WaitGroup) {
	defer wg.Done()
	rng := rand.New(rand.NewSource(e.opts.Seed + int64(workerID)*977 + 1))

	for {
		node, ok := e.frontier.Pop(workerID)
		if !ok {
			return
		}
		e.execStats.RecordQueueDepth(e.frontier.Len())
		active := atomic.AddInt64(&e.active, 1)
		e.execStats.RecordWorkerCount(int(active))
		e.processNode(workerID, node, rng)
		atomic.AddInt64(&e.active, -1)
		e.checkTermination()
	}
}

// processNode evaluates one popped node: runs the user callback, then
// checks pruning-by-rule, pruning-by-bound, and feasibility, in that
// order, before branching (§4.5, §4.7).
func (e *Engine) processNode(workerID int, node *Node, rng *rand.Rand) {
	node.State = NodeEvaluated
	e.stats.recordNodeExplored()
	e.stats.recordLowerBound(e.frontier.GlobalLowerBound())

	if e.opts.Callback != nil {
		e.opts.Callback(&Context{engine: e, node: node})
	}

	if node.pruned {
		node.State = NodePrunedByRule
		e.stats.recordPrunedByRule()
		return
	}

	if node.LowerBound >= (1-e.opts.OptimalityGap)*e.upperBound() {
		node.State = NodePrunedByBound
		e.stats.recordPrunedByBound()
		return
	}

	if node.Partial.IsFeasible() {
		node.State = NodeFeasible
		e.offerIncumbent(Solution{
			Order:      node.Partial.Order(),
			Trajectory: node.Partial.Trajectory(),
			Length:     node.Partial.Value(),
		})
		return
	}

	children := e.branchNode(node, rng)
	if len(children) == 0 {
		return
	}
	node.Children = children
	node.State = NodeBranched
	e.stats.recordBranch(len(children))
	e.frontier.Push(workerID, children)
}

// branchNode expands node by asking the configured BranchStrategy for the
// next disk, trying every insertion position, keeping only the positions
// every configured PruningRule allows, and optionally simplifying each
// child (§4.4, §9 Open Question (a)).
func (e *Engine) branchNode(node *Node, rng *rand.Rand) []*Node {
	ps := node.Partial
	diskIdx, ok := e.branch.SelectDisk(ps, e.inst, e.opts.FeasibilityTol, rng)
	if !ok {
		return nil
	}

	seq := ps.Order()
	var children []*Node
	for pos := 0; pos <= len(seq); pos++ {
		allowed := true
		for _, r := range e.rules {
			if !r.Allow(e.inst, seq, pos, diskIdx) {
				allowed = false
				break
			}
		}
		if !allowed {
			e.stats.recordPrunedByRule()
			continue
		}

		child, err := ps.Insert(e.ctx, pos, diskIdx)
		if err != nil {
			e.recordBranchError(node, pos, err)
			continue
		}

		if e.opts.Simplify && e.branch.Simplifies() {
			if simplified, err := child.Simplify(e.ctx); err != nil {
				e.recordBranchError(node, pos, err)
			} else {
				child = simplified
			}
		}

		children = append(children, NewNode(child, node))
	}
	return children
}

func (e *Engine) recordBranchError(node *Node, pos int, err error) {
	if errors.Is(err, ErrNumeric) {
		e.stats.recordNumericFailure(fmt.Sprintf("node %s: position %d: %v", node.ID, pos, err))
		return
	}
	e.stats.recordNumericFailure(fmt.Sprintf("node %s: position %d: unexpected error: %v", node.ID, pos, err))
}

// checkTermination is called by a worker after it finishes processing one
// node: it checks the optimality-gap stopping rule, then whether the
// frontier is provably exhausted (no live nodes and no worker currently
// holds one), closing the frontier in either case (§5).
func (e *Engine) checkTermination() {
	if e.checkGap() {
		return
	}
	if atomic.LoadInt64(&e.active) == 0 && e.frontier.Len() == 0 {
		e.naturalTermination()
	}
}

func (e *Engine) checkGap() bool {
	ub := e.upperBound()
	if math.IsInf(ub, 1) || ub <= 0 {
		return false
	}
	lb := e.frontier.GlobalLowerBound()
	if math.IsInf(lb, 1) {
		return false
	}
	if (ub-lb)/ub <= e.opts.OptimalityGap {
		e.setReason(ReasonGapReached)
		e.frontier.Close()
		return true
	}
	return false
}

func (e *Engine) naturalTermination() {
	if _, ok := e.incumbentSnapshot(); ok {
		e.setReason(ReasonOptimal)
	} else {
		e.setReason(ReasonFrontierDry)
	}
	e.frontier.Close()
}

func (e *Engine) setReason(r Reason) {
	e.reasonOnce.Do(func() { e.reason = r })
}

func (e *Engine) reasonOrDefault() Reason {
	e.reasonOnce.Do(func() { e.reason = ReasonFrontierDry })
	return e.reason
}

// offerIncumbent installs sol as the new incumbent if and only if it is
// shorter than the current one by more than 1e-9. It is the single upgrade path shared by
// the engine's own feasibility check and Context.AddSolution (§4.7).
func (e *Engine) offerIncumbent(sol Solution) bool {
	e.incMu.Lock()
	defer e.incMu.Unlock()
	if e.hasIncumbent && sol.Length >= e.incumbent.Length-1e-9 {
		return false
	}
	e.incumbent = sol
	e.hasIncumbent = true
	e.stats.recordUpperBound(sol.Length)
	return true
}

func (e *Engine) upperBound() float64 {
	e.incMu.Lock()
	defer e.incMu.Unlock()
	if !e.hasIncumbent {
		return math.Inf(1)
	}
	return e.incumbent.Length
}

func (e *Engine) incumbentSnapshot() (Solution, bool) {
	e.incMu.Lock()
	defer e.incMu.Unlock()
	return e.incumbent, e.hasIncumbent
}
