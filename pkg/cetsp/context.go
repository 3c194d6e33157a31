package cetsp

// Callback is invoked once per node popped from the frontier, after the
// node's SOCP bound has been evaluated and before it is branched (§4.7).
// A callback that calls Context.Prune prevents that node from branching;
// one that calls Context.AddSolution competes for the incumbent through
// the same path the engine itself uses when a node turns out feasible.
type Callback func(ctx *Context)

// Context is the capability object passed to a user Callback. It exposes
// read access to the node currently being processed and the only two
// actions a callback may take: registering a candidate solution, or
// pruning the node (§4.7).
type Context struct {
	engine *Engine
	node   *Node
}

// Node returns the node currently being processed.
func (c *Context) Node() *Node {
	return c.node
}

// Sequence returns the node's disk visitation order so far.
func (c *Context) Sequence() []int {
	return c.node.Partial.Order()
}

// Trajectory returns the node's current SOCP-optimal trajectory.
func (c *Context) Trajectory() Trajectory {
	return c.node.Partial.Trajectory()
}

// LowerBound returns the node's lower bound.
func (c *Context) LowerBound() float64 {
	return c.node.LowerBound
}

// UpperBound returns the engine's current incumbent length, or +Inf if no
// incumbent has been found yet.
func (c *Context) UpperBound() float64 {
	return c.engine.upperBound()
}

// AddSolution offers traj as a candidate incumbent. It is validated the
// same way a branched node's feasibility is checked: traj must come
// within the instance's feasibility tolerance of every disk. An
// infeasible trajectory is rejected outright, never reaching the
// incumbent comparison. A feasible one is then accepted (and the
// engine's incumbent updated) if and only if it is shorter than the
// current incumbent by more than 1e-9; the return value reports whether
// it was accepted.
// This goes through the same locked path as the engine's own incumbent
// upgrade when a branched node turns out feasible, so a callback and the
// search proper never race to record a worse "latest" solution (§4.7).
func (c *Context) AddSolution(traj Trajectory, order []int) bool {
	tol := c.engine.opts.FeasibilityTol
	for _, d := range c.engine.inst.Disks {
		if !traj.Contains(d, tol) {
			return false
		}
	}
	return c.engine.offerIncumbent(Solution{
		Order:      append([]int(nil), order...),
		Trajectory: traj,
		Length:     traj.Length(),
	})
}

// Prune marks the current node pruned by the callback; it will not be
// branched once the callback returns (§4.7).
func (c *Context) Prune() {
	c.node.Prune()
}
