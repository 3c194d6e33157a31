package cetsp

// DfsBfsSearch alternates a per-worker DFS stack for local descent with a
// shared best-first priority queue keyed on lower bound: a worker
// descends locally until it hits a feasible leaf or a prune, then pops
// the globally best-bounded node (§4.4).
type DfsBfsSearch struct{}

func (DfsBfsSearch) Name() string { return "DfsBfs" }
func (DfsBfsSearch) NewFrontier(numWorkers int, seed int64) *Frontier {
	return NewFrontier(modeDfsBfs, numWorkers, seed)
}

// CheapestChildDepthFirstSearch always descends into the child with the
// smallest lower bound, backtracking on a dead end (§4.4).
type CheapestChildDepthFirstSearch struct{}

func (CheapestChildDepthFirstSearch) Name() string { return "CheapestChildDepthFirst" }
func (CheapestChildDepthFirstSearch) NewFrontier(numWorkers int, seed int64) *Frontier {
	return NewFrontier(modeCheapestChildDFS, numWorkers, seed)
}

// CheapestBreadthFirstSearch is a single global priority queue on lower
// bound only (§4.4).
type CheapestBreadthFirstSearch struct{}

func (CheapestBreadthFirstSearch) Name() string { return "CheapestBreadthFirst" }
func (CheapestBreadthFirstSearch) NewFrontier(numWorkers int, seed int64) *Frontier {
	return NewFrontier(modeCheapestBFS, numWorkers, seed)
}

// RandomSearch pops uniformly at random from the live frontier (§4.4).
type RandomSearch struct{}

func (RandomSearch) Name() string { return "Random" }
func (RandomSearch) NewFrontier(numWorkers int, seed int64) *Frontier {
	return NewFrontier(modeRandom, numWorkers, seed)
}
