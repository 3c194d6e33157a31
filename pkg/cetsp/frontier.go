package cetsp

import (
	"container/heap"
	"math"
	"math/rand"
	"sync"
)

// frontierEntry is one live node sitting in the shared best-first queue,
// tagged with its insertion sequence number for the tie-break rule of
// §4.4 ("Tie-break: insertion order").
type frontierEntry struct {
	node *Node
	seq  int64
}

// nodeHeap is a container/heap.Interface ordered by LowerBound, ties
// broken by insertion order.
type nodeHeap []*frontierEntry

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.LowerBound != h[j].node.LowerBound {
		return h[i].node.LowerBound < h[j].node.LowerBound
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*frontierEntry)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// searchMode selects how Frontier routes pushed children and serves pops,
// one per named SearchStrategy (§4.4).
type searchMode int

const (
	modeDfsBfs searchMode = iota
	modeCheapestChildDFS
	modeCheapestBFS
	modeRandom
)

// Frontier is the composite structure backing the BnB engine's node
// queue(s): a shared best-first priority queue plus, for the depth-first
// modes, one local stack per worker (§4.5/§4.6). A Frontier is safe for
// concurrent use by multiple workers.
type Frontier struct {
	mode searchMode
	rng  *rand.Rand

	mu         sync.Mutex
	cond       *sync.Cond
	shared     nodeHeap
	randomPool []*Node
	local      [][]*Node // per-worker DFS stacks, only used in depth-first modes
	nextSeq    int64
	live       int
	closed     bool
}

// NewFrontier constructs a Frontier for the given search mode and worker
// count, seeded for the Random strategy's determinism requirement at
// num_threads=1 (§4.6).
func NewFrontier(mode searchMode, numWorkers int, seed int64) *Frontier {
	f := &Frontier{
		mode:  mode,
		rng:   rand.New(rand.NewSource(seed)),
		local: make([][]*Node, numWorkers),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Push adds newly branched children to the frontier, routing them
// according to the configured search mode. workerID identifies the worker
// that produced them (used to target its local DFS stack).
func (f *Frontier) Push(workerID int, children []*Node) {
	if len(children) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.mode {
	case modeDfsBfs:
		// Continue local descent into the first child; siblings go to
		// the shared best-first queue for other workers to steal.
		f.pushLocalLocked(workerID, children[0])
		for _, c := range children[1:] {
			f.pushSharedLocked(c)
		}
	case modeCheapestChildDFS:
		sortByLowerBoundDescending(children)
		for _, c := range children {
			f.pushLocalLocked(workerID, c)
		}
	case modeCheapestBFS:
		for _, c := range children {
			f.pushSharedLocked(c)
		}
	case modeRandom:
		for _, c := range children {
			f.randomPool = append(f.randomPool, c)
			f.live++
		}
	}
	f.cond.Broadcast()
}

// Pop removes and returns the next node this worker should evaluate. The
// second return value is false when the frontier is empty and closed.
func (f *Frontier) Pop(workerID int) (*Node, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if n, ok := f.popLocked(workerID); ok {
			return n, true
		}
		if f.closed {
			return nil, false
		}
		f.cond.Wait()
	}
}

// TryPop is Pop without blocking: it returns (nil, false) immediately if
// no node is currently available, instead of waiting for one to appear.
func (f *Frontier) TryPop(workerID int) (*Node, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.popLocked(workerID)
}

func (f *Frontier) popLocked(workerID int) (*Node, bool) {
	switch f.mode {
	case modeDfsBfs, modeCheapestChildDFS:
		if workerID >= 0 && workerID < len(f.local) && len(f.local[workerID]) > 0 {
			stack := f.local[workerID]
			n := stack[len(stack)-1]
			f.local[workerID] = stack[:len(stack)-1]
			f.live--
			return n, true
		}
		if f.shared.Len() > 0 {
			e := heap.Pop(&f.shared).(*frontierEntry)
			f.live--
			return e.node, true
		}
		return nil, false
	case modeCheapestBFS:
		if f.shared.Len() > 0 {
			e := heap.Pop(&f.shared).(*frontierEntry)
			f.live--
			return e.node, true
		}
		return nil, false
	case modeRandom:
		if len(f.randomPool) == 0 {
			return nil, false
		}
		i := f.rng.Intn(len(f.randomPool))
		n := f.randomPool[i]
		f.randomPool[i] = f.randomPool[len(f.randomPool)-1]
		f.randomPool = f.randomPool[:len(f.randomPool)-1]
		f.live--
		return n, true
	default:
		return nil, false
	}
}

func (f *Frontier) pushLocalLocked(workerID int, n *Node) {
	if workerID < 0 || workerID >= len(f.local) {
		f.pushSharedLocked(n)
		return
	}
	f.local[workerID] = append(f.local[workerID], n)
	f.live++
}

func (f *Frontier) pushSharedLocked(n *Node) {
	heap.Push(&f.shared, &frontierEntry{node: n, seq: f.nextSeq})
	f.nextSeq++
	f.live++
}

// Len reports the number of live (unpopped) nodes across all queues.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live
}

// GlobalLowerBound returns the minimum lower bound across all live nodes,
// or +Inf if the frontier is empty. Per §4.5/§5 this may lag by at most
// one batch of frontier operations; it inspects the shared queue, the
// local stacks and the random pool under the same lock used by Push/Pop,
// so it is always a
// consistent snapshot, just possibly stale relative to a push that landed
// in between two reads.
func (f *Frontier) GlobalLowerBound() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	best := math.Inf(1)
	for _, e := range f.shared {
		if e.node.LowerBound < best {
			best = e.node.LowerBound
		}
	}
	for _, stack := range f.local {
		for _, n := range stack {
			if n.LowerBound < best {
				best = n.LowerBound
			}
		}
	}
	for _, n := range f.randomPool {
		if n.LowerBound < best {
			best = n.LowerBound
		}
	}
	return best
}

// Close wakes all workers blocked in Pop so they can observe an empty,
// closed frontier and exit (engine shutdown / cancellation).
func (f *Frontier) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cond.Broadcast()
}

func sortByLowerBoundDescending(nodes []*Node) {
	// Stack push order: last pushed is popped first, so push the
	// most-promising (smallest LB) child last to descend into it first.
	for i := 1; i < len(nodes); i++ {
		j := i
		for j > 0 && nodes[j-1].LowerBound < nodes[j].LowerBound {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
			j--
		}
	}
}
