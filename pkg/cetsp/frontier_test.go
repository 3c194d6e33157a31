package cetsp

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lbNode(lb float64) *Node {
	return &Node{LowerBound: lb}
}

func TestFrontierDfsBfsSplitsFirstChildLocalRestShared(t *testing.T) {
	f := NewFrontier(modeDfsBfs, 2, 1)
	children := []*Node{lbNode(5), lbNode(1), lbNode(3)}
	f.Push(0, children)

	assert.Equal(t, 3, f.Len())

	n, ok := f.Pop(0)
	require.True(t, ok)
	assert.Same(t, children[0], n, "DfsBfs keeps the first child on the popping worker's local stack")

	n, ok = f.Pop(1)
	require.True(t, ok)
	assert.Equal(t, 1.0, n.LowerBound, "siblings go to the shared best-first queue, so worker 1 steals the cheapest")
}

func TestFrontierCheapestChildDFSDescendsIntoCheapestFirst(t *testing.T) {
	f := NewFrontier(modeCheapestChildDFS, 1, 1)
	f.Push(0, []*Node{lbNode(5), lbNode(1), lbNode(3)})

	n, ok := f.Pop(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, n.LowerBound, "cheapest child should be popped first from the local stack")
}

func TestFrontierCheapestBFSIsGlobalBestFirst(t *testing.T) {
	f := NewFrontier(modeCheapestBFS, 2, 1)
	f.Push(0, []*Node{lbNode(5), lbNode(1)})
	f.Push(1, []*Node{lbNode(3)})

	var order []float64
	for {
		n, ok := f.TryPop(0)
		if !ok {
			break
		}
		order = append(order, n.LowerBound)
	}
	assert.Equal(t, []float64{1, 3, 5}, order)
}

func TestFrontierRandomModeDeterministicAtFixedSeed(t *testing.T) {
	build := func() []float64 {
		f := NewFrontier(modeRandom, 1, 42)
		f.Push(0, []*Node{lbNode(1), lbNode(2), lbNode(3), lbNode(4), lbNode(5)})
		var order []float64
		for {
			n, ok := f.TryPop(0)
			if !ok {
				break
			}
			order = append(order, n.LowerBound)
		}
		return order
	}

	first := build()
	second := build()
	assert.Equal(t, first, second, "same seed must reproduce the same pop order")
	assert.Len(t, first, 5)
}

func TestFrontierTryPopEmptyReturnsFalse(t *testing.T) {
	f := NewFrontier(modeCheapestBFS, 1, 1)
	_, ok := f.TryPop(0)
	assert.False(t, ok)
}

func TestFrontierCloseWakesBlockedPop(t *testing.T) {
	f := NewFrontier(modeCheapestBFS, 1, 1)
	done := make(chan bool, 1)
	go func() {
		_, ok := f.Pop(0)
		done <- ok
	}()

	f.Close()
	select {
	case ok := <-done:
		assert.False(t, ok, "Pop on a closed, empty frontier must return false")
	case <-time.After(time.Second):
		t.Fatal("Close did not wake the blocked Pop")
	}
}

func TestFrontierGlobalLowerBoundEmptyIsInf(t *testing.T) {
	f := NewFrontier(modeCheapestBFS, 1, 1)
	assert.Equal(t, math.Inf(1), f.GlobalLowerBound())

	f.Push(0, []*Node{lbNode(7), lbNode(2)})
	assert.Equal(t, 2.0, f.GlobalLowerBound())
}
