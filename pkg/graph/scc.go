package graph

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// SCC is a partition of a graph's vertices into strongly connected components.
type SCC struct {
	component []int
	sizes     []int
}

// frame is one suspended call of the depth-first search: vertex v has had its
// first next outgoing edges explored.
type frame struct {
	v    int
	next int
}

// StronglyConnectedComponents computes the components of g with Tarjan's
// algorithm. The search is iterative, so deep road networks cannot overflow
// the goroutine stack.
func StronglyConnectedComponents(g *Graph) *SCC {
	n := g.NumVertices()
	index := make([]int, n)
	low := make([]int, n)
	for v := range index {
		index[v] = -1
	}
	s := &SCC{component: make([]int, n)}
	onStack := bitset.New(uint(n))
	stack := arraystack.New()
	calls := arraystack.New()
	counter := 0

	visit := func(v int) {
		index[v], low[v] = counter, counter
		counter++
		stack.Push(v)
		onStack.Set(uint(v))
		calls.Push(&frame{v: v})
	}

	for root := range n {
		if index[root] >= 0 {
			continue
		}
		visit(root)
		for !calls.Empty() {
			top, _ := calls.Peek()
			f := top.(*frame)
			out := g.EdgesFrom(f.v)
			if f.next < len(out) {
				w := out[f.next].Head
				f.next++
				switch {
				case index[w] < 0:
					visit(w)
				case onStack.Test(uint(w)):
					low[f.v] = min(low[f.v], index[w])
				}
				continue
			}

			calls.Pop()
			if parent, ok := calls.Peek(); ok {
				p := parent.(*frame)
				low[p.v] = min(low[p.v], low[f.v])
			}
			if low[f.v] != index[f.v] {
				continue
			}
			id, size := len(s.sizes), 0
			for {
				x, _ := stack.Pop()
				w := x.(int)
				onStack.Clear(uint(w))
				s.component[w] = id
				size++
				if w == f.v {
					break
				}
			}
			s.sizes = append(s.sizes, size)
		}
	}
	return s
}

// NumComponents returns the number of components.
func (s *SCC) NumComponents() int { return len(s.sizes) }

// Component returns the component index of vertex v.
func (s *SCC) Component(v int) int { return s.component[v] }

// Size returns the number of vertices in component c.
func (s *SCC) Size(c int) int { return s.sizes[c] }

// Largest returns the index of the biggest component, preferring the one found
// first on ties, or -1 for an empty graph.
func (s *SCC) Largest() int {
	best := -1
	for c, size := range s.sizes {
		if best < 0 || size > s.sizes[best] {
			best = c
		}
	}
	return best
}

// LargestMask marks the vertices of the biggest component.
func (s *SCC) LargestMask() *bitset.BitSet {
	mask := bitset.New(uint(len(s.component)))
	c := s.Largest()
	for v, comp := range s.component {
		if comp == c {
			mask.Set(uint(v))
		}
	}
	return mask
}
