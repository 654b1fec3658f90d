// Package flow reads per-iteration edge flows produced by a traffic assignment.
//
// A flow table has one row per edge per iteration:
//
//	# assignment run 2024-03-01
//	iteration,edge_flow
//	1,120.5
//	1,0
//	2,118.25
//	2,3.5
//
// Rows are grouped by iteration in ascending order starting at 1, and the
// n-th row of an iteration belongs to the edge with ID n. Every iteration must
// list exactly one row per edge.
package flow

import (
	"io"

	"github.com/matzehuels/netdraw/internal/tabular"
	"github.com/matzehuels/netdraw/pkg/errors"
)

// Patterns holds the edge flows of every iteration.
type Patterns struct {
	numEdges   int
	iterations [][]float64
}

// ReadFile reads the flow table at path for a network of numEdges edges.
func ReadFile(path string, numEdges int) (*Patterns, error) {
	t, err := tabular.Open(path, tabular.WithComments('#'))
	if err != nil {
		return nil, err
	}
	defer t.Close()
	return read(t, numEdges)
}

// Read reads a flow table from r for a network of numEdges edges.
func Read(r io.Reader, numEdges int) (*Patterns, error) {
	t, err := tabular.New("flow", r, tabular.WithComments('#'))
	if err != nil {
		return nil, err
	}
	return read(t, numEdges)
}

func read(t *tabular.Table, numEdges int) (*Patterns, error) {
	if numEdges <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "flow: network has no edges")
	}
	if err := t.Require("iteration", "edge_flow"); err != nil {
		return nil, err
	}

	p := &Patterns{numEdges: numEdges}
	var cur []float64
	rows := 0
	for {
		ok, err := t.Next()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFlowFileCorrupt, err, "flow")
		}
		if !ok {
			break
		}
		rows++
		it, err := t.Int("iteration")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFlowFileCorrupt, err, "flow")
		}
		v, err := t.Float("edge_flow")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFlowFileCorrupt, err, "flow")
		}
		if it <= 0 {
			return nil, t.Errorf(errors.ErrCodeFlowFileCorrupt, "iteration must be positive, got %d", it)
		}
		if v < 0 {
			return nil, t.Errorf(errors.ErrCodeFlowFileCorrupt, "negative flow %v", v)
		}

		n := len(p.iterations)
		switch it {
		case n:
		case n + 1:
			if n > 0 && len(cur) != numEdges {
				return nil, t.Errorf(errors.ErrCodeFlowFileCorrupt,
					"iteration %d has %d rows, want %d", n, len(cur), numEdges)
			}
			cur = make([]float64, 0, numEdges)
			p.iterations = append(p.iterations, nil)
		default:
			return nil, t.Errorf(errors.ErrCodeFlowFileCorrupt,
				"iteration %d follows iteration %d", it, n)
		}
		cur = append(cur, v)
		p.iterations[len(p.iterations)-1] = cur
	}

	if rows == 0 {
		return nil, t.Errorf(errors.ErrCodeFlowFileCorrupt, "no flow rows")
	}
	if rows%numEdges != 0 {
		return nil, t.Errorf(errors.ErrCodeFlowFileCorrupt,
			"%d rows is not a multiple of %d edges", rows, numEdges)
	}
	if last := len(p.iterations); len(cur) != numEdges {
		return nil, t.Errorf(errors.ErrCodeFlowFileCorrupt,
			"iteration %d has %d rows, want %d", last, len(cur), numEdges)
	}
	return p, nil
}

// NumEdges returns the number of rows per iteration.
func (p *Patterns) NumEdges() int { return p.numEdges }

// NumIterations returns the number of iterations.
func (p *Patterns) NumIterations() int { return len(p.iterations) }

// Iteration returns the flows of iteration i, indexed by edge ID.
// Iterations are numbered from 1.
func (p *Patterns) Iteration(i int) []float64 { return p.iterations[i-1] }

// Selected returns the iterations to draw: all of them, or only the first and
// the last.
func (p *Patterns) Selected(all bool) []int {
	n := len(p.iterations)
	if n == 0 {
		return nil
	}
	if all || n <= 2 {
		sel := make([]int, n)
		for i := range sel {
			sel[i] = i + 1
		}
		return sel
	}
	return []int{1, n}
}
