// Package demand reads origin-destination pairs of travel demand.
package demand

import (
	"io"

	"github.com/matzehuels/netdraw/internal/tabular"
)

// Pair is one trip between two vertices, given by internal vertex ID.
type Pair struct {
	Origin      int
	Destination int
}

// ReadFile reads the demand table at path.
func ReadFile(path string) ([]Pair, error) {
	t, err := tabular.Open(path, tabular.WithComments('#'))
	if err != nil {
		return nil, err
	}
	defer t.Close()
	return read(t)
}

// Read reads a demand table with columns origin and destination from r.
func Read(r io.Reader) ([]Pair, error) {
	t, err := tabular.New("demand", r, tabular.WithComments('#'))
	if err != nil {
		return nil, err
	}
	return read(t)
}

func read(t *tabular.Table) ([]Pair, error) {
	if err := t.Require("origin", "destination"); err != nil {
		return nil, err
	}
	var pairs []Pair
	for {
		ok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return pairs, nil
		}
		o, err := t.Int("origin")
		if err != nil {
			return nil, err
		}
		d, err := t.Int("destination")
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Origin: o, Destination: d})
	}
}
