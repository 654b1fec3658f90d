package graph_test

import (
	"fmt"

	"github.com/matzehuels/netdraw/pkg/graph"
)

func ExampleStronglyConnectedComponents() {
	// Two-way street between 0 and 1, one-way exit to 2.
	g, _ := graph.New(make([]graph.Vertex, 3), []graph.Edge{
		{Tail: 0, Head: 1},
		{Tail: 1, Head: 0},
		{Tail: 1, Head: 2},
	})

	scc := graph.StronglyConnectedComponents(g)
	core := g.ExtractVertexInducedSubgraph(scc.LargestMask())
	fmt.Println("Components:", scc.NumComponents())
	fmt.Println("Kept:", core.NumVertices(), "vertices,", core.NumEdges(), "edges")
	// Output:
	// Components: 2
	// Kept: 2 vertices, 2 edges
}
