package graph

import (
	"fmt"

	microflo "github.com/jonnor/microflo-go"
	"github.com/jonnor/microflo-go/complib"
)

// Apply walks g and issues the same AddNode/Connect/ConnectSubgraph calls
// a deserialized wire stream would. Nodes must be listed parent-before-
// child: a Node naming a Parent not yet created returns an error.
func Apply(g Graph, net *microflo.Network, lib *complib.Library) error {
	ids := make(map[string]int32, len(g.Nodes))

	for _, node := range g.Nodes {
		var parentID int32
		if node.Parent != "" {
			id, ok := ids[node.Parent]
			if !ok {
				return fmt.Errorf("graph: node %q references unknown parent %q", node.Name, node.Parent)
			}
			parentID = id
		}
		component, base, ok := lib.Create(node.ComponentID)
		if !ok {
			return fmt.Errorf("graph: node %q: unregistered component id %d", node.Name, node.ComponentID)
		}
		id, err := net.AddNode(component, base, parentID)
		if err != nil {
			return fmt.Errorf("graph: node %q: %w", node.Name, err)
		}
		ids[node.Name] = id
	}

	for _, edge := range g.Edges {
		srcID, ok := ids[edge.FromNode]
		if !ok {
			return fmt.Errorf("graph: edge references unknown node %q", edge.FromNode)
		}
		dstID, ok := ids[edge.ToNode]
		if !ok {
			return fmt.Errorf("graph: edge references unknown node %q", edge.ToNode)
		}
		if err := net.Connect(srcID, edge.FromPort, dstID, edge.ToPort); err != nil {
			return fmt.Errorf("graph: connect %q:%d -> %q:%d: %w", edge.FromNode, edge.FromPort, edge.ToNode, edge.ToPort, err)
		}
	}

	for _, sp := range g.Subgraphs {
		subID, ok := ids[sp.SubgraphNode]
		if !ok {
			return fmt.Errorf("graph: subgraph port references unknown node %q", sp.SubgraphNode)
		}
		childID, ok := ids[sp.ChildNode]
		if !ok {
			return fmt.Errorf("graph: subgraph port references unknown node %q", sp.ChildNode)
		}
		if err := net.ConnectSubgraph(sp.IsOutput, subID, sp.SubgraphPort, childID, sp.ChildPort); err != nil {
			return fmt.Errorf("graph: connect subgraph port %q:%d: %w", sp.SubgraphNode, sp.SubgraphPort, err)
		}
	}

	return nil
}
