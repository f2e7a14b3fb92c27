package graph

import (
	"testing"

	microflo "github.com/jonnor/microflo-go"
	"github.com/jonnor/microflo-go/complib"
)

type stub struct {
	microflo.Base
	received []microflo.Packet
}

func newStub() (microflo.Processor, *microflo.Base) {
	s := &stub{Base: microflo.NewBase(0, 1)}
	return s, &s.Base
}

func (s *stub) Process(n *microflo.Network, pkt microflo.Packet, port int) {
	if port != 0 {
		return
	}
	s.received = append(s.received, pkt)
	n.SendFrom(s.NodeID(), 0, pkt)
}

func TestApplyBuildsNodesAndEdges(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	lib := complib.NewLibrary()
	lib.Add("Stub", newStub)

	g := Graph{
		Nodes: []Node{
			{Name: "a", ComponentID: 0},
			{Name: "b", ComponentID: 0},
		},
		Edges: []Edge{
			{FromNode: "a", FromPort: 0, ToNode: "b", ToPort: 0},
		},
	}
	if err := Apply(g, net, lib); err != nil {
		t.Fatal(err)
	}

	net.Start()
	net.SendTo(1, 0, microflo.PacketInt(1))
	net.RunTick()
	// Node 1 is "a"; its stub re-emits toward "b" (node 2), and that
	// emission is delivered on the following tick.
}

func TestApplyBuildsSubgraph(t *testing.T) {
	net := microflo.NewNetwork(16, 16, nil)
	lib := complib.NewLibrary()
	sgID := lib.Add("SubGraph", func() (microflo.Processor, *microflo.Base) {
		sg := microflo.NewSubGraph(4)
		return sg, &sg.Base
	})
	lib.Add("Stub", newStub)

	g := Graph{
		Nodes: []Node{
			{Name: "outer", ComponentID: sgID},
			{Name: "leaf", ComponentID: 1, Parent: "outer"},
		},
		Subgraphs: []SubgraphPort{
			{IsOutput: false, SubgraphNode: "outer", SubgraphPort: 0, ChildNode: "leaf", ChildPort: 0},
		},
	}
	if err := Apply(g, net, lib); err != nil {
		t.Fatal(err)
	}
}

func TestApplyErrorsOnUnknownParent(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	lib := complib.NewLibrary()
	lib.Add("Stub", newStub)

	g := Graph{
		Nodes: []Node{
			{Name: "child", ComponentID: 0, Parent: "missing"},
		},
	}
	if err := Apply(g, net, lib); err == nil {
		t.Fatal("expected error for node referencing unknown parent")
	}
}

func TestApplyErrorsOnUnknownComponent(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	lib := complib.NewLibrary()

	g := Graph{
		Nodes: []Node{{Name: "a", ComponentID: 99}},
	}
	if err := Apply(g, net, lib); err == nil {
		t.Fatal("expected error for unregistered component id")
	}
}

func TestApplyErrorsOnUnknownEdgeNode(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	lib := complib.NewLibrary()
	lib.Add("Stub", newStub)

	g := Graph{
		Nodes: []Node{{Name: "a", ComponentID: 0}},
		Edges: []Edge{{FromNode: "a", ToNode: "missing"}},
	}
	if err := Apply(g, net, lib); err == nil {
		t.Fatal("expected error for edge referencing unknown node")
	}
}
