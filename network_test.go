package microflo

import "testing"

// passThrough is a minimal Processor used only by these tests: it
// forwards whatever it receives on port 0 to its own output port 0, and
// records every call it receives.
type passThrough struct {
	Base
	received []Packet
	setups   int
	ticks    int
}

func newPassThrough(nPorts int) *passThrough {
	return &passThrough{Base: NewBase(0, nPorts)}
}

func (p *passThrough) Process(n *Network, pkt Packet, port int) {
	if port == -1 {
		if pkt.IsSetup() {
			p.setups++
		} else if pkt.IsTick() {
			p.ticks++
		}
		return
	}
	p.received = append(p.received, pkt)
	n.SendFrom(p.NodeID(), 0, pkt)
}

type recorder struct {
	events []string
}

func (r *recorder) NodeAdded(id int32, componentID uint8, parentID int32) {
	r.events = append(r.events, "node-added")
}
func (r *recorder) NodeRemoved(id int32) { r.events = append(r.events, "node-removed") }
func (r *recorder) NodesConnected(srcID int32, srcPort int, dstID int32, dstPort int) {
	r.events = append(r.events, "nodes-connected")
}
func (r *recorder) NodesDisconnected(srcID int32, srcPort int, dstID int32, dstPort int) {
	r.events = append(r.events, "nodes-disconnected")
}
func (r *recorder) NetworkStateChanged(state NetworkState) {
	r.events = append(r.events, "state:"+state.String())
}
func (r *recorder) PacketSent(srcID int32, srcPort int, dstID int32, dstPort int, pkt Packet) {
	r.events = append(r.events, "packet-sent")
}
func (r *recorder) PortSubscriptionChanged(id int32, port int, enabled bool) {
	r.events = append(r.events, "subscription-changed")
}
func (r *recorder) SubgraphConnected(isOutput bool, subgraphID int32, subgraphPort int, childID int32, childPort int) {
	r.events = append(r.events, "subgraph-connected")
}
func (r *recorder) EmitDebug(level DebugLevel, code DebugEvent) {
	r.events = append(r.events, "debug:"+code.String())
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if e == kind {
			n++
		}
	}
	return n
}

func TestNodeIDMonotonicity(t *testing.T) {
	net := NewNetwork(8, 16, nil)
	var last int32
	for i := 0; i < 5; i++ {
		a := newPassThrough(1)
		id, err := net.AddNode(a, &a.Base, 0)
		if err != nil {
			t.Fatal(err)
		}
		if id <= last {
			t.Fatalf("node id not strictly increasing: %d after %d", id, last)
		}
		last = id
	}
}

func TestConnectionEffect(t *testing.T) {
	net := NewNetwork(8, 16, nil)
	a := newPassThrough(1)
	b := newPassThrough(1)
	aID, _ := net.AddNode(a, &a.Base, 0)
	bID, _ := net.AddNode(b, &b.Base, 0)
	if err := net.Connect(aID, 0, bID, 0); err != nil {
		t.Fatal(err)
	}
	net.Start()

	net.SendFrom(aID, 0, PacketInt(42))
	net.RunTick()

	if len(b.received) != 1 || b.received[0] != PacketInt(42) {
		t.Fatalf("expected b to receive Int(42), got %v", b.received)
	}

	if err := net.Disconnect(aID, 0, bID, 0); err != nil {
		t.Fatal(err)
	}
	net.SendFrom(aID, 0, PacketInt(7))
	net.RunTick()
	if len(b.received) != 1 {
		t.Fatalf("expected no further delivery after disconnect, got %v", b.received)
	}
}

func TestSetupOncePerStart(t *testing.T) {
	net := NewNetwork(8, 16, nil)
	a := newPassThrough(1)
	net.AddNode(a, &a.Base, 0)

	net.Start()
	if a.setups != 1 {
		t.Fatalf("expected exactly one Setup, got %d", a.setups)
	}
	net.RunTick()
	net.RunTick()
	if a.setups != 1 {
		t.Fatalf("expected Setup count to remain 1 after ticks, got %d", a.setups)
	}
	if a.ticks != 2 {
		t.Fatalf("expected 2 ticks, got %d", a.ticks)
	}
}

func TestSubscriptionIndependence(t *testing.T) {
	net := NewNetwork(8, 16, nil)
	rec := &recorder{}
	net.SetNotificationHandler(rec)
	a := newPassThrough(1)
	aID, _ := net.AddNode(a, &a.Base, 0)
	net.Start()

	if err := net.SubscribeToPort(aID, 0, true); err != nil {
		t.Fatal(err)
	}
	// Port 0 has no connected target, yet subscribing should still report
	// packetSent once it emits.
	net.SendFrom(aID, 0, PacketVoid())
	net.RunTick()

	if rec.count("packet-sent") != 1 {
		t.Fatalf("expected 1 packet-sent notification on unconnected subscribed port, got %d", rec.count("packet-sent"))
	}
}

func TestTickSnapshotOrdering(t *testing.T) {
	net := NewNetwork(8, 16, nil)
	a := newPassThrough(1)
	b := newPassThrough(1)
	aID, _ := net.AddNode(a, &a.Base, 0)
	bID, _ := net.AddNode(b, &b.Base, 0)
	net.Connect(aID, 0, bID, 0)
	net.Start()

	net.SendFrom(aID, 0, PacketInt(1))
	net.RunTick() // delivers to b, which re-emits from itself (no outbound target) — no further delivery expected this tick
	if len(b.received) != 1 {
		t.Fatalf("expected message delivered on first tick after push, got %v", b.received)
	}
}

func TestResetClears(t *testing.T) {
	net := NewNetwork(8, 16, nil)
	a := newPassThrough(1)
	net.AddNode(a, &a.Base, 0)
	net.Start()
	net.SendFrom(a.NodeID(), 0, PacketVoid())

	net.Reset()

	b := newPassThrough(1)
	id, err := net.AddNode(b, &b.Base, 0)
	if err != nil {
		t.Fatal(err)
	}
	if id != firstNodeID {
		t.Fatalf("expected first node id %d after reset, got %d", firstNodeID, id)
	}
	net.Start()
	net.RunTick()
	if len(b.received) != 0 {
		t.Fatalf("expected no deferred delivery surviving reset, got %v", b.received)
	}
}

func TestBracketPassthrough(t *testing.T) {
	net := NewNetwork(8, 16, nil)
	a := newPassThrough(1)
	b := newPassThrough(1)
	aID, _ := net.AddNode(a, &a.Base, 0)
	bID, _ := net.AddNode(b, &b.Base, 0)
	net.Connect(aID, 0, bID, 0)
	net.Start()

	net.SendFrom(aID, 0, PacketBracketStart())
	net.SendFrom(aID, 0, PacketBracketEnd())
	net.RunTick()

	if len(b.received) != 2 || !b.received[0].IsBracket() || !b.received[1].IsBracket() {
		t.Fatalf("expected both bracket packets delivered in order, got %v", b.received)
	}
	if b.received[0].Type() != MsgBracketStart || b.received[1].Type() != MsgBracketEnd {
		t.Fatalf("bracket order violated: %v", b.received)
	}
}

func TestNestedSubgraphNotRecursive(t *testing.T) {
	// Pins the documented, not-yet-supported behavior: subgraph
	// redirection applies at most once on each side, so a doubly-nested
	// subgraph does not route through both levels.
	net := NewNetwork(16, 16, nil)

	outer := NewSubGraph(4)
	outerID, err := net.AddNode(outer, &outer.Base, 0)
	if err != nil {
		t.Fatal(err)
	}
	inner := NewSubGraph(4)
	innerBase := &inner.Base
	innerID, err := net.AddNode(inner, innerBase, outerID)
	if err != nil {
		t.Fatal(err)
	}
	leaf := newPassThrough(1)
	leafID, err := net.AddNode(leaf, &leaf.Base, innerID)
	if err != nil {
		t.Fatal(err)
	}

	// External entry into outer:0 should redirect once to inner (treated
	// as an ordinary node), not recurse into inner's own input table to
	// reach leaf.
	if err := net.ConnectSubgraph(false, outerID, 0, innerID, 0); err != nil {
		t.Fatal(err)
	}
	if err := net.ConnectSubgraph(false, innerID, 0, leafID, 0); err != nil {
		t.Fatal(err)
	}
	net.Start()

	net.SendTo(outerID, 0, PacketInt(99))
	net.RunTick()

	if len(leaf.received) != 0 {
		t.Fatalf("expected no recursive redirect into doubly-nested subgraph, but leaf received %v", leaf.received)
	}
}

func TestSubgraphRedirectsDoNotChain(t *testing.T) {
	// Pins a deliberate, ground-truth-faithful quirk: resolveMessageSubgraph
	// freezes its target/targetPort locals at entry, so the two redirect
	// checks both read the pre-redirect destination rather than the first
	// check's output. Here the child's proxy connection targets its own
	// subgraph, which makes both checks' preconditions true at once; since
	// the second (external-entering) check is applied last and still reads
	// the frozen snapshot, its outcome wins outright rather than being
	// composed with the first's.
	net := NewNetwork(16, 16, nil)

	sg := NewSubGraph(4)
	sgID, err := net.AddNode(sg, &sg.Base, 0)
	if err != nil {
		t.Fatal(err)
	}
	child := newPassThrough(1)
	childID, err := net.AddNode(child, &child.Base, sgID)
	if err != nil {
		t.Fatal(err)
	}
	// ConnectSubgraph requires every redirect target to have a parent, so
	// both targets are registered under the subgraph as well.
	outputTarget := newPassThrough(1)
	outputTargetID, err := net.AddNode(outputTarget, &outputTarget.Base, sgID)
	if err != nil {
		t.Fatal(err)
	}
	inputTarget := newPassThrough(1)
	inputTargetID, err := net.AddNode(inputTarget, &inputTarget.Base, sgID)
	if err != nil {
		t.Fatal(err)
	}

	// Child's own output connection names the subgraph itself as target,
	// the proxy convention that makes the child-emitting-out check fire.
	if err := net.Connect(childID, 0, sgID, 0); err != nil {
		t.Fatal(err)
	}
	if err := net.ConnectSubgraph(true, sgID, 0, outputTargetID, 0); err != nil {
		t.Fatal(err)
	}
	if err := net.ConnectSubgraph(false, sgID, 0, inputTargetID, 0); err != nil {
		t.Fatal(err)
	}
	net.Start()

	net.SendFrom(childID, 0, PacketInt(7))
	net.RunTick()

	if len(outputTarget.received) != 0 {
		t.Fatalf("expected child-emitting-out redirect to be overridden, but outputTarget received %v", outputTarget.received)
	}
	if len(inputTarget.received) != 1 {
		t.Fatalf("expected external-entering-subgraph redirect to win, but inputTarget received %v", inputTarget.received)
	}
}

func TestFramingNotSubject(t *testing.T) {
	// Framing/resync is tested in the host package, which owns the byte
	// parser; this placeholder documents the boundary.
}
