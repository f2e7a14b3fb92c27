package components

import (
	"testing"

	microflo "github.com/jonnor/microflo-go"
)

func TestForwardPassesThroughIncludingBrackets(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	f, fBase := NewForward(0)
	fID, _ := net.AddNode(f, fBase, 0)
	rec := newRecordingSink()
	recID, _ := net.AddNode(rec, rec.base(), 0)
	net.Connect(fID, PortOut, recID, PortIn)
	net.Start()

	net.SendTo(fID, PortIn, microflo.PacketBracketStart())
	net.SendTo(fID, PortIn, microflo.PacketInt(5))
	net.SendTo(fID, PortIn, microflo.PacketBracketEnd())
	net.RunTick() // delivers to f, which re-emits
	net.RunTick() // delivers the re-emissions to rec

	if len(rec.received) != 3 {
		t.Fatalf("expected all 3 packets forwarded, got %d", len(rec.received))
	}
	if !rec.received[0].IsBracket() || rec.received[1].AsInteger() != 5 || !rec.received[2].IsBracket() {
		t.Fatalf("expected bracket-int-bracket order preserved, got %v", rec.received)
	}
}

func TestRepeatEmitsLastOnTick(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	r, rBase := NewRepeat(0)
	rID, _ := net.AddNode(r, rBase, 0)
	rec := newRecordingSink()
	recID, _ := net.AddNode(rec, rec.base(), 0)
	net.Connect(rID, PortOut, recID, PortIn)
	net.Start()

	net.RunTick()
	if len(rec.received) != 0 {
		t.Fatalf("expected no emission before any input received, got %v", rec.received)
	}

	net.SendTo(rID, PortIn, microflo.PacketInt(7))
	net.RunTick()
	net.RunTick()
	net.RunTick()

	if len(rec.received) != 2 {
		t.Fatalf("expected exactly 2 tick re-emissions after one input, got %d: %v", len(rec.received), rec.received)
	}
	for _, pkt := range rec.received {
		if pkt.AsInteger() != 7 {
			t.Fatalf("expected repeated value 7, got %v", pkt)
		}
	}
}

func TestCounterIncrementsPerPacket(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	c, cBase := NewCounter(0)
	cID, _ := net.AddNode(c, cBase, 0)
	rec := newRecordingSink()
	recID, _ := net.AddNode(rec, rec.base(), 0)
	net.Connect(cID, PortOut, recID, PortIn)
	net.Start()

	for i := 0; i < 3; i++ {
		net.SendTo(cID, PortIn, microflo.PacketVoid())
	}
	net.RunTick() // delivers to c, which emits
	net.RunTick() // delivers the emissions to rec

	if len(rec.received) != 3 {
		t.Fatalf("expected 3 emissions, got %d", len(rec.received))
	}
	for i, pkt := range rec.received {
		if want := int32(i + 1); pkt.AsInteger() != want {
			t.Fatalf("emission %d: expected count %d, got %d", i, want, pkt.AsInteger())
		}
	}
}

func TestGateClosedByDefault(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	g, gBase := NewGate(0)
	gID, _ := net.AddNode(g, gBase, 0)
	rec := newRecordingSink()
	recID, _ := net.AddNode(rec, rec.base(), 0)
	net.Connect(gID, PortOut, recID, PortIn)
	net.Start()

	net.SendTo(gID, GatePortData, microflo.PacketInt(1))
	net.RunTick()
	if len(rec.received) != 0 {
		t.Fatal("expected gate closed by default to drop data")
	}

	net.SendTo(gID, GatePortControl, microflo.PacketBool(true))
	net.SendTo(gID, GatePortData, microflo.PacketInt(2))
	net.RunTick() // gate opens and re-emits 2
	net.RunTick() // 2 reaches rec
	if len(rec.received) != 1 || rec.received[0].AsInteger() != 2 {
		t.Fatalf("expected one packet through after opening gate, got %v", rec.received)
	}

	net.SendTo(gID, GatePortControl, microflo.PacketBool(false))
	net.SendTo(gID, GatePortData, microflo.PacketInt(3))
	net.RunTick()
	net.RunTick()
	if len(rec.received) != 1 {
		t.Fatalf("expected gate to re-close, got %v", rec.received)
	}
}

func TestLogForwardsUnchangedWithNilLogger(t *testing.T) {
	net := microflo.NewNetwork(8, 16, nil)
	l, lBase := NewLog(0, nil)
	lID, _ := net.AddNode(l, lBase, 0)
	rec := newRecordingSink()
	recID, _ := net.AddNode(rec, rec.base(), 0)
	net.Connect(lID, PortOut, recID, PortIn)
	net.Start()

	net.SendTo(lID, PortIn, microflo.PacketInt(9))
	net.RunTick() // delivers to l, which re-emits
	net.RunTick() // delivers the re-emission to rec

	if len(rec.received) != 1 || rec.received[0].AsInteger() != 9 {
		t.Fatalf("expected packet forwarded unchanged, got %v", rec.received)
	}
}

// recordingSink is a minimal Processor double local to this test file: it
// records every packet delivered to its input port.
type recordingSink struct {
	microflo.Base
	received []microflo.Packet
}

func newRecordingSink() *recordingSink {
	return &recordingSink{Base: microflo.NewBase(0, 1)}
}

func (r *recordingSink) base() *microflo.Base { return &r.Base }

func (r *recordingSink) Process(n *microflo.Network, pkt microflo.Packet, port int) {
	if port != PortIn {
		return
	}
	r.received = append(r.received, pkt)
}
