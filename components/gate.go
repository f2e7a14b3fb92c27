package components

import microflo "github.com/jonnor/microflo-go"

// Gate input ports: Data carries the packet to conditionally forward,
// Control is a Bool latched on arrival and consulted on every Data packet.
const (
	GatePortData    = 0
	GatePortControl = 1
)

// Gate forwards a Data packet to its output only while the most recently
// received Control packet evaluated true (AsBool's void-coercion rule
// applies, so an unconnected Control port defaults to closed until a Void
// open signal arrives).
type Gate struct {
	microflo.Base
	open bool
}

func NewGate(componentID uint8) (microflo.Processor, *microflo.Base) {
	g := &Gate{Base: microflo.NewBase(componentID, 1)}
	return g, &g.Base
}

func (g *Gate) Process(n *microflo.Network, pkt microflo.Packet, port int) {
	switch port {
	case GatePortControl:
		g.open = pkt.AsBool()
	case GatePortData:
		if g.open {
			n.SendFrom(g.NodeID(), PortOut, pkt)
		}
	}
}
