package components

import microflo "github.com/jonnor/microflo-go"

// Repeat remembers the last packet received on its input and re-emits it
// on every Tick broadcast, independent of whether new input has arrived.
type Repeat struct {
	microflo.Base
	last microflo.Packet
	has  bool
}

func NewRepeat(componentID uint8) (microflo.Processor, *microflo.Base) {
	r := &Repeat{Base: microflo.NewBase(componentID, 1)}
	return r, &r.Base
}

func (r *Repeat) Process(n *microflo.Network, pkt microflo.Packet, port int) {
	if port == -1 {
		if pkt.IsTick() && r.has {
			n.SendFrom(r.NodeID(), PortOut, r.last)
		}
		return
	}
	if port != PortIn {
		return
	}
	r.last = pkt
	r.has = true
}
