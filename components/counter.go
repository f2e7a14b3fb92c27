package components

import microflo "github.com/jonnor/microflo-go"

// Counter emits the number of packets it has received on its input,
// as an Integer, on every received packet (Bracket packets count too).
type Counter struct {
	microflo.Base
	count int32
}

func NewCounter(componentID uint8) (microflo.Processor, *microflo.Base) {
	c := &Counter{Base: microflo.NewBase(componentID, 1)}
	return c, &c.Base
}

func (c *Counter) Process(n *microflo.Network, pkt microflo.Packet, port int) {
	if port != PortIn {
		return
	}
	c.count++
	n.SendFrom(c.NodeID(), PortOut, microflo.PacketInt(c.count))
}
