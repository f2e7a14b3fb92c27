package components

import microflo "github.com/jonnor/microflo-go"

// Forward passes every packet it receives straight through to its single
// output port, including the Bracket sentinels; it ignores Setup/Tick.
type Forward struct {
	microflo.Base
}

func NewForward(componentID uint8) (microflo.Processor, *microflo.Base) {
	f := &Forward{Base: microflo.NewBase(componentID, 1)}
	return f, &f.Base
}

func (f *Forward) Process(n *microflo.Network, pkt microflo.Packet, port int) {
	if port != PortIn {
		return
	}
	n.SendFrom(f.NodeID(), PortOut, pkt)
}
