package microflo

// Processor is the single-method capability every component implements.
// The Network is passed explicitly so Process can call n.SendFrom without
// the component needing a stored back-pointer into the Network — keeping
// components plain data with no cyclic pointer, per the arena+index design
// of Network's node table.
type Processor interface {
	// Process reacts to a delivered packet on the given port. Port -1
	// denotes the Setup/Tick broadcast sentinels. Process must not block
	// and must return in bounded time.
	Process(n *Network, pkt Packet, port int)
}

// Base is embedded by every concrete component. It owns the fixed outbound
// connection table, node-id bookkeeping assigned at AddNode time, and the
// default no-op Process behavior for components that only care about a
// subset of ports/sentinels.
type Base struct {
	componentID  uint8
	nodeID       int32
	parentNodeID int32
	connections  []Connection
}

// NewBase returns a Base with nPorts outbound connection slots, all
// unconnected. componentID is stored as given: neither NewBase nor
// complib.Library assigns or checks it.
func NewBase(componentID uint8, nPorts int) Base {
	return Base{
		componentID: componentID,
		connections: make([]Connection, nPorts),
	}
}

func (b *Base) NodeID() int32       { return b.nodeID }
func (b *Base) ParentNodeID() int32 { return b.parentNodeID }
func (b *Base) ComponentID() uint8  { return b.componentID }
func (b *Base) NumPorts() int       { return len(b.connections) }

// setNetwork is called by Network.AddNode to adopt this component: it
// assigns the node id and parent id. A component has no network reference
// of its own.
func (b *Base) setNetwork(nodeID, parentNodeID int32) {
	b.nodeID = nodeID
	b.parentNodeID = parentNodeID
}

// Connect installs the outbound pointer for outPort. Returns
// ErrInvalidPort if outPort is out of range.
func (b *Base) Connect(outPort int, target int32, targetPort int) error {
	if outPort < 0 || outPort >= len(b.connections) {
		return ErrInvalidPort
	}
	b.connections[outPort] = Connection{targetNode: target, targetPort: int16(targetPort)}
	return nil
}

// Disconnect removes the outbound pointer for outPort and clears its
// subscription flag.
func (b *Base) Disconnect(outPort int) error {
	if outPort < 0 || outPort >= len(b.connections) {
		return ErrInvalidPort
	}
	b.connections[outPort] = Connection{}
	return nil
}

// Subscribe sets or clears the notification flag for outPort, independent
// of whether a target is connected there.
func (b *Base) Subscribe(outPort int, enable bool) error {
	if outPort < 0 || outPort >= len(b.connections) {
		return ErrInvalidPort
	}
	b.connections[outPort].subscribed = enable
	return nil
}

func (b *Base) connectionAt(outPort int) (Connection, error) {
	if outPort < 0 || outPort >= len(b.connections) {
		return Connection{}, ErrInvalidPort
	}
	return b.connections[outPort], nil
}

// Process is the default no-op behavior. Concrete components define their
// own Process method, which shadows this promoted one.
func (b *Base) Process(n *Network, pkt Packet, port int) {}
