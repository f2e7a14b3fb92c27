package microflo

import (
	"log/slog"

	"github.com/jonnor/microflo-go/internal"
)

// NetworkState is the lifecycle state of a Network.
type NetworkState uint8

const (
	NetworkReset NetworkState = iota
	NetworkRunning
	NetworkStopped
)

func (s NetworkState) String() string {
	switch s {
	case NetworkReset:
		return "reset"
	case NetworkRunning:
		return "running"
	case NetworkStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// firstNodeID is the id of the first node ever added; 0 is the "no
// parent"/"no node" sentinel.
const firstNodeID int32 = 1

// nodeSlot holds one live (or freed) node in Network's arena. Slots are
// never compacted: a removed node's slot is simply nilled out and the slot
// index is never reused until Reset.
type nodeSlot struct {
	component Processor
	base      *Base
	parentID  int32
	live      bool
}

// NetworkNotificationHandler receives best-effort lifecycle and data
// events from a Network. All methods must not fail the originating
// operation: a nil handler (checked once per call site) means no
// notifications are delivered, the same nil-safe convention the pack's
// logger wrapper uses for a nil *slog.Logger.
type NetworkNotificationHandler interface {
	NodeAdded(id int32, componentID uint8, parentID int32)
	NodeRemoved(id int32)
	NodesConnected(srcID int32, srcPort int, dstID int32, dstPort int)
	NodesDisconnected(srcID int32, srcPort int, dstID int32, dstPort int)
	NetworkStateChanged(state NetworkState)
	PacketSent(srcID int32, srcPort int, dstID int32, dstPort int, pkt Packet)
	PortSubscriptionChanged(id int32, port int, enabled bool)
	SubgraphConnected(isOutput bool, subgraphID int32, subgraphPort int, childID int32, childPort int)
	EmitDebug(level DebugLevel, code DebugEvent)
}

// logger mirrors the pack's logger{log *slog.Logger} wrapper: a thin,
// nil-safe adapter from DebugLevel to structured logging, embedded in
// Network and HostCommunication so call sites read like h.error(...).
type logger struct {
	log *slog.Logger
}

func (l logger) error(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelError, msg, attrs...)
}
func (l logger) info(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelInfo, msg, attrs...)
}
func (l logger) debug(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelDebug, msg, attrs...)
}
func (l logger) trace(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, internal.LevelTrace, msg, attrs...)
}

// Network owns the node table and message queue, drives ticks, resolves
// message targets (including subgraph redirection), and emits lifecycle
// notifications. Nodes are stored densely in a fixed-capacity arena
// indexed by node id; cross-component references are small integer ids,
// never pointers, following the pack's handlers.nodes []node arena.
type Network struct {
	logger
	nodes               []nodeSlot
	lastAddedNodeIndex  int32
	state               NetworkState
	queue               *MessageQueue
	notificationHandler NetworkNotificationHandler
	debugLevel          DebugLevel
}

// NewNetwork returns a Network with a fixed node capacity and a message
// queue of the given size. log may be nil.
func NewNetwork(maxNodes, maxMessages int, log *slog.Logger) *Network {
	n := &Network{
		logger: logger{log: log},
		nodes:  make([]nodeSlot, maxNodes+int(firstNodeID)),
		queue:  NewMessageQueue(maxMessages),
		state:  NetworkReset,
	}
	n.lastAddedNodeIndex = firstNodeID
	return n
}

func (n *Network) State() NetworkState { return n.state }

func (n *Network) SetNotificationHandler(h NetworkNotificationHandler) {
	n.notificationHandler = h
}

func (n *Network) SetDebugLevel(level DebugLevel) { n.debugLevel = level }

func (n *Network) emitDebug(level DebugLevel, code DebugEvent) {
	if level > n.debugLevel {
		return
	}
	n.trace("debug-event", slog.String("level", level.String()), slog.String("code", code.String()))
	if n.notificationHandler != nil {
		n.notificationHandler.EmitDebug(level, code)
	}
}

func (n *Network) valid(id int32) bool {
	return id >= firstNodeID && id < n.lastAddedNodeIndex && int(id) < len(n.nodes) && n.nodes[id].live
}

func (n *Network) slotFor(id int32) *nodeSlot {
	if !n.valid(id) {
		return nil
	}
	return &n.nodes[id]
}

// AddNode adopts component into the Network, assigning it the next node
// id. parentID must be 0 (no parent) or an existing live node id.
func (n *Network) AddNode(component Processor, base *Base, parentID int32) (int32, error) {
	if component == nil || base == nil {
		n.emitDebug(DebugError, DebugEventNilComponent)
		return 0, ErrNilComponent
	}
	if parentID != 0 && !n.valid(parentID) {
		n.emitDebug(DebugError, DebugEventInvalidParent)
		return 0, ErrInvalidParent
	}
	if int(n.lastAddedNodeIndex) >= len(n.nodes) {
		n.emitDebug(DebugError, DebugEventInvalidNodeID)
		return 0, ErrInvalidNodeID
	}
	id := n.lastAddedNodeIndex
	n.lastAddedNodeIndex++
	base.setNetwork(id, parentID)
	n.nodes[id] = nodeSlot{component: component, base: base, parentID: parentID, live: true}

	n.debug("node-added", slog.Int("id", int(id)), slog.Int("component", int(base.ComponentID())))
	if n.notificationHandler != nil {
		n.notificationHandler.NodeAdded(id, base.ComponentID(), parentID)
	}
	return id, nil
}

// RemoveNode notifies, then destroys the node at id. The slot is not
// compacted and lastAddedNodeIndex is not decremented: the id stays
// invalid until Reset.
func (n *Network) RemoveNode(id int32) error {
	slot := n.slotFor(id)
	if slot == nil {
		n.emitDebug(DebugError, DebugEventInvalidNodeID)
		return ErrInvalidNodeID
	}
	if n.notificationHandler != nil {
		n.notificationHandler.NodeRemoved(id)
	}
	n.nodes[id] = nodeSlot{}
	return nil
}

// Reset destroys every node, clears the queue, rewinds lastAddedNodeIndex
// to firstNodeID, and transitions to NetworkReset.
func (n *Network) Reset() {
	for i := range n.nodes {
		n.nodes[i] = nodeSlot{}
	}
	n.lastAddedNodeIndex = firstNodeID
	n.queue.Clear()
	n.setState(NetworkReset)
}

func (n *Network) setState(s NetworkState) {
	n.state = s
	if n.notificationHandler != nil {
		n.notificationHandler.NetworkStateChanged(s)
	}
}

// Start transitions to Running and distributes one Setup broadcast to
// every live node at port -1.
func (n *Network) Start() {
	n.setState(NetworkRunning)
	n.runSetup()
}

// Stop transitions to Stopped. RunTick and RunSetup become no-ops.
func (n *Network) Stop() {
	n.setState(NetworkStopped)
}

func (n *Network) runSetup() {
	if n.state != NetworkRunning {
		return
	}
	n.distributePacket(packetSetup(), -1)
}

// Connect installs an outbound pointer from (srcID, srcPort) to
// (dstID, dstPort), bounds-checking both ids against the live node table.
func (n *Network) Connect(srcID int32, srcPort int, dstID int32, dstPort int) error {
	src := n.slotFor(srcID)
	if src == nil || !n.valid(dstID) {
		n.emitDebug(DebugError, DebugEventInvalidNodeID)
		return ErrInvalidNodeID
	}
	if err := src.base.Connect(srcPort, dstID, dstPort); err != nil {
		n.emitDebug(DebugError, DebugEventInvalidPort)
		return err
	}
	if n.notificationHandler != nil {
		n.notificationHandler.NodesConnected(srcID, srcPort, dstID, dstPort)
	}
	return nil
}

// Disconnect removes the outbound pointer from (srcID, srcPort).
func (n *Network) Disconnect(srcID int32, srcPort int, dstID int32, dstPort int) error {
	src := n.slotFor(srcID)
	if src == nil {
		n.emitDebug(DebugError, DebugEventInvalidNodeID)
		return ErrInvalidNodeID
	}
	if err := src.base.Disconnect(srcPort); err != nil {
		n.emitDebug(DebugError, DebugEventInvalidPort)
		return err
	}
	if n.notificationHandler != nil {
		n.notificationHandler.NodesDisconnected(srcID, srcPort, dstID, dstPort)
	}
	return nil
}

// SubscribeToPort enables or disables packetSent notifications for a
// port, independent of whether a target is connected.
func (n *Network) SubscribeToPort(nodeID int32, port int, enable bool) error {
	slot := n.slotFor(nodeID)
	if slot == nil {
		n.emitDebug(DebugError, DebugEventInvalidNodeID)
		return ErrInvalidNodeID
	}
	if err := slot.base.Subscribe(port, enable); err != nil {
		n.emitDebug(DebugError, DebugEventInvalidPort)
		return err
	}
	if n.notificationHandler != nil {
		n.notificationHandler.PortSubscriptionChanged(nodeID, port, enable)
	}
	return nil
}

// ConnectSubgraph installs a redirection entry on a SubGraph node. When
// isOutput is false, an external message arriving on subgraphPort is
// redirected to (childID, childPort) inside the subgraph. When true, a
// message that a child of the subgraph addresses to the subgraph on
// subgraphPort is redirected to (childID, childPort). In both cases childID
// must have a parent; that parent is not compared with subgraphID.
func (n *Network) ConnectSubgraph(isOutput bool, subgraphID int32, subgraphPort int, childID int32, childPort int) error {
	subSlot := n.slotFor(subgraphID)
	childSlot := n.slotFor(childID)
	if subSlot == nil || childSlot == nil {
		n.emitDebug(DebugError, DebugEventInvalidNodeID)
		return ErrInvalidNodeID
	}
	sg, ok := subSlot.component.(*SubGraph)
	if !ok || subSlot.base.ComponentID() != IDSubGraph {
		n.emitDebug(DebugError, DebugEventSubgraphUnsupported)
		return ErrSubgraphUnsupported
	}
	if childSlot.base.ParentNodeID() < firstNodeID {
		n.emitDebug(DebugError, DebugEventInvalidParent)
		return ErrInvalidParent
	}
	var err error
	if isOutput {
		err = sg.connectOutput(subgraphPort, childID, childPort)
	} else {
		err = sg.connectInput(subgraphPort, childID, childPort)
	}
	if err != nil {
		n.emitDebug(DebugError, DebugEventInvalidPort)
		return err
	}
	if n.notificationHandler != nil {
		n.notificationHandler.SubgraphConnected(isOutput, subgraphID, subgraphPort, childID, childPort)
	}
	return nil
}

// SendFrom enqueues a source-referred message: the queue's consumer
// resolves the destination via the source component's outbound
// connection table when the message is delivered.
func (n *Network) SendFrom(nodeID int32, port int, pkt Packet) {
	n.queue.Push(Message{Packet: pkt, Node: nodeID, Port: int16(port)})
}

// SendTo enqueues a target-referred message, addressed directly at
// (nodeID, port). Used for externally-injected packets such as the wire
// protocol's SendPacket command.
func (n *Network) SendTo(nodeID int32, port int, pkt Packet) {
	n.queue.Push(Message{Packet: pkt, Node: nodeID, Port: int16(port), TargetReferred: true})
}

// RunTick executes one scheduler cycle: process the previous tick's
// snapshot in FIFO order, then broadcast Tick to every live node. A no-op
// unless the Network is Running.
func (n *Network) RunTick() {
	if n.state != NetworkRunning {
		return
	}
	n.processMessages()
	n.distributePacket(packetTick(), -1)
}

func (n *Network) processMessages() {
	n.queue.NewTick()
	var msg Message
	for n.queue.Pop(&msg) {
		n.deliver(msg)
	}
}

// deliver resolves one message's target (including subgraph redirection)
// and either invokes Process on the resolved node or drops the message.
func (n *Network) deliver(msg Message) {
	destID, destPort, subscribed, ok := n.resolveTarget(msg)
	if subscribed {
		n.notifyPacketSent(msg, destID, destPort)
	}
	if !ok {
		return
	}
	slot := n.slotFor(destID)
	if slot == nil {
		return
	}
	slot.component.Process(n, msg.Packet, int(destPort))
}

// resolveTarget resolves a message to its final (node, port): a
// source-referred message is first rewritten to its connected target, then
// subgraph redirection is checked on both sides (child-emitting-out, then
// external-entering-subgraph) against that same pre-redirect destination —
// neither check sees the other's result, so they do not chain, and there
// is no recursion across nested subgraphs.
func (n *Network) resolveTarget(msg Message) (destID int32, destPort int16, subscribed bool, ok bool) {
	var senderSlot *nodeSlot
	if !msg.TargetReferred {
		senderSlot = n.slotFor(msg.Node)
		if senderSlot == nil {
			return 0, 0, false, false
		}
		conn, err := senderSlot.base.connectionAt(int(msg.Port))
		if err != nil {
			return 0, 0, false, false
		}
		subscribed = conn.subscribed
		if !conn.connected() {
			return 0, 0, subscribed, false
		}
		destID, destPort = conn.targetNode, conn.targetPort
	} else {
		destID, destPort = msg.Node, msg.Port
	}

	// Subgraph redirection: both checks read the same pre-redirect snapshot,
	// matching resolveMessageSubgraph's frozen target/targetPort locals —
	// they do not chain, so a child-emitting-out redirect does not feed into
	// the external-entering-subgraph check. If both fire, the second
	// (external-entering) redirect is the one that sticks, since it is
	// applied last and does not consult the first's result either.
	snapID, snapPort := destID, destPort
	if senderSlot != nil && senderSlot.parentID != 0 && snapID == senderSlot.parentID {
		if parentSlot := n.slotFor(senderSlot.parentID); parentSlot != nil {
			if sg, isSG := parentSlot.component.(*SubGraph); isSG {
				if r := sg.outputConnections[clampSubgraphPort(snapPort)]; r.set {
					destID, destPort = r.targetNode, r.targetPort
				}
			}
		}
	}
	if targetSlot := n.slotFor(snapID); targetSlot != nil && targetSlot.base.ComponentID() == IDSubGraph {
		if sg, isSG := targetSlot.component.(*SubGraph); isSG {
			if r := sg.inputConnections[clampSubgraphPort(snapPort)]; r.set {
				destID, destPort = r.targetNode, r.targetPort
			}
		}
	}

	return destID, destPort, subscribed, destID != 0
}

func clampSubgraphPort(p int16) int16 {
	if p < 0 || int(p) >= SubgraphMaxPorts {
		return 0
	}
	return p
}

func (n *Network) notifyPacketSent(msg Message, destID int32, destPort int16) {
	if n.notificationHandler == nil {
		return
	}
	n.notificationHandler.PacketSent(msg.Node, int(msg.Port), destID, int(destPort), msg.Packet)
}

// distributePacket invokes Process on every live node with pkt and port,
// used for the Setup and Tick broadcast sentinels.
func (n *Network) distributePacket(pkt Packet, port int) {
	for i := range n.nodes {
		if n.nodes[i].live {
			n.nodes[i].component.Process(n, pkt, port)
		}
	}
}

// QueueDropped returns the number of messages silently overwritten by
// queue overflow since construction or the last Reset.
func (n *Network) QueueDropped() uint32 { return n.queue.Dropped() }
