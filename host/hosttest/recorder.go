// Package hosttest provides a recording microflo.NetworkNotificationHandler
// for tests: a plain struct appending received events to a slice, not a
// generated mock (the pack has no mocking library dependency, and this
// follows suit).
package hosttest

import microflo "github.com/jonnor/microflo-go"

// Event is one recorded notification, with only the fields relevant to
// its Kind populated.
type Event struct {
	Kind        string
	NodeID      int32
	ComponentID uint8
	ParentID    int32
	SrcID       int32
	SrcPort     int
	DstID       int32
	DstPort     int
	Port        int
	Enabled     bool
	IsOutput    bool
	State       microflo.NetworkState
	Packet      microflo.Packet
	Level       microflo.DebugLevel
	Code        microflo.DebugEvent
}

// Recorder implements microflo.NetworkNotificationHandler by appending
// every event it receives to Events, in arrival order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) NodeAdded(id int32, componentID uint8, parentID int32) {
	r.Events = append(r.Events, Event{Kind: "node-added", NodeID: id, ComponentID: componentID, ParentID: parentID})
}

func (r *Recorder) NodeRemoved(id int32) {
	r.Events = append(r.Events, Event{Kind: "node-removed", NodeID: id})
}

func (r *Recorder) NodesConnected(srcID int32, srcPort int, dstID int32, dstPort int) {
	r.Events = append(r.Events, Event{Kind: "nodes-connected", SrcID: srcID, SrcPort: srcPort, DstID: dstID, DstPort: dstPort})
}

func (r *Recorder) NodesDisconnected(srcID int32, srcPort int, dstID int32, dstPort int) {
	r.Events = append(r.Events, Event{Kind: "nodes-disconnected", SrcID: srcID, SrcPort: srcPort, DstID: dstID, DstPort: dstPort})
}

func (r *Recorder) NetworkStateChanged(state microflo.NetworkState) {
	r.Events = append(r.Events, Event{Kind: "network-state-changed", State: state})
}

func (r *Recorder) PacketSent(srcID int32, srcPort int, dstID int32, dstPort int, pkt microflo.Packet) {
	r.Events = append(r.Events, Event{Kind: "packet-sent", SrcID: srcID, SrcPort: srcPort, DstID: dstID, DstPort: dstPort, Packet: pkt})
}

func (r *Recorder) PortSubscriptionChanged(id int32, port int, enabled bool) {
	r.Events = append(r.Events, Event{Kind: "port-subscription-changed", NodeID: id, Port: port, Enabled: enabled})
}

func (r *Recorder) SubgraphConnected(isOutput bool, subgraphID int32, subgraphPort int, childID int32, childPort int) {
	r.Events = append(r.Events, Event{Kind: "subgraph-connected", IsOutput: isOutput, SrcID: subgraphID, SrcPort: subgraphPort, DstID: childID, DstPort: childPort})
}

func (r *Recorder) EmitDebug(level microflo.DebugLevel, code microflo.DebugEvent) {
	r.Events = append(r.Events, Event{Kind: "debug", Level: level, Code: code})
}

// Last returns the most recently recorded event of the given kind and
// true, or the zero Event and false if none was recorded.
func (r *Recorder) Last(kind string) (Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind == kind {
			return r.Events[i], true
		}
	}
	return Event{}, false
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
