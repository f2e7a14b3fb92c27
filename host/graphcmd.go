// Package host implements the byte-oriented wire protocol that lets an
// off-device controller introspect and mutate a running Network: create
// components, wire connections, inject packets, subscribe to ports, and
// receive lifecycle notifications back.
package host

// GraphCmd identifies the operation encoded in byte 0 of an 8-byte wire
// command, in both the inbound (host → device) and outbound (device →
// host notification) directions.
type GraphCmd uint8

const (
	GraphCmdCommunicationOpen GraphCmd = iota
	GraphCmdEnd
	GraphCmdTransmissionEnded
	GraphCmdReset
	GraphCmdStopNetwork
	GraphCmdStartNetwork
	GraphCmdNetworkStarted
	GraphCmdNetworkStopped
	GraphCmdNetworkReset
	GraphCmdCreateComponent
	GraphCmdNodeAdded
	GraphCmdRemoveNode
	GraphCmdNodeRemoved
	GraphCmdConnectNodes
	GraphCmdNodesConnected
	GraphCmdDisconnectNodes
	GraphCmdNodesDisconnected
	GraphCmdSendPacket
	GraphCmdSendPacketDone
	GraphCmdPacketSent
	GraphCmdConfigureDebug
	GraphCmdDebug
	GraphCmdSubscribeToPort
	GraphCmdPortSubscriptionChanged
	GraphCmdConnectSubgraphPort
	GraphCmdSubgraphConnected
	GraphCmdPing
	GraphCmdPong
	GraphCmdSetIoValue
	GraphCmdInvalid
)

func (c GraphCmd) String() string {
	switch c {
	case GraphCmdCommunicationOpen:
		return "communication-open"
	case GraphCmdEnd:
		return "end"
	case GraphCmdTransmissionEnded:
		return "transmission-ended"
	case GraphCmdReset:
		return "reset"
	case GraphCmdStopNetwork:
		return "stop-network"
	case GraphCmdStartNetwork:
		return "start-network"
	case GraphCmdNetworkStarted:
		return "network-started"
	case GraphCmdNetworkStopped:
		return "network-stopped"
	case GraphCmdNetworkReset:
		return "network-reset"
	case GraphCmdCreateComponent:
		return "create-component"
	case GraphCmdNodeAdded:
		return "node-added"
	case GraphCmdRemoveNode:
		return "remove-node"
	case GraphCmdNodeRemoved:
		return "node-removed"
	case GraphCmdConnectNodes:
		return "connect-nodes"
	case GraphCmdNodesConnected:
		return "nodes-connected"
	case GraphCmdDisconnectNodes:
		return "disconnect-nodes"
	case GraphCmdNodesDisconnected:
		return "nodes-disconnected"
	case GraphCmdSendPacket:
		return "send-packet"
	case GraphCmdSendPacketDone:
		return "send-packet-done"
	case GraphCmdPacketSent:
		return "packet-sent"
	case GraphCmdConfigureDebug:
		return "configure-debug"
	case GraphCmdDebug:
		return "debug"
	case GraphCmdSubscribeToPort:
		return "subscribe-to-port"
	case GraphCmdPortSubscriptionChanged:
		return "port-subscription-changed"
	case GraphCmdConnectSubgraphPort:
		return "connect-subgraph-port"
	case GraphCmdSubgraphConnected:
		return "subgraph-connected"
	case GraphCmdPing:
		return "ping"
	case GraphCmdPong:
		return "pong"
	case GraphCmdSetIoValue:
		return "set-io-value"
	default:
		return "invalid"
	}
}

// CmdSize is the fixed size, in bytes, of every wire command.
const CmdSize = 8

// Magic is the 8-byte signature marking the start of a host protocol
// exchange, and a resync token usable at any point during ParseCmd.
var Magic = [8]byte{'u', 'C', '/', 'F', 'l', 'o', '0', '1'}
