package host

import (
	"log/slog"

	microflo "github.com/jonnor/microflo-go"
	"github.com/jonnor/microflo-go/complib"
	"github.com/jonnor/microflo-go/internal"
)

// parserState is HostCommunication's byte-stream state.
type parserState uint8

const (
	stateLookForHeader parserState = iota
	stateParseHeader
	stateParseCmd
	stateInvalid
)

// HostCommunication is a byte-stream state machine implementing the wire
// protocol (§4.5): it decodes inbound commands and calls into Network,
// and implements microflo.NetworkNotificationHandler to encode Network
// events back out over transport.
type HostCommunication struct {
	logger
	net       *microflo.Network
	transport HostTransport
	library   *complib.Library

	state      parserState
	buf        [CmdSize]byte
	bufLen     int
	debugLevel microflo.DebugLevel
}

type logger struct{ log *slog.Logger }

func (l logger) detailed(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelDebug, msg, attrs...)
}
func (l logger) veryDetailed(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, internal.LevelTrace, msg, attrs...)
}
func (l logger) error(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelError, msg, attrs...)
}

// NewHostCommunication wires hc as net's notification handler and returns
// it ready to receive bytes via ParseByte. library resolves CreateComponent
// commands to concrete components; pass complib.Default() for a zero-config
// registry.
func NewHostCommunication(net *microflo.Network, transport HostTransport, library *complib.Library, log *slog.Logger) *HostCommunication {
	hc := &HostCommunication{
		logger:    logger{log: log},
		net:       net,
		transport: transport,
		library:   library,
	}
	net.SetNotificationHandler(hc)
	hc.detailed("host-communication-started")
	return hc
}

// ParseByte is the streaming entry point, called once per received byte
// by a transport's RunTick.
func (hc *HostCommunication) ParseByte(b byte) {
	if hc.bufLen < len(hc.buf) {
		hc.buf[hc.bufLen] = b
		hc.bufLen++
	}

	switch hc.state {
	case stateParseHeader:
		hc.veryDetailed("parse-header")
		if hc.bufLen == len(Magic) {
			if hc.buf == Magic {
				hc.detailed("magic-matched")
				hc.sendOpen()
				hc.state = stateParseCmd
			} else {
				hc.reportProtocolError("magic-mismatch", microflo.DebugEventMagicMismatch, microflo.ErrMagicMismatch)
				hc.state = stateInvalid
			}
			hc.bufLen = 0
		}
	case stateParseCmd:
		hc.veryDetailed("parse-command")
		if hc.bufLen == CmdSize {
			if hc.buf == Magic {
				hc.detailed("magic-matched")
				hc.sendOpen()
				// stays in ParseCmd: the magic is a repeatable resync token
			} else {
				hc.parseCmd()
			}
			hc.bufLen = 0
		}
	case stateLookForHeader:
		hc.veryDetailed("look-for-header")
		if b == Magic[0] {
			hc.state = stateParseHeader
			hc.buf[0] = b
			hc.bufLen = 1
		} else {
			hc.bufLen = 0
		}
	case stateInvalid:
		hc.EmitDebug(microflo.DebugError, microflo.DebugEventParserInvalidState)
		hc.error("parser-invalid-state")
		hc.bufLen = 0
		hc.state = stateLookForHeader
	default:
		hc.bufLen = 0
		hc.state = stateLookForHeader
	}
}

// ParseBytes is a convenience loop over ParseByte for transports that
// deliver chunks, e.g. after a serial Read.
func (hc *HostCommunication) ParseBytes(buf []byte) {
	for _, b := range buf {
		hc.ParseByte(b)
	}
}

func (hc *HostCommunication) sendOpen() {
	hc.send(GraphCmdCommunicationOpen)
}

// reportProtocolError logs and emits a debug notification for a malformed
// wire-protocol condition detected before any Network call is made.
func (hc *HostCommunication) reportProtocolError(msg string, event microflo.DebugEvent, err error) {
	hc.error(msg, slog.Any("err", err))
	hc.EmitDebug(microflo.DebugError, event)
}

func (hc *HostCommunication) send(cmd GraphCmd, operands ...byte) {
	var out [CmdSize]byte
	out[0] = byte(cmd)
	copy(out[1:], operands)
	if hc.transport != nil {
		hc.transport.SendCommand(out)
	}
}

func (hc *HostCommunication) parseCmd() {
	cmd := GraphCmd(hc.buf[0])
	switch cmd {
	case GraphCmdEnd:
		hc.detailed("end-of-transmission")
		hc.send(GraphCmdTransmissionEnded)
		hc.state = stateLookForHeader

	case GraphCmdReset:
		hc.net.Reset()
	case GraphCmdStopNetwork:
		hc.net.Stop()
	case GraphCmdStartNetwork:
		hc.net.Start()

	case GraphCmdCreateComponent:
		hc.detailed("component-create-start")
		componentID := hc.buf[1]
		parentID := int32(hc.buf[2])
		component, base, ok := hc.library.Create(componentID)
		if !ok {
			hc.error("unknown-component", slog.Int("component", int(componentID)))
			return
		}
		hc.net.AddNode(component, base, parentID)

	case GraphCmdRemoveNode:
		hc.net.RemoveNode(int32(hc.buf[1]))

	case GraphCmdConnectNodes:
		// operand layout: srcId, dstId, srcPort, dstPort
		hc.detailed("connect-nodes-start")
		hc.net.Connect(int32(hc.buf[1]), int(hc.buf[3]), int32(hc.buf[2]), int(hc.buf[4]))

	case GraphCmdDisconnectNodes:
		hc.net.Disconnect(int32(hc.buf[1]), int(hc.buf[3]), int32(hc.buf[2]), int(hc.buf[4]))

	case GraphCmdSendPacket:
		pkt, ok := decodePacket(hc.buf)
		if !ok {
			hc.reportProtocolError("unknown-packet-type", microflo.DebugEventUnknownPacketType, microflo.ErrUnknownPacketType)
			return
		}
		nodeID, port := int32(hc.buf[1]), int(hc.buf[2])
		hc.veryDetailed("send-packet", slog.Int("node", int(nodeID)), slog.Int("port", port), internal.SlogPacketRaw("raw", pkt.Bytes()))
		hc.net.SendTo(nodeID, port, pkt)
		hc.send(GraphCmdSendPacketDone, hc.buf[1], hc.buf[2], byte(pkt.Type()))

	case GraphCmdConfigureDebug:
		hc.net.SetDebugLevel(microflo.DebugLevel(hc.buf[1]))

	case GraphCmdSubscribeToPort:
		hc.net.SubscribeToPort(int32(hc.buf[1]), int(hc.buf[2]), hc.buf[3] != 0)

	case GraphCmdConnectSubgraphPort:
		isOutput := hc.buf[1] != 0
		hc.net.ConnectSubgraph(isOutput, int32(hc.buf[2]), int(hc.buf[3]), int32(hc.buf[4]), int(hc.buf[5]))

	case GraphCmdPing:
		hc.send(GraphCmdPong, hc.buf[1], hc.buf[2], hc.buf[3], hc.buf[4], hc.buf[5], hc.buf[6], hc.buf[7])

	case GraphCmdSetIoValue:
		// Accepted and ignored: HostCommunication holds no IO reference, so
		// the buffer is not passed to any hwio.IO.

	default:
		if cmd >= GraphCmdInvalid {
			hc.reportProtocolError("parser-invalid-command", microflo.DebugEventUnknownCommand, microflo.ErrUnknownCommand)
		} else {
			hc.reportProtocolError("unknown-command", microflo.DebugEventUnknownCommand, microflo.ErrUnknownCommand)
		}
	}
}

// microflo.NetworkNotificationHandler implementation: every mutation
// reports back over the wire with the same operand schema as the inbound
// form.

func (hc *HostCommunication) NodeAdded(id int32, componentID uint8, parentID int32) {
	hc.send(GraphCmdNodeAdded, byte(id), componentID, byte(parentID))
}

func (hc *HostCommunication) NodeRemoved(id int32) {
	hc.send(GraphCmdNodeRemoved, byte(id))
}

func (hc *HostCommunication) NodesConnected(srcID int32, srcPort int, dstID int32, dstPort int) {
	hc.send(GraphCmdNodesConnected, byte(srcID), byte(dstID), byte(srcPort), byte(dstPort))
}

func (hc *HostCommunication) NodesDisconnected(srcID int32, srcPort int, dstID int32, dstPort int) {
	hc.send(GraphCmdNodesDisconnected, byte(srcID), byte(dstID), byte(srcPort), byte(dstPort))
}

func (hc *HostCommunication) NetworkStateChanged(state microflo.NetworkState) {
	switch state {
	case microflo.NetworkRunning:
		hc.send(GraphCmdNetworkStarted)
	case microflo.NetworkStopped:
		hc.send(GraphCmdNetworkStopped)
	case microflo.NetworkReset:
		hc.send(GraphCmdNetworkReset)
	}
}

func (hc *HostCommunication) PacketSent(srcID int32, srcPort int, dstID int32, dstPort int, pkt microflo.Packet) {
	cmd := encodePacketSent(srcID, srcPort, dstID, dstPort, pkt)
	if hc.transport != nil {
		hc.transport.SendCommand(cmd)
	}
}

func (hc *HostCommunication) PortSubscriptionChanged(id int32, port int, enabled bool) {
	var e byte
	if enabled {
		e = 1
	}
	hc.send(GraphCmdPortSubscriptionChanged, byte(id), byte(port), e)
}

func (hc *HostCommunication) SubgraphConnected(isOutput bool, subgraphID int32, subgraphPort int, childID int32, childPort int) {
	var o byte
	if isOutput {
		o = 1
	}
	hc.send(GraphCmdSubgraphConnected, o, byte(subgraphID), byte(subgraphPort), byte(childID), byte(childPort))
}

func (hc *HostCommunication) EmitDebug(level microflo.DebugLevel, code microflo.DebugEvent) {
	hc.send(GraphCmdDebug, byte(level), byte(code))
}
