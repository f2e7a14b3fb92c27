package host

import microflo "github.com/jonnor/microflo-go"

// decodePacket builds a Packet from a SendPacket command's operand bytes,
// per §4.5's packet decoding table. buf is the full 8-byte command; the
// message type occupies buf[3] and the payload starts at buf[4].
func decodePacket(buf [CmdSize]byte) (microflo.Packet, bool) {
	switch microflo.MsgType(buf[3]) {
	case microflo.MsgBracketStart:
		return microflo.PacketBracketStart(), true
	case microflo.MsgBracketEnd:
		return microflo.PacketBracketEnd(), true
	case microflo.MsgVoid:
		return microflo.PacketVoid(), true
	case microflo.MsgInteger:
		v := int32(buf[4]) | int32(buf[5])<<8 | int32(buf[6])<<16 | int32(buf[7])<<24
		return microflo.PacketInt(v), true
	case microflo.MsgByte:
		return microflo.PacketByte(buf[4]), true
	case microflo.MsgBoolean:
		return microflo.PacketBool(buf[4] != 0), true
	default:
		return microflo.PacketInvalid(), false
	}
}

// encodePacketSent truncates the packet's payload to 2 bytes, matching the
// original protocol's PacketSent schema byte-for-byte (documented lossy
// for Integer; the in-process NetworkNotificationHandler still receives
// the full untruncated Packet — only this wire encoder truncates).
func encodePacketSent(srcID int32, srcPort int, dstID int32, dstPort int, pkt microflo.Packet) [CmdSize]byte {
	var cmd [CmdSize]byte
	cmd[0] = byte(GraphCmdPacketSent)
	cmd[1] = byte(srcID)
	cmd[2] = byte(srcPort)
	cmd[3] = byte(dstID)
	cmd[4] = byte(dstPort)
	cmd[5] = byte(pkt.Type())
	payload := pkt.Bytes()
	cmd[6] = payload[0]
	cmd[7] = payload[1]
	return cmd
}
