package microflo

import (
	"encoding/binary"
	"math"
	"strconv"
)

// MsgType discriminates the payload carried by a Packet.
type MsgType uint8

const (
	MsgVoid MsgType = iota
	MsgBracketStart
	MsgBracketEnd
	MsgBoolean
	MsgByte
	MsgInteger
	MsgFloat
	msgSetup
	msgTick
	MsgInvalid
)

func (t MsgType) String() string {
	switch t {
	case MsgVoid:
		return "void"
	case MsgBracketStart:
		return "bracket-start"
	case MsgBracketEnd:
		return "bracket-end"
	case MsgBoolean:
		return "bool"
	case MsgByte:
		return "byte"
	case MsgInteger:
		return "integer"
	case MsgFloat:
		return "float"
	case msgSetup:
		return "setup"
	case msgTick:
		return "tick"
	default:
		return "invalid"
	}
}

// Packet is a small tagged value transported over a Connection. It owns no
// heap memory: the payload for Bool/Byte/Integer/Float variants is packed
// into raw, and structural equality is a plain ==.
type Packet struct {
	tag MsgType
	raw [4]byte
}

func (p Packet) Type() MsgType { return p.tag }

func (p Packet) IsValid() bool { return p.tag != MsgInvalid }
func (p Packet) IsVoid() bool  { return p.tag == MsgVoid }
func (p Packet) IsBool() bool  { return p.tag == MsgBoolean }
func (p Packet) IsNumber() bool {
	return p.tag == MsgByte || p.tag == MsgInteger || p.tag == MsgFloat
}
func (p Packet) IsData() bool {
	switch p.tag {
	case MsgBoolean, MsgByte, MsgInteger, MsgFloat, MsgVoid:
		return true
	default:
		return false
	}
}
func (p Packet) IsBracket() bool { return p.tag == MsgBracketStart || p.tag == MsgBracketEnd }
func (p Packet) IsInteger() bool { return p.tag == MsgInteger }

// IsSetup/IsTick let components distinguish the two broadcast sentinels
// delivered on port -1 without depending on the unexported tag values.
func (p Packet) IsSetup() bool { return p.tag == msgSetup }
func (p Packet) IsTick() bool  { return p.tag == msgTick }

// AsBool applies the void-coercion rule: a Void packet reads as true; any
// other variant returns its stored boolean bit-pattern without conversion.
func (p Packet) AsBool() bool {
	if p.tag == MsgVoid {
		return true
	}
	return p.raw[0] != 0
}

// AsInteger applies the void-coercion rule: Void reads as 0.
func (p Packet) AsInteger() int32 {
	if p.tag == MsgVoid {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(p.raw[:]))
}

// AsFloat applies the void-coercion rule: Void reads as 0.0.
func (p Packet) AsFloat() float32 {
	if p.tag == MsgVoid {
		return 0
	}
	bits := binary.LittleEndian.Uint32(p.raw[:])
	return math.Float32frombits(bits)
}

// AsByte applies the void-coercion rule: Void reads as 0.
func (p Packet) AsByte() byte {
	if p.tag == MsgVoid {
		return 0
	}
	return p.raw[0]
}

// Bytes returns the packed little-endian payload, used by wire encoding in
// microflo/host.
func (p Packet) Bytes() [4]byte { return p.raw }

func PacketVoid() Packet         { return Packet{tag: MsgVoid} }
func PacketBracketStart() Packet { return Packet{tag: MsgBracketStart} }
func PacketBracketEnd() Packet   { return Packet{tag: MsgBracketEnd} }
func PacketInvalid() Packet      { return Packet{tag: MsgInvalid} }

func PacketBool(v bool) Packet {
	p := Packet{tag: MsgBoolean}
	if v {
		p.raw[0] = 1
	}
	return p
}

func PacketByte(v byte) Packet {
	return Packet{tag: MsgByte, raw: [4]byte{v, 0, 0, 0}}
}

func PacketInt(v int32) Packet {
	p := Packet{tag: MsgInteger}
	binary.LittleEndian.PutUint32(p.raw[:], uint32(v))
	return p
}

func PacketFloat(v float32) Packet {
	p := Packet{tag: MsgFloat}
	binary.LittleEndian.PutUint32(p.raw[:], math.Float32bits(v))
	return p
}

// packetSetup and packetTick are unexported: only the Network ever produces
// the broadcast sentinels delivered on port -1.
func packetSetup() Packet { return Packet{tag: msgSetup} }
func packetTick() Packet  { return Packet{tag: msgTick} }

func (p Packet) String() string {
	switch p.tag {
	case MsgVoid, MsgBracketStart, MsgBracketEnd, msgSetup, msgTick, MsgInvalid:
		return p.tag.String()
	case MsgBoolean:
		return "bool(" + strconv.FormatBool(p.AsBool()) + ")"
	case MsgByte:
		return "byte(" + strconv.Itoa(int(p.AsByte())) + ")"
	case MsgInteger:
		return "int(" + strconv.Itoa(int(p.AsInteger())) + ")"
	case MsgFloat:
		return "float(" + strconv.FormatFloat(float64(p.AsFloat()), 'g', -1, 32) + ")"
	default:
		return "packet(?)"
	}
}
