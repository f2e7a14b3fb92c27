package hwio

// UART is the minimal on-device serial peripheral surface a HostTransport
// needs: read one received byte if available, write one byte out. It is
// declared locally, mirroring a tinygo `machine.UART`'s Buffered/ReadByte/
// WriteByte methods, so that uarttransport.Device compiles without the
// `machine` package present.
type UART interface {
	Buffered() int
	ReadByte() (byte, error)
	WriteByte(b byte) error
}
