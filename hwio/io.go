// Package hwio defines the platform I/O facade components and transports
// use to reach real hardware, plus a host-side simulated implementation
// for tests and examples. A tinygo-tagged implementation over real
// GPIO/ADC/UART peripherals lives alongside it for on-device builds.
package hwio

// PinMode selects the direction/mode of a digital pin.
type PinMode uint8

const (
	PinModeInput PinMode = iota
	PinModeOutput
	PinModeInputPullup
)

// IO is the platform-specific hardware facade passed to components and
// transports. Implementations are expected to be cheap to call and must
// not block beyond what the underlying peripheral requires.
type IO interface {
	PinMode(pin int, mode PinMode)
	DigitalWrite(pin int, high bool)
	DigitalRead(pin int) bool
	AnalogWrite(pin int, value int)
	AnalogRead(pin int) int

	// SerialBegin/SerialRead/SerialWrite/SerialDataAvailable expose a
	// secondary serial peripheral to components, distinct from whichever
	// serial port a HostTransport itself uses for the wire protocol.
	SerialBegin(id int, baudRate int)
	SerialRead(id int) (byte, bool)
	SerialWrite(id int, b byte)
	SerialDataAvailable(id int) bool

	// SetIoValue passthrough for the wire protocol's SetIoValue command:
	// the raw command buffer is handed to the facade uninterpreted.
	SetIoValue(buffer []byte)
}
