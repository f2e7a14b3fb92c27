//go:build tinygo

package hwio

// Device is the on-device IO implementation. It is wired with plain
// function values rather than importing the `machine` package directly
// (closures over concrete hardware calls instead of an interface
// satisfied by a `machine.Pin`), so this package compiles
// without `machine` present and callers supply their own board wiring at
// Configure time.
type Device struct {
	pinMode       func(pin int, mode PinMode)
	digitalWrite  func(pin int, high bool)
	digitalRead   func(pin int) bool
	analogWrite   func(pin int, value int)
	analogRead    func(pin int) int
	serialBegin   func(id int, baudRate int)
	serialRead    func(id int) (byte, bool)
	serialWrite   func(id int, b byte)
	serialPending func(id int) bool
	setIoValue    func(buffer []byte)
}

// DeviceConfig supplies the board-specific primitives Device delegates to.
// Any left nil become no-ops (writes) or always-false/zero (reads).
type DeviceConfig struct {
	PinMode             func(pin int, mode PinMode)
	DigitalWrite        func(pin int, high bool)
	DigitalRead         func(pin int) bool
	AnalogWrite         func(pin int, value int)
	AnalogRead          func(pin int) int
	SerialBegin         func(id int, baudRate int)
	SerialRead          func(id int) (byte, bool)
	SerialWrite         func(id int, b byte)
	SerialDataAvailable func(id int) bool
	SetIoValue          func(buffer []byte)
}

func NewDevice(cfg DeviceConfig) *Device {
	return &Device{
		pinMode:       cfg.PinMode,
		digitalWrite:  cfg.DigitalWrite,
		digitalRead:   cfg.DigitalRead,
		analogWrite:   cfg.AnalogWrite,
		analogRead:    cfg.AnalogRead,
		serialBegin:   cfg.SerialBegin,
		serialRead:    cfg.SerialRead,
		serialWrite:   cfg.SerialWrite,
		serialPending: cfg.SerialDataAvailable,
		setIoValue:    cfg.SetIoValue,
	}
}

func (d *Device) PinMode(pin int, mode PinMode) {
	if d.pinMode != nil {
		d.pinMode(pin, mode)
	}
}

func (d *Device) DigitalWrite(pin int, high bool) {
	if d.digitalWrite != nil {
		d.digitalWrite(pin, high)
	}
}

func (d *Device) DigitalRead(pin int) bool {
	if d.digitalRead == nil {
		return false
	}
	return d.digitalRead(pin)
}

func (d *Device) AnalogWrite(pin int, value int) {
	if d.analogWrite != nil {
		d.analogWrite(pin, value)
	}
}

func (d *Device) AnalogRead(pin int) int {
	if d.analogRead == nil {
		return 0
	}
	return d.analogRead(pin)
}

func (d *Device) SerialBegin(id int, baudRate int) {
	if d.serialBegin != nil {
		d.serialBegin(id, baudRate)
	}
}

func (d *Device) SerialRead(id int) (byte, bool) {
	if d.serialRead == nil {
		return 0, false
	}
	return d.serialRead(id)
}

func (d *Device) SerialWrite(id int, b byte) {
	if d.serialWrite != nil {
		d.serialWrite(id, b)
	}
}

func (d *Device) SerialDataAvailable(id int) bool {
	if d.serialPending == nil {
		return false
	}
	return d.serialPending(id)
}

func (d *Device) SetIoValue(buffer []byte) {
	if d.setIoValue != nil {
		d.setIoValue(buffer)
	}
}
