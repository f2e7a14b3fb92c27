package hwio

// Sim is a host-side loopback IO implementation for tests and examples: a
// DigitalWrite is immediately visible to DigitalRead on the same pin,
// AnalogWrite likewise for AnalogRead, and each serial id has its own
// receive queue fed only by SerialQueue (so tests can push bytes a component
// would otherwise receive from real hardware). SerialWrite output is
// discarded and never appears on SerialRead.
type Sim struct {
	digital  map[int]bool
	analog   map[int]int
	serial   map[int][]byte
	ioValues [][]byte
}

func NewSim() *Sim {
	return &Sim{
		digital: make(map[int]bool),
		analog:  make(map[int]int),
		serial:  make(map[int][]byte),
	}
}

func (s *Sim) PinMode(pin int, mode PinMode) {}

func (s *Sim) DigitalWrite(pin int, high bool) { s.digital[pin] = high }
func (s *Sim) DigitalRead(pin int) bool        { return s.digital[pin] }

func (s *Sim) AnalogWrite(pin int, value int) { s.analog[pin] = value }
func (s *Sim) AnalogRead(pin int) int         { return s.analog[pin] }

func (s *Sim) SerialBegin(id int, baudRate int) {
	if s.serial[id] == nil {
		s.serial[id] = make([]byte, 0, 16)
	}
}

func (s *Sim) SerialRead(id int) (byte, bool) {
	buf := s.serial[id]
	if len(buf) == 0 {
		return 0, false
	}
	b := buf[0]
	s.serial[id] = buf[1:]
	return b, true
}

// SerialWrite represents output to a peripheral: the byte is discarded.
func (s *Sim) SerialWrite(id int, b byte) {}

func (s *Sim) SerialDataAvailable(id int) bool { return len(s.serial[id]) > 0 }

// SerialQueue feeds bytes that a subsequent SerialRead(id) will return, as
// if they had arrived from a peripheral.
func (s *Sim) SerialQueue(id int, data []byte) {
	s.serial[id] = append(s.serial[id], data...)
}

func (s *Sim) SetIoValue(buffer []byte) {
	cp := append([]byte(nil), buffer...)
	s.ioValues = append(s.ioValues, cp)
}

// IoValues returns every buffer passed to SetIoValue, in order.
func (s *Sim) IoValues() [][]byte { return s.ioValues }
