package hwio

import "testing"

func TestSimDigitalLoopback(t *testing.T) {
	s := NewSim()
	if s.DigitalRead(3) {
		t.Fatal("expected unwritten pin to read low")
	}
	s.DigitalWrite(3, true)
	if !s.DigitalRead(3) {
		t.Fatal("expected write to be immediately visible to read")
	}
}

func TestSimAnalogLoopback(t *testing.T) {
	s := NewSim()
	s.AnalogWrite(1, 512)
	if got := s.AnalogRead(1); got != 512 {
		t.Fatalf("expected 512, got %d", got)
	}
}

func TestSimSerialQueueAndRead(t *testing.T) {
	s := NewSim()
	s.SerialBegin(0, 9600)
	if s.SerialDataAvailable(0) {
		t.Fatal("expected no data available before queueing")
	}
	s.SerialQueue(0, []byte{1, 2, 3})
	if !s.SerialDataAvailable(0) {
		t.Fatal("expected data available after queueing")
	}
	for _, want := range []byte{1, 2, 3} {
		got, ok := s.SerialRead(0)
		if !ok || got != want {
			t.Fatalf("expected %d, got %d (ok=%v)", want, got, ok)
		}
	}
	if s.SerialDataAvailable(0) {
		t.Fatal("expected queue drained after reading all bytes")
	}
	if _, ok := s.SerialRead(0); ok {
		t.Fatal("expected SerialRead on empty queue to return false")
	}
}

func TestSimSerialWriteDoesNotLoopback(t *testing.T) {
	s := NewSim()
	s.SerialBegin(0, 9600)
	s.SerialWrite(0, 42)
	// SerialWrite represents output to a peripheral, not loopback to
	// SerialRead (which only sees data queued via SerialQueue).
	if s.SerialDataAvailable(0) {
		t.Fatal("expected SerialWrite not to feed SerialRead")
	}
}

func TestSimSetIoValueRecordsBuffers(t *testing.T) {
	s := NewSim()
	s.SetIoValue([]byte{1, 2})
	s.SetIoValue([]byte{3, 4})
	got := s.IoValues()
	if len(got) != 2 || got[0][0] != 1 || got[1][0] != 3 {
		t.Fatalf("expected recorded buffers in order, got %v", got)
	}
}

func TestSimSetIoValueCopiesBuffer(t *testing.T) {
	s := NewSim()
	buf := []byte{9}
	s.SetIoValue(buf)
	buf[0] = 99
	if got := s.IoValues()[0][0]; got != 9 {
		t.Fatalf("expected SetIoValue to copy its buffer, got %d after mutating caller's slice", got)
	}
}
