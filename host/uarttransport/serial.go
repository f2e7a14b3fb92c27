//go:build !tinygo

// Package uarttransport provides concrete host.HostTransport
// implementations: Serial wraps a real OS serial port for host
// development builds (go.bug.st/serial-backed); the tinygo-tagged Device
// variant wraps on-chip UART peripherals for device builds.
package uarttransport

import (
	"io"
	"log/slog"
	"time"

	"go.bug.st/serial"

	"github.com/jonnor/microflo-go/host"
	"github.com/jonnor/microflo-go/hwio"
	"github.com/jonnor/microflo-go/internal"
)

// reconnectBackoffInit returns a fresh exponential backoff used to spread
// out repeated read failures (cable unplugged, device rebooting) instead
// of hammering the port every tick.
func reconnectBackoffInit() internal.Backoff {
	return internal.NewBackoff(internal.BackoffTransportReconnect)
}

// readTimeout bounds how long RunTick's Read call may block when no bytes
// are pending, so the scheduler loop stays responsive.
const readTimeout = 10 * time.Millisecond

// Serial is a host.HostTransport over an OS serial port, opened with
// go.bug.st/serial — chosen over the retrieved tarm/serial alternative for
// being actively maintained and cross-platform, while following the same
// "wrap the OS serial handle, expose io.ReadWriteCloser" shape other
// retrieved host transports use.
type Serial struct {
	logger
	port       io.ReadWriteCloser
	controller *host.HostCommunication
	readBuf    [64]byte
	backoff    internal.Backoff
}

type logger struct{ log *slog.Logger }

func (l logger) debug(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelDebug, msg, attrs...)
}
func (l logger) error(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelError, msg, attrs...)
}

// Open opens portName at baud and returns a *Serial ready for Setup.
func Open(portName string, baud int, log *slog.Logger) (*Serial, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return &Serial{logger: logger{log: log}, port: port, backoff: reconnectBackoffInit()}, nil
}

// NewWithPort wraps an already-open io.ReadWriteCloser, for tests that
// substitute an in-memory pipe for a real OS port.
func NewWithPort(port io.ReadWriteCloser, log *slog.Logger) *Serial {
	return &Serial{logger: logger{log: log}, port: port, backoff: reconnectBackoffInit()}
}

func (s *Serial) Setup(io hwio.IO, controller *host.HostCommunication) error {
	s.controller = controller
	return nil
}

// RunTick makes one Read of up to len(readBuf) bytes from the port and
// feeds each byte read through controller.ParseByte; bytes beyond that
// stay buffered for the next call. A real serial.Port's Read
// returns immediately with whatever is available when a ReadTimeout is
// configured, so this does not block the scheduler tick indefinitely.
func (s *Serial) RunTick() error {
	n, err := s.port.Read(s.readBuf[:])
	if err != nil && err != io.EOF {
		s.error("serial-read", slog.String("err", err.Error()))
		s.backoff.Miss()
		return err
	}
	if n > 0 {
		s.backoff.Hit()
	}
	for i := 0; i < n; i++ {
		s.controller.ParseByte(s.readBuf[i])
	}
	return nil
}

func (s *Serial) SendCommand(cmd [host.CmdSize]byte) error {
	_, err := s.port.Write(cmd[:])
	if err != nil {
		s.error("serial-write", slog.String("err", err.Error()))
	}
	return err
}

func (s *Serial) Close() error {
	return s.port.Close()
}
