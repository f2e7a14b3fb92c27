//go:build tinygo

package uarttransport

import (
	"github.com/jonnor/microflo-go/host"
	"github.com/jonnor/microflo-go/hwio"
)

// Device is a host.HostTransport over an on-chip UART peripheral,
// following the pack's definitions_go.go/definitions_tinygo.go build-tag
// split: the host build talks to a real OS serial port (see serial.go),
// the device build talks directly to hwio.UART with no intermediate
// io.ReadWriteCloser allocation.
type Device struct {
	uart       hwio.UART
	controller *host.HostCommunication
}

func NewDevice(uart hwio.UART) *Device {
	return &Device{uart: uart}
}

func (d *Device) Setup(io hwio.IO, controller *host.HostCommunication) error {
	d.controller = controller
	return nil
}

func (d *Device) RunTick() error {
	for d.uart.Buffered() > 0 {
		b, err := d.uart.ReadByte()
		if err != nil {
			return err
		}
		d.controller.ParseByte(b)
	}
	return nil
}

func (d *Device) SendCommand(cmd [host.CmdSize]byte) error {
	for _, b := range cmd {
		if err := d.uart.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
