package host

import "github.com/jonnor/microflo-go/hwio"

// HostTransport is the abstract bidirectional byte transport between a
// device's HostCommunication and an off-device controller. Implementations
// exist per physical medium (serial, TCP, WebSocket, in-memory pipe for
// tests); HostCommunication depends only on this contract.
type HostTransport interface {
	// Setup wires the transport to an IO facade and the controller that
	// will receive bytes pulled off the medium during RunTick.
	Setup(io hwio.IO, controller *HostCommunication) error
	// RunTick pulls any pending bytes off the medium and feeds each one
	// through controller.ParseByte. Called once per scheduler cycle.
	RunTick() error
	// SendCommand writes an 8-byte command out over the medium.
	SendCommand(cmd [CmdSize]byte) error
}
