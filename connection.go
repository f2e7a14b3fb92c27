package microflo

import "github.com/jonnor/microflo-go/internal"

// Connection is the binding from one outbound port to a destination node
// and port. targetNode == 0 (the sentinel "no parent"/"no node" id) means
// the port is unconnected.
type Connection struct {
	targetNode int32
	targetPort int16
	subscribed bool
}

func (c Connection) connected() bool { return !internal.IsZeroed(c.targetNode) }
