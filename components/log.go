package components

import (
	"log/slog"

	microflo "github.com/jonnor/microflo-go"
)

// Log writes every packet it receives on its input to a *slog.Logger at
// Info level and forwards it unchanged, so it can be inserted transparently
// between two already-wired nodes.
type Log struct {
	microflo.Base
	log *slog.Logger
}

func NewLog(componentID uint8, log *slog.Logger) (microflo.Processor, *microflo.Base) {
	l := &Log{Base: microflo.NewBase(componentID, 1), log: log}
	return l, &l.Base
}

func (l *Log) Process(n *microflo.Network, pkt microflo.Packet, port int) {
	if port != PortIn {
		return
	}
	if l.log != nil {
		l.log.Info("packet", slog.Int("node", int(l.NodeID())), slog.String("packet", pkt.String()))
	}
	n.SendFrom(l.NodeID(), PortOut, pkt)
}
