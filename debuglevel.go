package microflo

import (
	"log/slog"

	"github.com/jonnor/microflo-go/internal"
)

// DebugLevel gates which debug events reach a NetworkNotificationHandler.
type DebugLevel uint8

const (
	DebugError DebugLevel = iota
	DebugInfo
	DebugDetailed
	DebugVeryDetailed
)

// SlogLevel maps a DebugLevel onto the equivalent log/slog.Level, so a
// NetworkNotificationHandler can delegate straight to a *slog.Logger.
func (d DebugLevel) SlogLevel() slog.Level {
	switch d {
	case DebugError:
		return slog.LevelError
	case DebugInfo:
		return slog.LevelInfo
	case DebugDetailed:
		return slog.LevelDebug
	default:
		return internal.LevelTrace
	}
}

func (d DebugLevel) String() string {
	switch d {
	case DebugError:
		return "error"
	case DebugInfo:
		return "info"
	case DebugDetailed:
		return "detailed"
	case DebugVeryDetailed:
		return "very-detailed"
	default:
		return "unknown"
	}
}

// DebugEvent identifies the reason a debug notification was emitted.
type DebugEvent uint8

const (
	DebugEventInvalidNodeID DebugEvent = iota
	DebugEventInvalidPort
	DebugEventNilComponent
	DebugEventInvalidParent
	DebugEventQueueOverflow
	DebugEventMagicMismatch
	DebugEventUnknownCommand
	DebugEventUnknownPacketType
	DebugEventSubgraphUnsupported
	DebugEventParserInvalidState
)

func (e DebugEvent) String() string {
	switch e {
	case DebugEventInvalidNodeID:
		return "invalid-node-id"
	case DebugEventInvalidPort:
		return "invalid-port"
	case DebugEventNilComponent:
		return "nil-component"
	case DebugEventInvalidParent:
		return "invalid-parent"
	case DebugEventQueueOverflow:
		return "queue-overflow"
	case DebugEventMagicMismatch:
		return "magic-mismatch"
	case DebugEventUnknownCommand:
		return "unknown-command"
	case DebugEventUnknownPacketType:
		return "unknown-packet-type"
	case DebugEventSubgraphUnsupported:
		return "subgraph-unsupported"
	case DebugEventParserInvalidState:
		return "parser-invalid-state"
	default:
		return "unknown-event"
	}
}
