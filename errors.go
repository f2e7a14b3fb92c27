package microflo

import "errors"

// Sentinel errors reported by Network and HostCommunication operations.
// These are classification markers for emitDebug, not a wrapped chain:
// callers that need detail should read the accompanying DebugEvent.
var (
	ErrInvalidNodeID       = errors.New("microflo: invalid node id")
	ErrInvalidPort         = errors.New("microflo: invalid port")
	ErrNilComponent        = errors.New("microflo: nil component")
	ErrInvalidParent       = errors.New("microflo: invalid parent node id")
	ErrMagicMismatch       = errors.New("microflo: magic mismatch")
	ErrUnknownCommand      = errors.New("microflo: unknown command")
	ErrUnknownPacketType   = errors.New("microflo: unknown packet type")
	ErrSubgraphUnsupported = errors.New("microflo: target is not a subgraph")
)
