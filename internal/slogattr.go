package internal

import "log/slog"

// SlogPacketRaw returns a slog.Attr for a packet's 4-byte payload bit-pattern
// packed into a uint64 without allocating a string or byte slice.
func SlogPacketRaw(key string, raw [4]byte) slog.Attr {
	u64 := uint64(raw[0]) | uint64(raw[1])<<8 | uint64(raw[2])<<16 | uint64(raw[3])<<24
	return slog.Uint64(key, u64)
}
