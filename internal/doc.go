// Package internal holds small allocation-free helpers shared across the
// microflo module's packages: structured-logging glue that degrades to a
// non-allocating print-based logger under the debugheaplog build tag, a
// generic zero-value check safe for both Go and TinyGo, a reconnect backoff
// whose Miss sleeps the calling goroutine, and a non-cryptographic PRNG for
// jitter and tests.
package internal
