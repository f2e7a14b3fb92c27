// Package components is a small hand-written component library: enough
// to exercise every wiring scenario this repository tests without
// depending on a code generator.
package components

// Port indices shared by every component below: a single input on port 0
// and a single output on port 0, unless documented otherwise.
const (
	PortIn  = 0
	PortOut = 0
)
