// Package device defines the turtle drawing device driven by scripts and
// provides headless implementations of it.
//
// Canvas keeps the turtle state and the drawing in memory and renders it as
// SVG. Recorder logs every call so a session can be saved as CBOR and
// replayed later onto another device. Nop discards everything.
package device

// Device is a cursor-based drawing surface. Distances are in pixels and
// angles in degrees. Calls are synchronous and never return errors.
type Device interface {
	Forward(distance float64)
	Backward(distance float64)
	TurnLeft(degrees float64)
	TurnRight(degrees float64)
	PenUp()
	PenDown()
	Show()
	Hide()
	WriteText(text string)
	Circle(radius float64)
	CenteredCircle(radius float64)
	Home()
	Clear()
	Reset()
	SetColor(r, g, b uint8)
}

// Nop is a device that ignores every call.
type Nop struct{}

func (Nop) Forward(float64) {}
func (Nop) Backward(float64) {}
func (Nop) TurnLeft(float64) {}
func (Nop) TurnRight(float64) {}
func (Nop) PenUp() {}
func (Nop) PenDown() {}
func (Nop) Show() {}
func (Nop) Hide() {}
func (Nop) WriteText(string) {}
func (Nop) Circle(float64) {}
func (Nop) CenteredCircle(float64) {}
func (Nop) Home() {}
func (Nop) Clear() {}
func (Nop) Reset() {}
func (Nop) SetColor(r, g, b uint8) {}

var _ Device = Nop{}
