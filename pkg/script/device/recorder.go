package device

import (
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Op names a device call.
type Op string

const (
	OpForward        Op = "forward"
	OpBackward       Op = "backward"
	OpTurnLeft       Op = "left"
	OpTurnRight      Op = "right"
	OpPenUp          Op = "penup"
	OpPenDown        Op = "pendown"
	OpShow           Op = "show"
	OpHide           Op = "hide"
	OpWriteText      Op = "write"
	OpCircle         Op = "circle"
	OpCenteredCircle Op = "ccircle"
	OpHome           Op = "home"
	OpClear          Op = "clear"
	OpReset          Op = "reset"
	OpSetColor       Op = "color"
)

// Call is one recorded device call.
type Call struct {
	Op   Op        `cbor:"1,keyasint"`
	Args []float64 `cbor:"2,keyasint,omitempty"`
	Text string    `cbor:"3,keyasint,omitempty"`
}

// Recording is a serializable sequence of device calls.
type Recording struct {
	Version int    `cbor:"1,keyasint"`
	Width   int    `cbor:"2,keyasint,omitempty"`
	Height  int    `cbor:"3,keyasint,omitempty"`
	Calls   []Call `cbor:"4,keyasint"`
}

// RecordingVersion is the current recording format version.
const RecordingVersion = 1

// cborEncMode uses canonical encoding so equal recordings encode identically.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("device: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Recorder logs every call and forwards it to an optional wrapped device.
type Recorder struct {
	mu    sync.Mutex
	next  Device
	calls []Call
}

// NewRecorder creates a recorder forwarding to next. next may be nil.
func NewRecorder(next Device) *Recorder {
	return &Recorder{next: next}
}

// Calls returns the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Recording returns the calls as a recording for a canvas of the given size.
func (r *Recorder) Recording(width, height int) *Recording {
	return &Recording{
		Version: RecordingVersion,
		Width:   width,
		Height:  height,
		Calls:   r.Calls(),
	}
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *Recorder) Forward(distance float64) {
	r.record(Call{Op: OpForward, Args: []float64{distance}})
	if r.next != nil {
		r.next.Forward(distance)
	}
}

func (r *Recorder) Backward(distance float64) {
	r.record(Call{Op: OpBackward, Args: []float64{distance}})
	if r.next != nil {
		r.next.Backward(distance)
	}
}

func (r *Recorder) TurnLeft(degrees float64) {
	r.record(Call{Op: OpTurnLeft, Args: []float64{degrees}})
	if r.next != nil {
		r.next.TurnLeft(degrees)
	}
}

func (r *Recorder) TurnRight(degrees float64) {
	r.record(Call{Op: OpTurnRight, Args: []float64{degrees}})
	if r.next != nil {
		r.next.TurnRight(degrees)
	}
}

func (r *Recorder) PenUp() {
	r.record(Call{Op: OpPenUp})
	if r.next != nil {
		r.next.PenUp()
	}
}

func (r *Recorder) PenDown() {
	r.record(Call{Op: OpPenDown})
	if r.next != nil {
		r.next.PenDown()
	}
}

func (r *Recorder) Show() {
	r.record(Call{Op: OpShow})
	if r.next != nil {
		r.next.Show()
	}
}

func (r *Recorder) Hide() {
	r.record(Call{Op: OpHide})
	if r.next != nil {
		r.next.Hide()
	}
}

func (r *Recorder) WriteText(text string) {
	r.record(Call{Op: OpWriteText, Text: text})
	if r.next != nil {
		r.next.WriteText(text)
	}
}

func (r *Recorder) Circle(radius float64) {
	r.record(Call{Op: OpCircle, Args: []float64{radius}})
	if r.next != nil {
		r.next.Circle(radius)
	}
}

func (r *Recorder) CenteredCircle(radius float64) {
	r.record(Call{Op: OpCenteredCircle, Args: []float64{radius}})
	if r.next != nil {
		r.next.CenteredCircle(radius)
	}
}

func (r *Recorder) Home() {
	r.record(Call{Op: OpHome})
	if r.next != nil {
		r.next.Home()
	}
}

func (r *Recorder) Clear() {
	r.record(Call{Op: OpClear})
	if r.next != nil {
		r.next.Clear()
	}
}

func (r *Recorder) Reset() {
	r.record(Call{Op: OpReset})
	if r.next != nil {
		r.next.Reset()
	}
}

func (r *Recorder) SetColor(red, green, blue uint8) {
	r.record(Call{Op: OpSetColor, Args: []float64{float64(red), float64(green), float64(blue)}})
	if r.next != nil {
		r.next.SetColor(red, green, blue)
	}
}

var _ Device = (*Recorder)(nil)

// MarshalRecording serializes a recording to canonical CBOR.
func MarshalRecording(rec *Recording) ([]byte, error) {
	return cborEncMode.Marshal(rec)
}

// UnmarshalRecording deserializes a recording from CBOR.
func UnmarshalRecording(data []byte) (*Recording, error) {
	var rec Recording
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("device: unmarshal recording: %w", err)
	}
	if rec.Version != RecordingVersion {
		return nil, fmt.Errorf("device: unsupported recording version %d", rec.Version)
	}
	return &rec, nil
}

// Replay issues every call of the recording on d.
func (rec *Recording) Replay(d Device) error {
	for i, c := range rec.Calls {
		if err := apply(d, c); err != nil {
			return fmt.Errorf("device: call %d: %w", i, err)
		}
	}
	return nil
}

func apply(d Device, c Call) error {
	arg := func(n int) (float64, error) {
		if len(c.Args) != n {
			return 0, fmt.Errorf("%s expects %d argument(s), got %d", c.Op, n, len(c.Args))
		}
		return c.Args[0], nil
	}

	switch c.Op {
	case OpForward, OpBackward, OpTurnLeft, OpTurnRight, OpCircle, OpCenteredCircle:
		v, err := arg(1)
		if err != nil {
			return err
		}
		switch c.Op {
		case OpForward:
			d.Forward(v)
		case OpBackward:
			d.Backward(v)
		case OpTurnLeft:
			d.TurnLeft(v)
		case OpTurnRight:
			d.TurnRight(v)
		case OpCircle:
			d.Circle(v)
		default:
			d.CenteredCircle(v)
		}
	case OpSetColor:
		if _, err := arg(3); err != nil {
			return err
		}
		d.SetColor(uint8(c.Args[0]), uint8(c.Args[1]), uint8(c.Args[2]))
	case OpWriteText:
		d.WriteText(c.Text)
	case OpPenUp:
		d.PenUp()
	case OpPenDown:
		d.PenDown()
	case OpShow:
		d.Show()
	case OpHide:
		d.Hide()
	case OpHome:
		d.Home()
	case OpClear:
		d.Clear()
	case OpReset:
		d.Reset()
	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}
	return nil
}
