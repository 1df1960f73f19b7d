package device

import (
	"math"
	"sync"
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// Point is a position on the canvas. Y grows downward.
type Point struct {
	X, Y float64
}

// Line is a segment drawn while the pen was down.
type Line struct {
	From, To Point
	Color    Color
}

// CircleShape is a circle outline.
type CircleShape struct {
	Center Point
	Radius float64
	Color  Color
}

// Label is text written at a position.
type Label struct {
	At    Point
	Text  string
	Color Color
}

// CanvasConfig holds canvas dimensions and background.
type CanvasConfig struct {
	Width      int
	Height     int
	Background Color
}

// DefaultCanvasConfig returns a 640x480 canvas on a black background.
func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{Width: 640, Height: 480, Background: Black}
}

// State is a snapshot of the turtle.
type State struct {
	Position Point
	Heading  float64 // degrees, counter-clockwise, 0 points right
	Drawing  bool    // pen down
	Visible  bool
	Color    Color
}

// Canvas is a headless Device that keeps the drawing in memory.
type Canvas struct {
	mu     sync.Mutex
	config CanvasConfig
	state  State

	lines   []Line
	circles []CircleShape
	labels  []Label
}

// NewCanvas creates a canvas with the turtle at the centre, heading 0,
// pen up, visible and drawing in white.
func NewCanvas(cfg CanvasConfig) *Canvas {
	if cfg.Width <= 0 {
		cfg.Width = DefaultCanvasConfig().Width
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultCanvasConfig().Height
	}
	c := &Canvas{config: cfg}
	c.state = State{Position: c.center(), Visible: true, Color: White}
	return c
}

func (c *Canvas) center() Point {
	return Point{X: float64(c.config.Width) / 2, Y: float64(c.config.Height) / 2}
}

// State returns the current turtle state.
func (c *Canvas) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Lines returns the drawn segments.
func (c *Canvas) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Circles returns the drawn circles.
func (c *Canvas) Circles() []CircleShape {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CircleShape(nil), c.circles...)
}

// Labels returns the written text labels.
func (c *Canvas) Labels() []Label {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Label(nil), c.labels...)
}

func (c *Canvas) Forward(distance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.move(distance)
}

func (c *Canvas) Backward(distance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.move(-distance)
}

func (c *Canvas) move(distance float64) {
	rad := c.state.Heading * math.Pi / 180
	from := c.state.Position
	to := Point{
		X: round(from.X + distance*math.Cos(rad)),
		Y: round(from.Y - distance*math.Sin(rad)),
	}
	if c.state.Drawing {
		c.lines = append(c.lines, Line{From: from, To: to, Color: c.state.Color})
	}
	c.state.Position = to
}

func (c *Canvas) TurnLeft(degrees float64) {
	c.mu.Lock()
	c.state.Heading = math.Mod(c.state.Heading+degrees, 360)
	c.mu.Unlock()
}

func (c *Canvas) TurnRight(degrees float64) {
	c.mu.Lock()
	c.state.Heading = math.Mod(c.state.Heading-degrees, 360)
	c.mu.Unlock()
}

func (c *Canvas) PenUp() {
	c.mu.Lock()
	c.state.Drawing = false
	c.mu.Unlock()
}

func (c *Canvas) PenDown() {
	c.mu.Lock()
	c.state.Drawing = true
	c.mu.Unlock()
}

func (c *Canvas) Show() {
	c.mu.Lock()
	c.state.Visible = true
	c.mu.Unlock()
}

func (c *Canvas) Hide() {
	c.mu.Lock()
	c.state.Visible = false
	c.mu.Unlock()
}

func (c *Canvas) WriteText(text string) {
	c.mu.Lock()
	c.labels = append(c.labels, Label{At: c.state.Position, Text: text, Color: c.state.Color})
	c.mu.Unlock()
}

// Circle draws a circle through the turtle position, tangent to its
// heading, with the centre radius pixels to the left. The turtle does not move.
func (c *Canvas) Circle(radius float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Drawing {
		return
	}
	rad := (c.state.Heading + 90) * math.Pi / 180
	center := Point{
		X: round(c.state.Position.X + radius*math.Cos(rad)),
		Y: round(c.state.Position.Y - radius*math.Sin(rad)),
	}
	c.circles = append(c.circles, CircleShape{Center: center, Radius: math.Abs(radius), Color: c.state.Color})
}

// CenteredCircle draws a circle around the turtle position.
func (c *Canvas) CenteredCircle(radius float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Drawing {
		return
	}
	c.circles = append(c.circles, CircleShape{Center: c.state.Position, Radius: math.Abs(radius), Color: c.state.Color})
}

func (c *Canvas) Home() {
	c.mu.Lock()
	c.home()
	c.mu.Unlock()
}

func (c *Canvas) home() {
	c.state.Position = c.center()
	c.state.Heading = 0
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	c.clear()
	c.mu.Unlock()
}

func (c *Canvas) clear() {
	c.lines = nil
	c.circles = nil
	c.labels = nil
}

func (c *Canvas) Reset() {
	c.mu.Lock()
	c.clear()
	c.home()
	c.mu.Unlock()
}

func (c *Canvas) SetColor(r, g, b uint8) {
	c.mu.Lock()
	c.state.Color = Color{r, g, b}
	c.mu.Unlock()
}

// round snaps a coordinate to the pixel grid.
func round(v float64) float64 {
	return math.Round(v)
}

var _ Device = (*Canvas)(nil)
