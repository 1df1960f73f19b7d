package device

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
)

// WriteSVG renders the canvas as an SVG document. The turtle is drawn as a
// small triangle when visible.
func (c *Canvas) WriteSVG(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bw := bufio.NewWriter(w)
	width, height := c.config.Width, c.config.Height

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", c.config.Background.Hex())

	for _, l := range c.lines {
		fmt.Fprintf(bw, `  <line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s"/>`+"\n",
			l.From.X, l.From.Y, l.To.X, l.To.Y, l.Color.Hex())
	}
	for _, ci := range c.circles {
		fmt.Fprintf(bw, `  <circle cx="%g" cy="%g" r="%g" fill="none" stroke="%s"/>`+"\n",
			ci.Center.X, ci.Center.Y, ci.Radius, ci.Color.Hex())
	}
	for _, lb := range c.labels {
		fmt.Fprintf(bw, `  <text x="%g" y="%g" fill="%s" font-family="monospace" font-size="12">%s</text>`+"\n",
			lb.At.X, lb.At.Y, lb.Color.Hex(), html.EscapeString(lb.Text))
	}
	if c.state.Visible {
		writeCursor(bw, c.state)
	}

	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

func writeCursor(w io.Writer, s State) {
	const size = 8.0
	var pts [3]Point
	for i, offset := range []float64{0, 140, -140} {
		rad := (s.Heading + offset) * math.Pi / 180
		r := size
		if i > 0 {
			r = size * 0.6
		}
		pts[i] = Point{X: s.Position.X + r*math.Cos(rad), Y: s.Position.Y - r*math.Sin(rad)}
	}
	fmt.Fprintf(w, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="#ff0000"/>`+"\n",
		pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
}

// Hex returns the color in #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses a #rrggbb or rrggbb color.
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
