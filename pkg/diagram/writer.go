package diagram

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const (
	svgOpen  = `<svg xmlns="http://www.w3.org/2000/svg">`
	svgClose = `</svg>`
)

// svgWriter emits the diagram grammar. Write errors are sticky in the
// underlying bufio.Writer and surface from flush.
type svgWriter struct {
	w   *bufio.Writer
	num []byte
}

func (s *svgWriter) str(v string) {
	_, _ = s.w.WriteString(v)
}

// attr writes ` name="value"` for a number.
func (s *svgWriter) attr(name string, v float64) {
	s.str(" ")
	s.str(name)
	s.str(`="`)
	s.num = appendNumber(s.num[:0], v)
	_, _ = s.w.Write(s.num)
	s.str(`"`)
}

// color writes ` name="#RRGGBB"`.
func (s *svgWriter) color(name string, c Color) {
	s.str(" ")
	s.str(name)
	s.str(`="`)
	s.str(string(c))
	s.str(`"`)
}

func (s *svgWriter) line(l *Line) {
	s.str("<line")
	s.color("stroke", l.Stroke)
	s.attr("x1", l.P1.X)
	s.attr("y1", l.P1.Y)
	s.attr("x2", l.P2.X)
	s.attr("y2", l.P2.Y)
	s.str(" />\n")
}

func (s *svgWriter) rect(r *Rect) {
	s.str("<rect")
	s.attr("x", r.X)
	s.attr("y", r.Y)
	s.color("fill", r.Fill)
	s.color("stroke", r.Stroke)
	s.attr("width", r.Width)
	s.attr("height", r.Height)
	s.str(" />\n")
}

// appendNumber formats v as the shortest decimal that reads back exactly,
// without an exponent.
func appendNumber(dst []byte, v float64) []byte {
	return strconv.AppendFloat(dst, v, 'f', -1, 64)
}

// FormatNumber returns the diagram text for a coordinate.
func FormatNumber(v float64) string {
	return string(appendNumber(nil, v))
}

// WriteDiagram serializes d to w: the opening canvas tag, one line per
// crease in order, the optional border rectangle, and the closing tag. It
// performs no validation of coordinates.
func WriteDiagram(w io.Writer, d *Diagram) error {
	s := &svgWriter{w: bufio.NewWriter(w), num: make([]byte, 0, 32)}

	s.str(svgOpen)
	s.str("\n")
	for i := range d.Lines {
		s.line(&d.Lines[i])
	}
	if d.Border != nil {
		s.rect(d.Border)
	}
	s.str(svgClose)
	s.str("\n")

	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("diagram: write: %w", err)
	}
	return nil
}
