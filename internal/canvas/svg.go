package canvas

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// SVG is a minimal Canvas backend writing an SVG document.
type SVG struct {
	f   *os.File
	w   *bufio.Writer
	err error
}

// NewSVG creates an SVG canvas of the given page size (points).
func NewSVG(path string, width, height float64) (*SVG, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create SVG output %v", path)
	}
	s := &SVG{f: f, w: bufio.NewWriter(f)}
	s.printf(`<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%.2f" height="%.2f" viewBox="0 0 %.2f %.2f">`+"\n",
		width, height, width, height)
	return s, nil
}

func (s *SVG) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func rgb(c Colour) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5))
}

func (s *SVG) FilledCircle(x, y, r float64, col Colour) {
	s.printf(`<circle cx="%.3f" cy="%.3f" r="%.3f" fill="%s"/>`+"\n", x, y, r, rgb(col))
}

func (s *SVG) Line(x0, y0, x1, y1, width float64, col Colour) {
	s.printf(`<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="%.3f"/>`+"\n",
		x0, y0, x1, y1, rgb(col), width)
}

func (s *SVG) Text(x, y, size float64, anchor TextAnchor, text string, col Colour) {
	a := "start"
	switch anchor {
	case AnchorMiddle:
		a = "middle"
	case AnchorEnd:
		a = "end"
	}
	s.printf(`<text x="%.3f" y="%.3f" font-size="%.2f" text-anchor="%s" fill="%s">%s</text>`+"\n",
		x, y, size, a, escapeText(text), rgb(col))
}

func (s *SVG) Close() error {
	s.printf("</svg>\n")
	if s.err != nil {
		_ = s.f.Close()
		return errors.Wrapf(s.err, "write SVG output %v", s.f.Name())
	}
	if err := s.w.Flush(); err != nil {
		_ = s.f.Close()
		return errors.Wrapf(err, "write SVG output %v", s.f.Name())
	}
	if err := s.f.Close(); err != nil {
		return errors.Wrapf(err, "close SVG output %v", s.f.Name())
	}
	return nil
}

func escapeText(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '&':
			out = append(out, []rune("&amp;")...)
		case '<':
			out = append(out, []rune("&lt;")...)
		case '>':
			out = append(out, []rune("&gt;")...)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
