package pixel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bodgit/poi/current"
	"github.com/bodgit/poi/palette"
)

type encoder struct {
	w    io.Writer
	n    int
	corr current.Correction
	buf  []byte
}

func (e *encoder) column(m *palette.Image, x, lines int) {
	switch m.Mode {
	case palette.Palette1:
		for y := 0; y < lines; y += scanlinesPerByte1 {
			var b byte
			for bit := 0; bit < scanlinesPerByte1; bit++ {
				b |= m.IndexAt(x, y+bit)&0x01<<bit
			}
			e.buf = append(e.buf, b)
		}
	case palette.Palette4:
		for y := 0; y < lines; y += scanlinesPerByte4 {
			// This is masking off any bits leaving a 0-15 value
			e.buf = append(e.buf, m.IndexAt(x, y)&0x0f<<4|m.IndexAt(x, y+1)&0x0f)
		}
	case palette.Palette8:
		for y := 0; y < lines; y++ {
			e.buf = append(e.buf, m.IndexAt(x, y))
		}
	default:
		for y := 0; y < lines; y++ {
			if y >= m.Height {
				e.buf = append(e.buf, 0, 0, 0)
				continue
			}
			c := e.corr.Apply(m.ColorAt(x, y))
			e.buf = append(e.buf, c.R, c.G, c.B)
		}
	}
}

func (e *encoder) encode(m *palette.Image, lines int) error {
	for x := 0; x < m.Width; x++ {
		e.buf = e.buf[:0]
		e.column(m, x, lines)

		n, err := e.w.Write(e.buf)
		e.n += n
		if err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the packed pixels of m to w with every column lines
// scanlines long. Truecolor pixels are corrected with c; paletted images
// store indices so c only applies to their palette. It returns the number
// of bytes written.
func Encode(w io.Writer, m *palette.Image, lines int, c current.Correction) (int, error) {
	if lines < m.Lines {
		return 0, fmt.Errorf("%s: %w (%d < %d)", m.Name, ErrLines, lines, m.Lines)
	}

	e := encoder{
		w:    w,
		corr: c,
		buf:  make([]byte, 0, ColumnSize(m.Mode, lines)),
	}

	err := e.encode(m, lines)
	return e.n, err
}

// Pack returns the packed pixels of m as a byte slice.
func Pack(m *palette.Image, lines int, c current.Correction) ([]byte, error) {
	b := new(bytes.Buffer)
	b.Grow(Size(m.Mode, m.Width, lines))
	if _, err := Encode(b, m, lines, c); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
