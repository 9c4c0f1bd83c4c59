package pixel

import (
	"image"
	"image/color"

	"github.com/bodgit/poi/palette"
)

// grays returns a placeholder palette with an entry for every index the
// mode can store, the real palette lives in a separate table.
func grays(m palette.Mode) color.Palette {
	n := 1 << uint(m.Bits())
	p := make(color.Palette, n)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i * 0xff / (n - 1))}
	}
	return p
}

type decoder struct {
	b     []byte
	mode  palette.Mode
	width int
	lines int

	paletted *image.Paletted
	rgb      *image.NRGBA
}

func (d *decoder) check() error {
	switch size := Size(d.mode, d.width, d.lines); {
	case len(d.b) < size:
		return ErrNotEnough
	case len(d.b) > size:
		return ErrTooMuch
	}
	return nil
}

func (d *decoder) decodeColumn(x int, col []byte) {
	switch d.mode {
	case palette.Palette1:
		for i, b := range col {
			for bit := 0; bit < scanlinesPerByte1; bit++ {
				if y := i*scanlinesPerByte1 + bit; y < d.lines {
					d.paletted.SetColorIndex(x, y, b>>bit&0x01)
				}
			}
		}
	case palette.Palette4:
		for i, b := range col {
			y := i * scanlinesPerByte4
			d.paletted.SetColorIndex(x, y, upperNibble(b)>>4)
			if y+1 < d.lines {
				d.paletted.SetColorIndex(x, y+1, lowerNibble(b))
			}
		}
	case palette.Palette8:
		for y, b := range col {
			d.paletted.SetColorIndex(x, y, b)
		}
	default:
		for y := 0; y < d.lines; y++ {
			c := col[y*bytesPerScanline:]
			d.rgb.SetNRGBA(x, y, color.NRGBA{c[0], c[1], c[2], 0xff})
		}
	}
}

func (d *decoder) decode() error {
	if err := d.check(); err != nil {
		return err
	}

	r := image.Rect(0, 0, d.width, d.lines)
	if d.mode == palette.TrueColor {
		d.rgb = image.NewNRGBA(r)
	} else {
		d.paletted = image.NewPaletted(r, grays(d.mode))
	}

	stride := ColumnSize(d.mode, d.lines)
	for x := 0; x < d.width; x++ {
		d.decodeColumn(x, d.b[x*stride:(x+1)*stride])
	}

	return nil
}

// Decode unpacks a pixel table of the given mode and dimensions. Paletted
// modes return an *image.Paletted of packed indices with a placeholder gray
// palette, truecolor returns an *image.NRGBA.
func Decode(b []byte, m palette.Mode, width, lines int) (image.Image, error) {
	d := decoder{
		b:     b,
		mode:  m,
		width: width,
		lines: lines,
	}
	if err := d.decode(); err != nil {
		return nil, err
	}
	if d.rgb != nil {
		return d.rgb, nil
	}
	return d.paletted, nil
}
