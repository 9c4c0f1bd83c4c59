/*
Package palette classifies decoded images as either paletted or truecolor and
packs the colors actually in use into a minimal palette.

A paletted image may carry a sparse or oversized palette, for example a 216
color "web safe" palette where only a handful of entries are referenced. Only
the referenced entries survive, renumbered sequentially in ascending order of
their original index, and every pixel is remapped into a new image using the
packed indices.

The number of colors in use decides the storage mode: up to 2 colors are
stored with 1 bit per pixel, up to 16 with 4 bits and up to 256 with 8 bits.
Anything else is truecolor and is stored as 24 bits per pixel with no palette.
*/
package palette

import (
	"errors"
	"image"
	"image/color"
)

const (
	maxColors1 = 2
	maxColors4 = 16
	maxColors8 = 256

	// Scanline padding so 1 and 4 bit images fill whole bytes
	block1 = 8
	block4 = 2
)

// ErrEmpty is returned when an image has no pixels.
var ErrEmpty = errors.New("palette: image is empty")

// Mode is the storage format of an image. The numeric values are the ones
// written to the generated header.
type Mode int

const (
	// Palette1 stores 1 bit per pixel, 8 scanlines to a byte.
	Palette1 Mode = iota
	// Palette4 stores 4 bits per pixel, 2 scanlines to a byte.
	Palette4
	// Palette8 stores one palette index per byte.
	Palette8
	// TrueColor stores three bytes per pixel and has no palette.
	TrueColor
)

// Modes lists every mode in numeric order.
var Modes = []Mode{Palette1, Palette4, Palette8, TrueColor}

func (m Mode) String() string {
	switch m {
	case Palette1:
		return "PALETTE1"
	case Palette4:
		return "PALETTE4"
	case Palette8:
		return "PALETTE8"
	case TrueColor:
		return "TRUECOLOR"
	}
	return "UNKNOWN"
}

// Bits returns the number of bits used to store each pixel.
func (m Mode) Bits() int {
	switch m {
	case Palette1:
		return 1
	case Palette4:
		return 4
	case Palette8:
		return 8
	}
	return 24
}

// ModeFor returns the smallest mode able to index n colors.
func ModeFor(n int) Mode {
	switch {
	case n <= maxColors1:
		return Palette1
	case n <= maxColors4:
		return Palette4
	case n <= maxColors8:
		return Palette8
	}
	return TrueColor
}

// Pad rounds height up so that the scanlines of a column fill whole bytes
// in the given mode.
func Pad(height int, m Mode) int {
	switch m {
	case Palette1:
		if mod := height % block1; mod > 0 {
			height += block1 - mod
		}
	case Palette4:
		if mod := height % block4; mod > 0 {
			height += block4 - mod
		}
	}
	return height
}

// Color is an opaque 8-bit RGB color. It implements color.Color.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Image is a classified image. Mode tags which of Paletted or RGB holds the
// pixels; the other is nil.
type Image struct {
	Name string

	// Width and Height are the dimensions of the source image, Lines is
	// Height padded for the storage mode.
	Width  int
	Height int
	Lines  int

	Mode Mode

	// Colors is the packed palette and Counts the number of pixels using
	// each entry. Both are nil for truecolor images.
	Colors []Color
	Counts []int

	Paletted *image.Paletted
	RGB      *image.NRGBA
}

// IndexAt returns the packed palette index at (x, y). Rows beyond the
// original height, and truecolor images, read as 0.
func (m *Image) IndexAt(x, y int) uint8 {
	if m.Paletted == nil || y >= m.Height {
		return 0
	}
	return m.Paletted.ColorIndexAt(x, y)
}

// ColorAt returns the color at (x, y). Rows beyond the original height read
// as black.
func (m *Image) ColorAt(x, y int) Color {
	if y >= m.Height {
		return Color{}
	}
	if m.Mode == TrueColor {
		c := m.RGB.NRGBAAt(x, y)
		return Color{c.R, c.G, c.B}
	}
	i := int(m.Paletted.ColorIndexAt(x, y))
	if i >= len(m.Colors) {
		return Color{}
	}
	return m.Colors[i]
}

// Palette returns the packed palette as a color.Palette.
func (m *Image) Palette() color.Palette {
	if m.Mode == TrueColor {
		return nil
	}
	p := make(color.Palette, len(m.Colors))
	for i, c := range m.Colors {
		p[i] = c
	}
	return p
}
