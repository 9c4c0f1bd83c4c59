/*
Package pixel implements the packed pixel tables read by the poi firmware.

Images are stored column by column as the poi sweeps horizontally; every
column holds one value per LED, top to bottom. Within a column the layout
depends on the storage mode:

	PALETTE1   8 scanlines per byte, bit i is scanline 8k+i (LSB first)
	PALETTE4   2 scanlines per byte, high nibble is the earlier scanline
	PALETTE8   1 byte per scanline, the palette index
	TRUECOLOR  3 bytes per scanline, red, green then blue

Every column is as long as the tallest image so the firmware can use a fixed
stride. Scanlines past the bottom of a shorter image are zero, which is off
in every mode.
*/
package pixel

import (
	"errors"

	"github.com/bodgit/poi/palette"
)

const (
	scanlinesPerByte1 = 8
	scanlinesPerByte4 = 2
	bytesPerScanline  = 3
)

var (
	// ErrNotEnough is returned when decoding a table that is too short.
	ErrNotEnough = errors.New("pixel: not enough image data")
	// ErrTooMuch is returned when decoding a table that is too long.
	ErrTooMuch = errors.New("pixel: too much image data")
	// ErrLines is returned when the column length can't hold the image.
	ErrLines = errors.New("pixel: column shorter than image")
)

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// ColumnSize returns the number of bytes used by one column of lines
// scanlines in the given mode.
func ColumnSize(m palette.Mode, lines int) int {
	switch m {
	case palette.Palette1:
		return (lines + scanlinesPerByte1 - 1) / scanlinesPerByte1
	case palette.Palette4:
		return (lines + scanlinesPerByte4 - 1) / scanlinesPerByte4
	case palette.Palette8:
		return lines
	}
	return lines * bytesPerScanline
}

// Size returns the number of bytes used by an image of the given width.
func Size(m palette.Mode, width, lines int) int {
	return width * ColumnSize(m, lines)
}
