/*
Package table writes the C declarations that make up a generated graphics
header: the format defines, gamma corrected palettes and packed pixel data,
all placed in PROGMEM.
*/
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/poi/palette"
)

const (
	bytesPerLine = 8
	rulerWidth   = 73
)

// Writer writes declarations to an underlying io.Writer. The first error
// encountered stops all further output and is returned by Err.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error that occurred while writing, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) printf(format string, a ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, a...)
}

// Write implements io.Writer so pre-rendered text such as a marshalled
// manifest can be passed through.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	var n int
	n, w.err = w.w.Write(p)
	return n, w.err
}

// PaletteIdent returns the identifier used for the palette of image n.
func PaletteIdent(n int) string {
	return fmt.Sprintf("palette%02d", n)
}

// PixelsIdent returns the identifier used for the pixel data of image n.
func PixelsIdent(n int) string {
	return fmt.Sprintf("pixels%02d", n)
}

// Header writes the banner, the format defines and the number of LEDs.
func (w *Writer) Header(numLEDs int) {
	w.printf("// Don't edit this file!  It's software-generated.\n")
	w.printf("// See poiconvert instead.\n\n")
	for _, m := range palette.Modes {
		w.printf("#define %-9s %d\n", m, int(m))
	}
	w.printf("\n#define NUM_LEDS %d\n\n", numLEDs)
}

// Comment writes a ruled comment introducing the tables for name.
func (w *Writer) Comment(name string) {
	pad := rulerWidth - len(name)
	if pad < 1 {
		pad = 1
	}
	w.printf("// %s %s\n\n", name, strings.Repeat("-", pad-1))
}

// Palette writes a color table of three bytes per entry.
func (w *Writer) Palette(ident string, colors []palette.Color) {
	w.printf("const uint8_t PROGMEM %s[][3] = {\n", ident)
	for i, c := range colors {
		w.printf("  { %3d, %3d, %3d }", c.R, c.G, c.B)
		if i < len(colors)-1 {
			w.printf(",\n")
		}
	}
	w.printf(" };\n\n")
}

// Bytes writes a byte array, a fixed number of values to a line.
func (w *Writer) Bytes(ident string, b []byte) {
	w.printf("const uint8_t PROGMEM %s[] = {", ident)
	for i, v := range b {
		col := i % bytesPerLine
		if col == 0 {
			w.printf("\n  ")
		}
		w.printf("0X%02X", v)
		if i < len(b)-1 {
			w.printf(",")
			if col < bytesPerLine-1 {
				w.printf(" ")
			}
		}
	}
	w.printf(" };\n\n")
}
