/*
Package manifest implements the table of images that the poi firmware steps
through. Each entry records the storage format of an image, how many
scanlines it plays for and where its palette and pixel data live.
*/
package manifest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bodgit/poi/palette"
)

// The firmware selects an image with a single byte
const maxEntries = 255

var (
	// ErrTooMany is returned when adding more images than the firmware
	// can address.
	ErrTooMany = errors.New("manifest: too many images")
	// ErrPalette is returned for a truecolor entry with a palette or a
	// paletted entry without one.
	ErrPalette = errors.New("manifest: palette does not match format")
	// ErrPixels is returned for an entry without pixel data.
	ErrPixels = errors.New("manifest: missing pixel data")
)

const typedef = `typedef struct {
  uint8_t        type;    // PALETTE[1,4,8] or TRUECOLOR
  line_t         lines;   // Length of image (in scanlines)
  const uint8_t *palette; // -> PROGMEM color table (NULL if truecolor)
  const uint8_t *pixels;  // -> Pixel data in PROGMEM
} image;

`

// Entry describes one image.
type Entry struct {
	Format palette.Mode
	// Lines is the number of scanlines the image plays for, one per
	// column of the source image.
	Lines int
	// Palette and Pixels are the identifiers of the tables. Palette is
	// empty for truecolor images.
	Palette string
	Pixels  string
}

// Manifest is the ordered table of images. It implements the
// encoding.TextMarshaler interface.
type Manifest struct {
	entries []Entry
}

// New returns an empty manifest
func New() *Manifest {
	return &Manifest{}
}

// Length returns the number of images in the manifest
func (m *Manifest) Length() int {
	return len(m.entries)
}

// Entries returns the images in the order they were added
func (m *Manifest) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Add appends an image to the manifest
func (m *Manifest) Add(e Entry) error {
	if len(m.entries) >= maxEntries {
		return fmt.Errorf("%w: more than %d entries", ErrTooMany, maxEntries)
	}
	if (e.Format == palette.TrueColor) != (e.Palette == "") {
		return fmt.Errorf("%w: %s with palette %q", ErrPalette, e.Format, e.Palette)
	}
	if e.Pixels == "" {
		return ErrPixels
	}
	m.entries = append(m.entries, e)
	return nil
}

// MarshalText renders the image type definition, the table of images and
// the NUM_IMAGES define
func (m *Manifest) MarshalText() ([]byte, error) {
	b := new(bytes.Buffer)

	b.WriteString(typedef)
	b.WriteString("const image PROGMEM images[] = {\n")

	for i, e := range m.entries {
		p := "NULL"
		if e.Palette != "" {
			p = "(const uint8_t *)" + e.Palette
		}

		fmt.Fprintf(b, "  { %-9s,  %3d, %-26s, %s }", e.Format, e.Lines, p, e.Pixels)
		if i < len(m.entries)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString("};\n\n")
	b.WriteString("#define NUM_IMAGES (sizeof(images) / sizeof(images[0]))\n")

	return b.Bytes(), nil
}
