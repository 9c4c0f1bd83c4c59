package poi

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/bodgit/poi/palette"
)

// Load decodes file and classifies it ready for packing.
func (c *Converter) Load(file string) (*palette.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	img, err := palette.Classify(file, m, c.cfg.options())
	if err != nil {
		return nil, err
	}

	c.logger.Printf("Loaded \"%s\" (%s, %dx%d), %s with %d colors, %d lines\n", file, format, img.Width, img.Height, img.Mode, len(img.Colors), img.Lines)

	return img, nil
}
