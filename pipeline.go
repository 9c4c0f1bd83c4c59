package poi

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/poi/manifest"
	"github.com/bodgit/poi/palette"
	"github.com/bodgit/poi/pixel"
	"github.com/bodgit/poi/table"
)

// NumLEDs returns the tallest padded height of images; every column of
// pixel data is this many scanlines long.
func NumLEDs(images []*palette.Image) int {
	var n int
	for _, img := range images {
		if img.Lines > n {
			n = img.Lines
		}
	}
	return n
}

// Convert loads every file and writes the generated header to w. Any error
// aborts the whole run.
func (c *Converter) Convert(w io.Writer, files ...string) error {
	images := make([]*palette.Image, 0, len(files))
	for _, file := range files {
		img, err := c.Load(file)
		if err != nil {
			return err
		}
		images = append(images, img)
	}

	return c.Write(w, images)
}

func (c *Converter) writeImage(tw *table.Writer, n int, img *palette.Image, numLEDs int) (manifest.Entry, int, error) {
	e := c.cfg.model().Estimate(img, c.cfg.limits())
	corr := c.cfg.correction(e.Scale)

	c.logger.Printf("Image \"%s\": peak %.1f mA, average %.1f mA, scale %.3f\n", img.Name, e.Peak, e.Average, e.Scale)

	entry := manifest.Entry{
		Format: img.Mode,
		Lines:  img.Width,
		Pixels: table.PixelsIdent(n),
	}

	var size int

	tw.Comment(img.Name)

	if img.Mode != palette.TrueColor {
		entry.Palette = table.PaletteIdent(n)
		colors := corr.Palette(img.Colors)
		tw.Palette(entry.Palette, colors)
		size += 3 * len(colors)
	}

	b, err := pixel.Pack(img, numLEDs, corr)
	if err != nil {
		return manifest.Entry{}, 0, err
	}
	tw.Bytes(entry.Pixels, b)
	size += len(b)

	c.logger.Printf("Image \"%s\": %s, %d bytes\n", img.Name, img.Mode, size)

	return entry, size, nil
}

// Write writes the header for already classified images to w.
func (c *Converter) Write(w io.Writer, images []*palette.Image) error {
	if len(images) == 0 {
		return errors.New("no images")
	}

	numLEDs := NumLEDs(images)
	for _, img := range images {
		if img.Height < numLEDs {
			c.logger.Printf("Image \"%s\" is %d lines tall, padding to %d\n", img.Name, img.Height, numLEDs)
		}
	}

	bw := bufio.NewWriter(w)
	tw := table.NewWriter(bw)
	tw.Header(numLEDs)

	m := manifest.New()

	var total int
	for i, img := range images {
		entry, size, err := c.writeImage(tw, i, img, numLEDs)
		if err != nil {
			return err
		}
		if err := m.Add(entry); err != nil {
			return fmt.Errorf("%s: %w", img.Name, err)
		}
		total += size
	}

	b, err := m.MarshalText()
	if err != nil {
		return err
	}
	if _, err := tw.Write(b); err != nil {
		return err
	}

	if err := tw.Err(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	c.logger.Printf("Wrote %d images, %d LEDs, %d bytes of tables\n", m.Length(), numLEDs, total)
	if c.cfg.Budget > 0 && total > c.cfg.Budget {
		c.logger.Printf("Warning: tables exceed budget of %d bytes by %d bytes\n", c.cfg.Budget, total-c.cfg.Budget)
	}

	return nil
}
