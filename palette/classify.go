package palette

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Options controls how truecolor images are treated by Classify.
type Options struct {
	// Colors, if non-zero, quantizes truecolor images down to at most
	// this many colors so they can be stored with a palette.
	Colors int
	// Dither uses Floyd-Steinberg error diffusion when quantizing.
	Dither bool
}

// toColor converts any color to an opaque 8-bit color. Fully transparent
// colors become black.
func toColor(c color.Color) Color {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return Color{}
	}
	r, g, b := col.RGB255()
	return Color{r, g, b}
}

// Return the image as a paletted image, or nil if it doesn't use a palette
func paletted(m image.Image) *image.Paletted {
	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			b := m.Bounds()
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.SetColorIndex(x, y, uint8(cp.Index(m.At(x, y))))
				}
			}
		}
	}
	return pm
}

func reduce(m image.Image, n int, dither bool) *image.Paletted {
	if n > maxColors8 {
		n = maxColors8
	}

	b := m.Bounds()
	r := image.Rect(0, 0, b.Dx(), b.Dy())

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(r, q.Quantize(make(color.Palette, 0, n), m))

	if dither {
		draw.FloydSteinberg.Draw(pm, r, m, b.Min)
	} else {
		draw.Draw(pm, r, m, b.Min, draw.Src)
	}
	return pm
}

func packPaletted(name string, m *image.Paletted) *Image {
	b := m.Bounds()

	// Map of original palette index to frequency of occurrence
	var counts [maxColors8]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			counts[m.ColorIndexAt(x, y)]++
		}
	}

	img := &Image{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
	}

	// Each original index in use is reassigned a sequential packed index
	var remap [maxColors8]uint8
	for i, n := range counts {
		if n == 0 {
			continue
		}
		remap[i] = uint8(len(img.Colors))

		var c Color
		if i < len(m.Palette) {
			c = toColor(m.Palette[i])
		}
		img.Colors = append(img.Colors, c)
		img.Counts = append(img.Counts, n)
	}

	// Remapped copy with the top-left corner at (0, 0)
	img.Paletted = image.NewPaletted(image.Rect(0, 0, img.Width, img.Height), img.Palette())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Paletted.SetColorIndex(x-b.Min.X, y-b.Min.Y, remap[m.ColorIndexAt(x, y)])
		}
	}

	img.Mode = ModeFor(len(img.Colors))
	img.Lines = Pad(img.Height, img.Mode)

	return img
}

func packTrueColor(name string, m image.Image) *Image {
	b := m.Bounds()

	img := &Image{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Lines:  b.Dy(),
		Mode:   TrueColor,
		RGB:    image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy())),
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := toColor(m.At(x, y))
			img.RGB.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{c.R, c.G, c.B, 0xff})
		}
	}

	return img
}

// Classify decides whether m is stored with a palette or as truecolor and
// returns it in packed form. Images using a palette are always paletted;
// all others are truecolor unless o.Colors asks for them to be quantized.
// The source image is never modified.
func Classify(name string, m image.Image, o Options) (*Image, error) {
	if m.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}

	pm := paletted(m)
	if pm == nil && o.Colors > 0 {
		pm = reduce(m, o.Colors, o.Dither)
	}

	if pm == nil {
		return packTrueColor(name, m), nil
	}
	return packPaletted(name, pm), nil
}
