package pixel

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/poi/current"
	"github.com/bodgit/poi/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unscaled = current.NewCorrection(1, 1, 1, 1, 1)

func paletted(t *testing.T, w, h, colors int, f func(x, y int) uint8) *palette.Image {
	t.Helper()
	p := make(color.Palette, colors)
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(i * 2), uint8(i * 3), 0xff}
	}
	m := image.NewPaletted(image.Rect(0, 0, w, h), p)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetColorIndex(x, y, f(x, y))
		}
	}
	img, err := palette.Classify("test", m, palette.Options{})
	require.NoError(t, err)
	return img
}

func checker(x, y int) uint8 {
	return uint8((x + y) & 1)
}

func TestSize(t *testing.T) {
	assert.Equal(t, 32, Size(palette.Palette1, 16, 16))
	assert.Equal(t, 80, Size(palette.Palette4, 8, 20))
	assert.Equal(t, 21, Size(palette.Palette8, 3, 7))
	assert.Equal(t, 120, Size(palette.TrueColor, 4, 10))

	// Partial bytes round up
	assert.Equal(t, 3, ColumnSize(palette.Palette1, 20))
	assert.Equal(t, 3, ColumnSize(palette.Palette4, 5))
}

func TestEncodeBinary(t *testing.T) {
	img := paletted(t, 16, 16, 2, checker)
	require.Equal(t, palette.Palette1, img.Mode)

	b, err := Pack(img, 16, unscaled)
	require.NoError(t, err)
	require.Len(t, b, 32)

	// Odd rows set in even columns, LSB first
	assert.Equal(t, []byte{0xaa, 0xaa, 0x55, 0x55}, b[:4])
}

func TestEncodeBitOrder(t *testing.T) {
	img := paletted(t, 2, 8, 2, func(x, y int) uint8 {
		if (x == 0 && y == 0) || (x == 1 && y == 7) {
			return 1
		}
		return 0
	})

	b, err := Pack(img, 8, unscaled)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x80}, b)
}

func TestEncodeNibbles(t *testing.T) {
	img := paletted(t, 8, 20, 16, func(x, y int) uint8 {
		return uint8((x + y) % 16)
	})
	require.Equal(t, palette.Palette4, img.Mode)
	require.Equal(t, 20, img.Lines)

	b, err := Pack(img, 20, unscaled)
	require.NoError(t, err)
	require.Len(t, b, 80)

	assert.Equal(t, byte(0x01), b[0])
	assert.Equal(t, byte(0x23), b[1])
	// Column 1 starts at byte 10
	assert.Equal(t, byte(0x12), b[10])
}

func TestEncodeIndices(t *testing.T) {
	img := paletted(t, 3, 7, 40, func(x, y int) uint8 {
		return uint8(x*7 + y)
	})
	require.Equal(t, palette.Palette8, img.Mode)

	b, err := Pack(img, 9, unscaled)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 1, 2, 3, 4, 5, 6, 0, 0,
		7, 8, 9, 10, 11, 12, 13, 0, 0,
		14, 15, 16, 17, 18, 19, 20, 0, 0,
	}, b)
}

func TestEncodeTrueColor(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 4, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 4; x++ {
			m.Set(x, y, color.RGBA{uint8(x * 50), uint8(y * 20), 0xff, 0xff})
		}
	}
	img, err := palette.Classify("rgb", m, palette.Options{})
	require.NoError(t, err)

	b, err := Pack(img, 10, unscaled)
	require.NoError(t, err)
	require.Len(t, b, 120)
	assert.Equal(t, []byte{0, 0, 0xff, 0, 20, 0xff}, b[:6])
	assert.Equal(t, []byte{50, 0, 0xff}, b[30:33])

	// Gamma and brightness are applied per pixel
	half := current.NewCorrection(1, 1, 1, 1, 0.5)
	b, err = Pack(img, 12, half)
	require.NoError(t, err)
	require.Len(t, b, 144)
	assert.Equal(t, []byte{0, 0, 128}, b[:3])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0}, b[30:36])
}

func TestEncodePadsShorterImage(t *testing.T) {
	binary := paletted(t, 4, 16, 2, func(x, y int) uint8 {
		if y == 0 {
			return 0
		}
		return 1
	})
	b, err := Pack(binary, 20, unscaled)
	require.NoError(t, err)
	require.Len(t, b, 4*3)
	for x := 0; x < 4; x++ {
		assert.Equal(t, []byte{0xfe, 0xff, 0x00}, b[x*3:x*3+3])
	}

	nibble := paletted(t, 4, 16, 3, func(x, y int) uint8 { return uint8(y % 3) })
	require.Equal(t, palette.Palette4, nibble.Mode)
	b, err = Pack(nibble, 20, unscaled)
	require.NoError(t, err)
	require.Len(t, b, 4*10)
	for x := 0; x < 4; x++ {
		col := b[x*10 : x*10+10]
		assert.Equal(t, []byte{0x01, 0x20, 0x12, 0x01, 0x20, 0x12, 0x01, 0x20}, col[:8])
		assert.Equal(t, []byte{0, 0}, col[8:])
	}
}

func TestEncodeShortColumn(t *testing.T) {
	img := paletted(t, 2, 9, 2, checker)
	_, err := Pack(img, 8, unscaled)
	assert.True(t, errors.Is(err, ErrLines))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestEncodeWriteError(t *testing.T) {
	img := paletted(t, 2, 8, 2, checker)
	n, err := Encode(failWriter{}, img, 8, unscaled)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestRoundTrip(t *testing.T) {
	tables := []struct {
		name   string
		w, h   int
		colors int
		lines  int
	}{
		{"binary", 16, 16, 2, 16},
		{"binary padded", 5, 13, 2, 24},
		{"nibble", 8, 20, 16, 20},
		{"nibble padded", 3, 7, 9, 12},
		{"byte", 6, 11, 200, 11},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			img := paletted(t, table.w, table.h, table.colors, func(x, y int) uint8 {
				return uint8((x*7 + y*3) % table.colors)
			})

			b, err := Pack(img, table.lines, unscaled)
			require.NoError(t, err)

			m, err := Decode(b, img.Mode, table.w, table.lines)
			require.NoError(t, err)

			pm, ok := m.(*image.Paletted)
			require.True(t, ok)
			for x := 0; x < table.w; x++ {
				for y := 0; y < table.lines; y++ {
					assert.Equal(t, img.IndexAt(x, y), pm.ColorIndexAt(x, y), "x: %d, y: %d", x, y)
				}
			}
		})
	}
}

func TestRoundTripTrueColor(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 3, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 80), uint8(y * 60), 7, 0xff})
		}
	}
	img, err := palette.Classify("rgb", m, palette.Options{})
	require.NoError(t, err)

	b, err := Pack(img, 4, unscaled)
	require.NoError(t, err)

	out, err := Decode(b, palette.TrueColor, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, m.Pix, out.(*image.NRGBA).Pix)
}

func TestDecodeSize(t *testing.T) {
	_, err := Decode(make([]byte, 31), palette.Palette1, 16, 16)
	assert.Equal(t, ErrNotEnough, err)

	_, err = Decode(make([]byte, 33), palette.Palette1, 16, 16)
	assert.Equal(t, ErrTooMuch, err)
}
