package current

import "github.com/bodgit/poi/palette"

// Correction applies gamma and brightness to colors before they are stored.
// Each coefficient is the color balance for that channel multiplied by the
// brightness scale and 255.
type Correction struct {
	Gamma float64
	Red   float64
	Green float64
	Blue  float64
}

// NewCorrection folds the brightness scale s into the color balance.
func NewCorrection(gamma, red, green, blue, s float64) Correction {
	s *= 255
	return Correction{
		Gamma: gamma,
		Red:   red * s,
		Green: green * s,
		Blue:  blue * s,
	}
}

func channel(v uint8, gamma, k float64) uint8 {
	n := int(level(v, gamma)*k + 0.5)
	switch {
	case n < 0:
		return 0
	case n > 0xff:
		return 0xff
	}
	return uint8(n)
}

// Apply returns the corrected color.
func (c Correction) Apply(col palette.Color) palette.Color {
	return palette.Color{
		R: channel(col.R, c.Gamma, c.Red),
		G: channel(col.G, c.Gamma, c.Green),
		B: channel(col.B, c.Gamma, c.Blue),
	}
}

// Palette returns a corrected copy of p.
func (c Correction) Palette(p []palette.Color) []palette.Color {
	out := make([]palette.Color, len(p))
	for i, col := range p {
		out[i] = c.Apply(col)
	}
	return out
}
