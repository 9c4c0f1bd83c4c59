/*
Package current estimates the current drawn by an LED strip showing an image
and derives the brightness scale that keeps it within the limits of the
battery.

Each LED draws a small idle current plus, per channel, a fraction of that
channel's full-on current. The fraction follows the same gamma curve used to
correct the colors, so the estimate reflects what is actually displayed. A
column of the image is lit all at once, so its current is the sum over every
pixel in the column.
*/
package current

import (
	"math"

	"github.com/bodgit/poi/palette"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Model describes the current drawn by a single LED, in milliamps.
type Model struct {
	Idle  float64 // current when off
	Red   float64 // additional current at 100% red
	Green float64 // additional current at 100% green
	Blue  float64 // additional current at 100% blue
	Gamma float64
}

// Limits are the column current ceilings, in milliamps.
type Limits struct {
	Peak    float64
	Average float64
}

// Estimate summarizes the current drawn by an image.
type Estimate struct {
	Peak    float64 // highest column current
	Average float64 // mean column current
	Scale   float64 // brightness scale meeting the limits, never more than 1
}

func level(v uint8, gamma float64) float64 {
	return math.Pow(float64(v)/255, gamma)
}

// Color returns the current drawn by one LED showing c.
func (m Model) Color(c palette.Color) float64 {
	return m.Idle +
		level(c.R, m.Gamma)*m.Red +
		level(c.G, m.Gamma)*m.Green +
		level(c.B, m.Gamma)*m.Blue
}

// Columns returns the current drawn by each column of img. Only the original
// height of the image is counted, padding rows draw nothing.
func (m Model) Columns(img *palette.Image) []float64 {
	columns := make([]float64, img.Width)

	if img.Mode == palette.TrueColor {
		for x := range columns {
			for y := 0; y < img.Height; y++ {
				columns[x] += m.Color(img.ColorAt(x, y))
			}
		}
		return columns
	}

	// Estimate each palette entry once
	lut := make([]float64, len(img.Colors))
	for i, c := range img.Colors {
		lut[i] = m.Color(c)
	}

	for x := range columns {
		for y := 0; y < img.Height; y++ {
			columns[x] += lut[img.IndexAt(x, y)]
		}
	}
	return columns
}

// Estimate computes the peak and average column current of img and the
// resulting brightness scale.
func (m Model) Estimate(img *palette.Image, l Limits) Estimate {
	columns := m.Columns(img)
	if len(columns) == 0 {
		return Estimate{Scale: 1}
	}
	return Estimate{
		Peak:    floats.Max(columns),
		Average: stat.Mean(columns, nil),
		Scale:   Scale(columns, l),
	}
}

// Scale returns the largest factor, no greater than 1, that brings both the
// peak and the mean of the column currents within the limits. A constraint
// whose measured current is zero is ignored.
func Scale(columns []float64, l Limits) float64 {
	s := 1.0
	if len(columns) == 0 {
		return s
	}
	if peak := floats.Max(columns); peak > 0 {
		s = math.Min(s, l.Peak/peak)
	}
	if avg := stat.Mean(columns, nil); avg > 0 {
		s = math.Min(s, l.Average/avg)
	}
	return s
}
