package poi

import (
	"errors"

	"github.com/bodgit/poi/current"
	"github.com/bodgit/poi/palette"
)

// Config holds the tunables for a conversion run.
type Config struct {
	// Peak and average column current ceilings in mA, a function of
	// battery capacity and desired run time.
	PeakCurrent    float64
	AverageCurrent float64

	// Gamma is the exponent used for perceived brightness.
	Gamma float64

	// Color balance, adjust for whiter whites.
	BalanceRed   float64
	BalanceGreen float64
	BalanceBlue  float64

	// Measured LED current in mA when off and the additional current at
	// 100% of each channel.
	IdleCurrent  float64
	RedCurrent   float64
	GreenCurrent float64
	BlueCurrent  float64

	// Colors, if non-zero, quantizes truecolor images to a palette of
	// at most this many colors. Dither enables error diffusion.
	Colors int
	Dither bool

	// Budget is the PROGMEM space in bytes available for tables, zero
	// disables the check. Exceeding it only produces a warning.
	Budget int
}

// DefaultConfig is tuned for a 150 mAh cell driving two strips in parallel,
// allowing brief surges of ~2.5C and ~0.9C on average.
var DefaultConfig = Config{
	PeakCurrent:    180.0,
	AverageCurrent: 60.0,
	Gamma:          2.7,
	BalanceRed:     1.0,
	BalanceGreen:   1.0,
	BalanceBlue:    1.0,
	IdleCurrent:    1.3,
	RedCurrent:     15.2,
	GreenCurrent:   8.7,
	BlueCurrent:    8.0,
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.Gamma <= 0:
		return errors.New("gamma must be positive")
	case c.PeakCurrent <= 0, c.AverageCurrent <= 0:
		return errors.New("current limits must be positive")
	case c.IdleCurrent < 0, c.RedCurrent < 0, c.GreenCurrent < 0, c.BlueCurrent < 0:
		return errors.New("LED current cannot be negative")
	case c.BalanceRed < 0, c.BalanceGreen < 0, c.BalanceBlue < 0:
		return errors.New("color balance cannot be negative")
	case c.Colors < 0 || c.Colors > 256:
		return errors.New("colors must be between 0 and 256")
	case c.Budget < 0:
		return errors.New("budget cannot be negative")
	}
	return nil
}

// The color balance is folded into the channel currents
func (c Config) model() current.Model {
	return current.Model{
		Idle:  c.IdleCurrent,
		Red:   c.RedCurrent * c.BalanceRed,
		Green: c.GreenCurrent * c.BalanceGreen,
		Blue:  c.BlueCurrent * c.BalanceBlue,
		Gamma: c.Gamma,
	}
}

func (c Config) limits() current.Limits {
	return current.Limits{
		Peak:    c.PeakCurrent,
		Average: c.AverageCurrent,
	}
}

func (c Config) correction(scale float64) current.Correction {
	return current.NewCorrection(c.Gamma, c.BalanceRed, c.BalanceGreen, c.BalanceBlue, scale)
}

func (c Config) options() palette.Options {
	return palette.Options{
		Colors: c.Colors,
		Dither: c.Dither,
	}
}
