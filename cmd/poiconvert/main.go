package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/bodgit/poi"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func config(c *cli.Context) poi.Config {
	return poi.Config{
		PeakCurrent:    c.Float64("peak"),
		AverageCurrent: c.Float64("average"),
		Gamma:          c.Float64("gamma"),
		BalanceRed:     c.Float64("balance-red"),
		BalanceGreen:   c.Float64("balance-green"),
		BalanceBlue:    c.Float64("balance-blue"),
		IdleCurrent:    c.Float64("idle"),
		RedCurrent:     c.Float64("red-current"),
		GreenCurrent:   c.Float64("green-current"),
		BlueCurrent:    c.Float64("blue-current"),
		Colors:         c.Int("colors"),
		Dither:         c.Bool("dither"),
		Budget:         c.Int("budget"),
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "poiconvert"
	app.Usage = "Convert images to PROGMEM tables for LED poi"
	app.Version = "1.0.0"
	app.ArgsUsage = "FILE..."

	d := poi.DefaultConfig

	app.Flags = []cli.Flag{
		&cli.Float64Flag{
			Name:    "peak",
			EnvVars: []string{"POICONVERT_PEAK"},
			Value:   d.PeakCurrent,
			Usage:   "peak column current in mA",
		},
		&cli.Float64Flag{
			Name:    "average",
			EnvVars: []string{"POICONVERT_AVERAGE"},
			Value:   d.AverageCurrent,
			Usage:   "average column current in mA",
		},
		&cli.Float64Flag{
			Name:    "gamma",
			EnvVars: []string{"POICONVERT_GAMMA"},
			Value:   d.Gamma,
			Usage:   "gamma correction exponent",
		},
		&cli.Float64Flag{
			Name:  "balance-red",
			Value: d.BalanceRed,
			Usage: "red color balance",
		},
		&cli.Float64Flag{
			Name:  "balance-green",
			Value: d.BalanceGreen,
			Usage: "green color balance",
		},
		&cli.Float64Flag{
			Name:  "balance-blue",
			Value: d.BalanceBlue,
			Usage: "blue color balance",
		},
		&cli.Float64Flag{
			Name:  "idle",
			Value: d.IdleCurrent,
			Usage: "LED current in mA when off",
		},
		&cli.Float64Flag{
			Name:  "red-current",
			Value: d.RedCurrent,
			Usage: "additional LED current in mA for 100% red",
		},
		&cli.Float64Flag{
			Name:  "green-current",
			Value: d.GreenCurrent,
			Usage: "additional LED current in mA for 100% green",
		},
		&cli.Float64Flag{
			Name:  "blue-current",
			Value: d.BlueCurrent,
			Usage: "additional LED current in mA for 100% blue",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "quantize truecolor images to at most this many colors",
		},
		&cli.BoolFlag{
			Name:  "dither",
			Usage: "dither when quantizing",
		},
		&cli.IntFlag{
			Name:    "budget",
			EnvVars: []string{"POICONVERT_BUDGET"},
			Usage:   "warn if tables exceed this many bytes",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		p, err := poi.New(config(c), logger)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if err := p.Convert(os.Stdout, c.Args().Slice()...); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
