/*
Package poi converts images into the tables used by a persistence of vision
LED poi. Each image becomes a gamma and brightness corrected palette plus
packed pixel data, followed by a manifest of every image, all emitted as C
declarations to be placed in PROGMEM.

Brightness is limited per image so that the estimated current drawn by the
LED strip stays within the peak and average ceilings of the battery.
*/
package poi

import "log"

// Converter turns images into a generated graphics header.
type Converter struct {
	cfg    Config
	logger *log.Logger
}

// New returns a Converter using cfg, logging progress to logger.
func New(cfg Config, logger *log.Logger) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		cfg:    cfg,
		logger: logger,
	}, nil
}
