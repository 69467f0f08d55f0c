/*
Package pixelator converts full-color raster images into reduced-resolution,
reduced-palette pixel art.

An image is downsampled once to a small base buffer; every recomputation
with new parameters restarts from that base, runs the contrast, quantization
and remapping stages, and extracts the palette of the result. The heavy
lifting lives in the pixel subpackage; this package wires it to files, the
project store and the configuration.
*/
package pixelator

import "log"

type Pixelator struct {
	store  *Store
	config *Config
	logger *log.Logger
}

func New(store *Store, config *Config, logger *log.Logger) *Pixelator {
	return &Pixelator{
		store:  store,
		config: config,
		logger: logger,
	}
}
