// Package ascii turns images into character grids.
//
// A Converter maps each pixel to a character and a Sink receives the
// characters in row-major order through a Start/Add/End lifecycle. Process
// ties the two together.
package ascii

import (
	"errors"
	"image/color"
	"slices"

	"asciify/palette"
)

// ErrEmptyPalette is returned for a palette without characters.
var ErrEmptyPalette = errors.New("palette must contain at least one character")

// Converter maps a single pixel to the character that represents it.
type Converter interface {
	Convert(color.NRGBA) rune
}

// Intensity is the plain average of the color channels, alpha ignored.
func Intensity(c color.NRGBA) uint8 {
	return uint8((uint16(c.R) + uint16(c.G) + uint16(c.B)) / 3)
}

// PaletteConverter picks palette[intensity % len(palette)]. Palettes shorter
// than 256 characters wrap around, so several intensities share a character.
type PaletteConverter struct {
	pal palette.Palette
}

var _ Converter = &PaletteConverter{}

// NewPaletteConverter copies pal and fails with ErrEmptyPalette if it is empty.
func NewPaletteConverter(pal palette.Palette) (*PaletteConverter, error) {
	if len(pal) == 0 {
		return nil, ErrEmptyPalette
	}

	return &PaletteConverter{pal: slices.Clone(pal)}, nil
}

func (p *PaletteConverter) Convert(c color.NRGBA) rune {
	return p.pal[int(Intensity(c))%len(p.pal)]
}
