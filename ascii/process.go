package ascii

import (
	"fmt"
	"image"
	"image/color"
)

// Process feeds every pixel of img, top row first and left to right within
// a row, through conv into sink. Coordinates passed to the sink are relative
// to the image bounds, so the first pixel is always (0, 0).
func Process(img image.Image, sink Sink, conv Converter) error {
	if err := sink.Start(); err != nil {
		return err
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			row, col := y-b.Min.Y, x-b.Min.X
			if err := sink.Add(row, col, conv.Convert(px)); err != nil {
				return fmt.Errorf("could not emit pixel (%d, %d): %w", col, row, err)
			}
		}
	}

	return sink.End()
}
