package convert

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

var filters = map[string]draw.Scaler{
	"nearest":         draw.NearestNeighbor,
	"approx-bilinear": draw.ApproxBiLinear,
	"bilinear":        draw.BiLinear,
	"catmull-rom":     draw.CatmullRom,
}

// resize fits img into a width x height box keeping its aspect ratio. A zero
// dimension falls back to the source one. With crop the source is trimmed to
// the box aspect ratio instead, and with fillColor the result is padded to the
// exact box size.
func resize(logger *slog.Logger, img image.Image, width, height int, crop bool, fillColor color.Color, scaler draw.Scaler) image.Image {
	src := img.Bounds()
	if src.Empty() || (width == 0 && height == 0) {
		return img
	}

	box := image.Pt(width, height)
	if box.X == 0 {
		box.X = src.Dx()
	}
	if box.Y == 0 {
		box.Y = src.Dy()
	}
	if box == src.Size() {
		return img
	}

	canvas := image.Rectangle{Max: box}
	content := canvas
	switch {
	case crop:
		src = cropToAspect(src, aspect(canvas))
	case fillColor != nil:
		content = centered(canvas, fitInside(box, aspect(src)))
	default:
		canvas = image.Rectangle{Max: fitInside(box, aspect(src))}
		content = canvas
	}

	logger.Debug("resizing", "width", canvas.Dx(), "height", canvas.Dy(),
		"content_width", content.Dx(), "content_height", content.Dy())
	dest := image.NewNRGBA(canvas)
	if content != canvas {
		draw.Draw(dest, canvas, image.NewUniform(fillColor), image.Point{}, draw.Src)
	}
	scaler.Scale(dest, content, img, src, draw.Over, nil)

	return dest
}

func aspect(r image.Rectangle) float64 {
	return float64(r.Dx()) / float64(r.Dy())
}

// fitInside returns the largest size with aspect ratio ar that fits in box,
// never smaller than 1x1.
func fitInside(box image.Point, ar float64) image.Point {
	boxAR := float64(box.X) / float64(box.Y)
	switch {
	case ar < boxAR:
		box.X = max(int(math.Round(float64(box.Y)*ar)), 1)
	case ar > boxAR:
		box.Y = max(int(math.Round(float64(box.X)/ar)), 1)
	}
	return box
}

// cropToAspect trims r evenly on both sides of its longer axis until it has
// aspect ratio ar. At least one pixel is kept in each dimension.
func cropToAspect(r image.Rectangle, ar float64) image.Rectangle {
	size := r.Size()
	switch rAR := aspect(r); {
	case rAR < ar:
		size.Y = max(int(math.Round(float64(size.X)/ar)), 1)
	case rAR > ar:
		size.X = max(int(math.Round(float64(size.Y)*ar)), 1)
	}
	return centered(r, size)
}

func centered(outer image.Rectangle, size image.Point) image.Rectangle {
	topLeft := outer.Min.Add(outer.Size().Sub(size).Div(2))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}
}
