package convert

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"asciify/ascii"
	"asciify/palette"

	"github.com/alecthomas/kong"
)

// Vars holds the kong interpolation variables used by CLICmd help texts.
var Vars = kong.Vars{
	"default_palette": palette.Default,
}

// chars holds the raw --chars value and whether it was given at all, so an
// explicitly empty list is not mistaken for the default.
type chars struct {
	set  bool
	list string
}

func (c *chars) Decode(ctx *kong.DecodeContext) error {
	if err := ctx.Scan.PopValueInto("chars", &c.list); err != nil {
		return err
	}
	c.set = true
	return nil
}

type CLICmd struct {
	Image  string `arg:"" help:"Image to convert" type:"existingfile"`
	Save   string `arg:"" optional:"" help:"File to write the characters to. Prints to the terminal if not given"`
	Width  uint   `short:"W" help:"Resize width, 0 keeps the image width" default:"0" group:"resize"`
	Height uint   `short:"H" help:"Resize height, 0 keeps the image height" default:"0" group:"resize"`
	Filter string `help:"Resampling filter used when resizing" enum:"nearest,approx-bilinear,bilinear,catmull-rom" default:"catmull-rom" group:"resize"`
	Crop   bool   `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill   string `help:"If given and not cropping, will fill background with this color to reach the requested size" group:"resize"`
	Chars  chars  `short:"c" help:"Comma-delimited characters to draw with, from dense to sparse. Defaults to \"${default_palette}\"" group:"palette"`

	Palette   palette.Palette `kong:"-"`
	FillColor color.Color     `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error

	c.Palette = palette.FromString(palette.Default)
	if c.Chars.set {
		c.Palette = palette.Parse(c.Chars.list)
	}
	if _, err = ascii.NewPaletteConverter(c.Palette); err != nil {
		return fmt.Errorf("invalid character list %q: %w", c.Chars.list, err)
	}

	if _, ok := filters[c.Filter]; !ok {
		return fmt.Errorf("unsupported resampling filter: %s", c.Filter)
	}

	if (!c.Crop) && (c.Fill != "") {
		if c.FillColor, err = parseHexToColor(c.Fill); err != nil {
			return err
		}
	}

	return nil
}

// Run decodes and resizes the image, then streams it to out or writes it to
// the save file. Nothing is created on disk unless decoding succeeded.
func (c *CLICmd) Run(out io.Writer) error {
	logger := slog.Default().With("file", c.Image)

	img, format, err := decode(c.Image)
	if err != nil {
		return err
	}
	logger.Debug("decoded image", "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	img = resize(logger, img, int(c.Width), int(c.Height), c.Crop, c.FillColor, filters[c.Filter])

	conv, err := ascii.NewPaletteConverter(c.Palette)
	if err != nil {
		return fmt.Errorf("invalid character list %q: %w", c.Chars.list, err)
	}

	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	var sink ascii.Sink
	if c.Save == "" {
		sink = ascii.NewConsoleSink(out)
	} else {
		fileSink, err := ascii.CreateFileSink(c.Save, width, height)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := fileSink.Close(); closeErr != nil {
				logger.Error("could not close destination file", "dest", c.Save, "error", closeErr)
			}
		}()
		sink = fileSink
	}

	logger.Debug("converting", "width", width, "height", height, "palette", c.Palette.String())
	if err = ascii.Process(img, sink, conv); err != nil {
		return fmt.Errorf("could not convert image %q: %w", c.Image, err)
	}

	if c.Save != "" {
		logger.Info("saved", "dest", c.Save, "width", width, "height", height)
	}
	return nil
}
