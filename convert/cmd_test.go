package convert

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"asciify/ascii"
	"asciify/palette"

	"github.com/alecthomas/kong"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

type testCLI struct {
	Convert CLICmd `cmd:"" default:"withargs"`
}

func parse(t *testing.T, args ...string) (*CLICmd, error) {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli, Vars, kong.Exit(func(int) { t.Fatal("kong tried to exit") }))
	if err != nil {
		t.Fatal(err)
	}
	_, err = parser.Parse(args)
	return &cli.Convert, err
}

func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch filepath.Ext(name) {
	case ".bmp":
		gray := image.NewGray(img.Bounds())
		draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
		err = bmp.Encode(f, gray)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func checkerboard() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

func TestParseDefaults(t *testing.T) {
	src := writeImage(t, t.TempDir(), "in.png", checkerboard())

	cmd, err := parse(t, src)
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Image != src || cmd.Save != "" {
		t.Errorf("image = %q, save = %q", cmd.Image, cmd.Save)
	}
	if cmd.Width != 0 || cmd.Height != 0 {
		t.Errorf("size = %dx%d, want 0x0", cmd.Width, cmd.Height)
	}
	if cmd.Filter != "catmull-rom" {
		t.Errorf("filter = %q, want catmull-rom", cmd.Filter)
	}
	if got := cmd.Palette.String(); got != palette.Default {
		t.Errorf("palette = %q, want %q", got, palette.Default)
	}
}

func TestParseOptions(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", checkerboard())
	dest := filepath.Join(dir, "out.txt")

	cmd, err := parse(t, src, dest, "-W", "80", "--height", "40", "-c", "#,,.,ab", "--filter", "nearest", "--fill", "#f80")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Save != dest {
		t.Errorf("save = %q, want %q", cmd.Save, dest)
	}
	if cmd.Width != 80 || cmd.Height != 40 {
		t.Errorf("size = %dx%d, want 80x40", cmd.Width, cmd.Height)
	}
	if want := (palette.Palette{'#', '.', 'a'}); !slices.Equal(cmd.Palette, want) {
		t.Errorf("palette = %q, want %q", cmd.Palette.String(), want.String())
	}
	if want := (color.NRGBA{0xFF, 0x88, 0x00, 0xFF}); cmd.FillColor != want {
		t.Errorf("fill color = %v, want %v", cmd.FillColor, want)
	}
}

func TestParseInvalid(t *testing.T) {
	src := writeImage(t, t.TempDir(), "in.png", checkerboard())

	tests := []struct {
		name string
		args []string
	}{
		{"non-numeric width", []string{src, "--width", "wide"}},
		{"negative height", []string{src, "-H", "-3"}},
		{"unknown filter", []string{src, "--filter", "gaussian"}},
		{"bad fill", []string{src, "--fill", "orange"}},
		{"missing image", []string{filepath.Join(t.TempDir(), "nope.png")}},
		{"no image", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse(t, tc.args...); err == nil {
				t.Errorf("parse(%q) succeeded", tc.args)
			}
		})
	}
}

func TestEmptyPaletteCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", checkerboard())

	for name, list := range map[string]string{
		"separators only": ",,",
		"empty value":     "",
	} {
		t.Run(name, func(t *testing.T) {
			dest := filepath.Join(dir, name+".txt")

			_, err := parse(t, src, dest, "--chars", list)
			if err == nil || !strings.Contains(err.Error(), ascii.ErrEmptyPalette.Error()) {
				t.Fatalf("parse error = %v, want %v", err, ascii.ErrEmptyPalette)
			}
			if _, err = os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("destination exists after rejected palette: %v", err)
			}
		})
	}
}

func TestRunToFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"in.png", "in.bmp"} {
		t.Run(name, func(t *testing.T) {
			src := writeImage(t, dir, name, checkerboard())
			dest := filepath.Join(dir, name+".txt")

			cmd, err := parse(t, src, dest, "--chars", "#,.")
			if err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			if err = cmd.Run(&out); err != nil {
				t.Fatal(err)
			}
			if out.Len() != 0 {
				t.Errorf("wrote %q to the terminal while saving to a file", out.String())
			}

			got, err := os.ReadFile(dest)
			if err != nil {
				t.Fatal(err)
			}
			if want := ".#\n#."; string(got) != want {
				t.Errorf("file content = %q, want %q", got, want)
			}
		})
	}
}

func TestRunToConsole(t *testing.T) {
	src := writeImage(t, t.TempDir(), "in.png", checkerboard())

	cmd, err := parse(t, src, "-c", "x")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err = cmd.Run(&out); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "xx\nxx"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunResized(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	src := writeImage(t, t.TempDir(), "in.png", img)

	cmd, err := parse(t, src, "-W", "10", "-c", "x")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err = cmd.Run(&out); err != nil {
		t.Fatal(err)
	}
	want := strings.TrimSuffix(strings.Repeat(strings.Repeat("x", 10)+"\n", 5), "\n")
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunDecodeError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(src, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "out.txt")

	cmd, err := parse(t, src, dest)
	if err != nil {
		t.Fatal(err)
	}
	if err = cmd.Run(&bytes.Buffer{}); !errors.Is(err, image.ErrFormat) {
		t.Errorf("Run error = %v, want %v", err, image.ErrFormat)
	}
	if _, err = os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("destination exists after decode failure: %v", err)
	}
}

func TestRunCreateError(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "in.png", checkerboard())

	cmd, err := parse(t, src, filepath.Join(dir, "missing", "out.txt"))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err = cmd.Run(&out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run error = %v, want %v", err, os.ErrNotExist)
	}
	if out.Len() != 0 {
		t.Errorf("wrote %q after failing to create the destination", out.String())
	}
}
