package main

import (
	"io"
	"log/slog"
	"os"

	"asciify/convert"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Verbose bool           `short:"v" help:"Log debug information to stderr"`
	Convert convert.CLICmd `cmd:"" default:"withargs" help:"Convert an image to characters"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("asciify"),
		kong.Description("Image to ASCII converter"),
		kong.UsageOnError(),
		convert.Vars,
		kong.BindTo(io.Writer(os.Stdout), (*io.Writer)(nil)),
	)

	if cli.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if err := kctx.Run(); err != nil {
		slog.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}
