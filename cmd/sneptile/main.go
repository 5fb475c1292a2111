package main

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/bodgit/sneptile"
	"github.com/bodgit/sneptile/header"
	"github.com/mitchellh/go-wordwrap"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const description = "Sneptile generates pattern data for the Sega Master System VDP in Mode-4, or the TMS9928A in Mode-0, from a set of images made up of 8x8 tiles. " +
	"Images are processed in the order given and their tiles are numbered in one sequence. " +
	"The output is written as C header files: pattern.h, pattern_index.h, and either palette.h (Mode-4) or colour_table.h (Mode-0)."

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func parsePalette(values []string) ([]uint8, error) {
	palette := make([]uint8, 0, len(values))
	for _, v := range values {
		c, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid palette colour %q: %w", v, err)
		}
		if c > 0x3f {
			return nil, fmt.Errorf("invalid palette colour %q: not a 6-bit colour", v)
		}
		palette = append(palette, uint8(c))
	}
	return palette, nil
}

func writeFiles(dir string, files map[string][]byte) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	for name, data := range files {
		if err := ioutil.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

func encode(ctx context.Context, logger *zap.Logger, o sneptile.Options, images []*sneptile.Image) (map[string][]byte, error) {
	var w *header.Writer
	switch o.Mode {
	case sneptile.Mode0:
		w = header.NewMode0()
	default:
		w = header.NewMode4()
	}

	s, err := sneptile.New(w, logger, o)
	if err != nil {
		return nil, err
	}

	if err := s.Encode(ctx, images...); err != nil {
		return nil, err
	}

	result, err := s.Close()
	if err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	logger.Info("encoded",
		zap.Int("images", len(result.Symbols)),
		zap.Int("tiles", result.Tiles),
		zap.Int("unmappable", result.Unmappable))

	return w.Files(), nil
}

func run(c *cli.Context) (err error) {
	if c.NArg() < 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	o := sneptile.Options{
		Mode:   sneptile.Mode4,
		Strict: c.Bool("strict"),
	}
	if c.Bool("mode-0") {
		o.Mode = sneptile.Mode0
	}
	if o.Palette, err = parsePalette(c.StringSlice("palette")); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	images, err := sneptile.LoadImages(ctx, c.Args().Slice(), c.Int("jobs"))
	if err != nil {
		return err
	}

	if c.Bool("quantize") {
		for _, m := range images {
			m.Reduce(o.Mode)
		}
	}

	var (
		cache *sneptile.Cache
		key   string
	)
	if file := c.String("cache"); file != "" {
		if cache, err = sneptile.NewCache(file); err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, cache.Close())
		}()

		// Reduction happens after hashing so it has to be part of the key
		key = sneptile.CacheKey(o, images)
		if c.Bool("quantize") {
			key += "Q"
		}

		files, err := cache.Find(key)
		if err != nil {
			return err
		}
		if files != nil {
			logger.Info("using cached output", zap.String("key", key))
			return writeFiles(c.String("output"), files)
		}
	}

	files, err := encode(ctx, logger, o, images)
	if err != nil {
		var te *sneptile.TileError
		if errors.As(err, &te) {
			logger.Error("unable to encode tile",
				zap.String("image", te.Image),
				zap.Int("x", te.X),
				zap.Int("y", te.Y),
				zap.Error(te.Err))
		}
		return err
	}

	if cache != nil {
		if err := cache.Store(key, files); err != nil {
			return err
		}
	}

	return writeFiles(c.String("output"), files)
}

func main() {
	app := cli.NewApp()

	app.Name = "sneptile"
	app.Usage = "Master System and TMS9928A pattern generator"
	app.Description = wordwrap.WrapString(description, 76)
	app.Version = "0.3.0"
	app.ArgsUsage = "IMAGE..."

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "mode-0",
			Usage: "generate TMS9928A Mode-0 patterns and colour table",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			EnvVars: []string{"SNEPTILE_OUTPUT"},
			Usage:   "directory to write the header files to",
		},
		&cli.StringSliceFlag{
			Name:  "palette",
			Usage: "initial Mode-4 palette as 6-bit colours, e.g. 0x00,0x3f",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on colours outside the TMS9928A palette instead of using colour 0",
		},
		&cli.BoolFlag{
			Name:  "quantize",
			Usage: "reduce image colours to fit the selected mode before encoding",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"SNEPTILE_CACHE"},
			Usage:   "path to database of previously generated output",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Value: runtime.NumCPU(),
			Usage: "number of images to decode concurrently",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if err := run(c); err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
