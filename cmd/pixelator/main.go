package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/urfave/cli/v2"

	"github.com/CBibop12/pixelator"
	"github.com/CBibop12/pixelator/project"
)

const (
	defaultDB     = "pixelator.db"
	defaultConfig = "pixelator.toml"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// parseMappings turns repeated SRC=DST flags into a color mapping, using
// go-colorful to validate and normalize both sides to lowercase #rrggbb.
func parseMappings(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(specs))
	for _, s := range specs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid mapping %q, want SRC=DST", s)
		}
		src, err := colorful.Hex(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid mapping source %q: %w", parts[0], err)
		}
		dst, err := colorful.Hex(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid mapping target %q: %w", parts[1], err)
		}
		m[src.Hex()] = dst.Hex()
	}
	return m, nil
}

func loadConfig(c *cli.Context) (*pixelator.Config, error) {
	cfg, err := pixelator.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("width") || c.IsSet("height") {
		cfg.Pipeline.SizeMode = project.SizeModeDimensions
		if c.IsSet("width") && !c.IsSet("height") {
			cfg.Pipeline.SizeMode = project.SizeModeWidth
			cfg.Pipeline.SizeValue = c.Int("width")
		} else if c.IsSet("height") && !c.IsSet("width") {
			cfg.Pipeline.SizeMode = project.SizeModeHeight
			cfg.Pipeline.SizeValue = c.Int("height")
		} else {
			cfg.Pipeline.Width = c.Int("width")
			cfg.Pipeline.Height = c.Int("height")
		}
	}
	if c.IsSet("colors") {
		cfg.Pipeline.Colors = c.Int("colors")
	}
	if c.IsSet("contrast") {
		cfg.Pipeline.Contrast = c.Float64("contrast")
	}
	if c.IsSet("scale") {
		cfg.Export.Scale = c.Int("scale")
	}
	if c.IsSet("map") {
		mapping, err := parseMappings(c.StringSlice("map"))
		if err != nil {
			return nil, err
		}
		cfg.Mapping = mapping
	}

	return cfg, nil
}

func newPixelator(c *cli.Context) (*pixelator.Pixelator, *pixelator.Store, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	store, err := pixelator.NewStore(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return pixelator.New(store, cfg, newLogger(c)), store, nil
}

var pipelineFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "width",
		Aliases: []string{"W"},
		Usage:   "target width in pixels",
	},
	&cli.IntFlag{
		Name:    "height",
		Aliases: []string{"H"},
		Usage:   "target height in pixels",
	},
	&cli.IntFlag{
		Name:    "colors",
		Aliases: []string{"n"},
		Usage:   "target number of colors",
	},
	&cli.Float64Flag{
		Name:    "contrast",
		Aliases: []string{"c"},
		Usage:   "contrast factor",
	},
	&cli.IntFlag{
		Name:    "scale",
		Aliases: []string{"s"},
		Usage:   "output upscale factor",
	},
	&cli.StringSliceFlag{
		Name:    "map",
		Aliases: []string{"m"},
		Usage:   "replace an output color, SRC=DST hex pair",
	},
}

type paletteEntry struct {
	Hex   string  `json:"hex"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

func main() {
	app := cli.NewApp()

	app.Name = "pixelator"
	app.Usage = "Convert images to pixel art"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXELATOR_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to the project database",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"PIXELATOR_CONFIG"},
			Value:   filepath.Join(cwd, defaultConfig),
			Usage:   "path to the config file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert a single image",
			ArgsUsage: "INPUT OUTPUT",
			Flags:     pipelineFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, store, err := newPixelator(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer store.Close()

				if err := p.ConvertFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "palette",
			Usage:     "Print the palette a conversion would produce",
			ArgsUsage: "INPUT",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print the palette as JSON",
				},
			}, pipelineFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, store, err := newPixelator(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer store.Close()

				file := c.Args().First()

				palette, err := p.Palette(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				total := 0
				for _, e := range palette {
					total += e.Count
				}

				entries := make([]paletteEntry, 0, len(palette))
				for _, e := range palette {
					entries = append(entries, paletteEntry{
						Hex:   e.Color.Hex(),
						Count: e.Count,
						Share: float64(e.Count) / float64(total),
					})
				}

				if c.Bool("json") {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					if err := enc.Encode(entries); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				}

				dominant, err := p.Dominant(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Printf("dominant: %s\n", strings.ToLower(dominant))
				for _, e := range entries {
					fmt.Printf("%s\tcount=%d\tshare=%.2f%%\n", e.Hex, e.Count, e.Share*100)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Convert every image under a directory",
			ArgsUsage: "SOURCE TARGET",
			Flags:     pipelineFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, store, err := newPixelator(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer store.Close()

				if err := p.Scan(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "watch",
			Usage:     "Watch a directory and convert images as they appear",
			ArgsUsage: "SOURCE TARGET",
			Flags:     pipelineFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, store, err := newPixelator(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer store.Close()

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := p.Watch(ctx, c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "project",
			Usage: "Manage saved projects",
			Subcommands: []*cli.Command{
				{
					Name:      "save",
					Usage:     "Save an image and the current parameters as a project",
					ArgsUsage: "NAME INPUT",
					Flags:     pipelineFlags,
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						p, store, err := newPixelator(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer store.Close()

						if err := p.SaveProject(c.Args().Get(0), c.Args().Get(1)); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:      "load",
					Usage:     "Render a saved project",
					ArgsUsage: "NAME OUTPUT",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						p, store, err := newPixelator(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer store.Close()

						if err := p.LoadProject(c.Args().Get(0), c.Args().Get(1)); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List saved projects",
					Action: func(c *cli.Context) error {
						_, store, err := newPixelator(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer store.Close()

						names, err := store.Projects()
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						for _, name := range names {
							fmt.Println(name)
						}

						return nil
					},
				},
				{
					Name:      "delete",
					Usage:     "Delete a saved project",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						_, store, err := newPixelator(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer store.Close()

						if err := store.DeleteProject(c.Args().First()); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
