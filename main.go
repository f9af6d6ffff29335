package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/metcalfc/folio/internal/commands"
	"github.com/metcalfc/folio/internal/config"
	"github.com/metcalfc/folio/internal/logging"
	"github.com/metcalfc/folio/internal/state"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func build() string {
	v, c, d := version, commit, date

	// go install leaves the ldflags unset; fall back to the module build info.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func newApp() *cli.Command {
	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "folio",
		Usage:     "Page through books in the terminal",
		UsageText: "folio [global options] [command] [file]",
		Description: `Folio shows EPUB, Markdown and plain text books one fixed size page at a
time, detects chapter headings, and remembers where you stopped.

Run 'folio <file>' to read a book.
Run 'folio library' to pick one from your library directory.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FOLIO_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <state-dir>/folio.log)",
				Sources:     cli.EnvVars("FOLIO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FOLIO_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "page width in columns (overrides page.width)",
				Sources:     cli.EnvVars("FOLIO_WIDTH"),
				Destination: &flags.Width,
			},
			&cli.IntFlag{
				Name:        "height",
				Usage:       "page height in lines (overrides page.height)",
				Sources:     cli.EnvVars("FOLIO_HEIGHT"),
				Destination: &flags.Height,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(state.DefaultDir(), "folio.log")
			}

			logger, closer, err := logging.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if err := flags.ApplyOverrides(); err != nil {
				return ctx, fmt.Errorf("invalid flags: %w", err)
			}

			log.Debug().
				Str("config", flags.ConfigPath).
				Int("width", cfg.Page.Width).
				Int("height", cfg.Page.Height).
				Msg("config loaded")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	readCmd := commands.NewReadCmd(flags)

	app = readCmd.Register(app)
	app = commands.NewLibraryCmd(flags, readCmd).Register(app)
	app = commands.NewFormatsCmd().Register(app)
	app = commands.NewConfigCmd(flags).Register(app)

	app.Flags = append(app.Flags, readCmd.Flags()...)

	// A bare file argument reads it.
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return cli.ShowAppHelp(c)
		}
		return readCmd.Run(ctx, c)
	}

	return app
}

func main() {
	err := newApp().Run(context.Background(), os.Args)
	if errors.Is(err, huh.ErrUserAborted) {
		err = nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
