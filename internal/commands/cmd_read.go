package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/metcalfc/folio/internal/logging"
	"github.com/metcalfc/folio/internal/pager"
	"github.com/metcalfc/folio/internal/prompt"
	"github.com/metcalfc/folio/internal/reader"
	"github.com/metcalfc/folio/internal/state"
	"github.com/metcalfc/folio/internal/tui"
)

type ReadCmd struct {
	flags *Flags

	// flags
	tui   bool
	reset bool

	prompter prompt.Prompter
}

// NewReadCmd creates a new read command
func NewReadCmd(flags *Flags) *ReadCmd {
	return &ReadCmd{flags: flags, prompter: prompt.NewHuh()}
}

// Flags returns the reading flags. They are registered on the root command
// so both read and library see them.
func (cmd *ReadCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "tui",
			Usage:       "read in a full screen view driven by single keys",
			Sources:     cli.EnvVars("FOLIO_TUI"),
			Destination: &cmd.tui,
		},
		&cli.BoolFlag{
			Name:        "reset",
			Usage:       "forget the saved position and start from the top",
			Destination: &cmd.reset,
		},
	}
}

// Register adds the read command to the application
func (cmd *ReadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "read",
		Usage:     "Read a book",
		UsageText: "folio read [--tui] [--reset] <file>",
		Description: `Opens an EPUB, Markdown or plain text book in a fixed size page and
pages through it with a menu of navigation commands.

The position is saved on exit and offered again the next time the same
book is opened.`,
		Action: cmd.Run,
	})

	return app
}

// Run reads the book named by the first argument.
func (cmd *ReadCmd) Run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing book path. Run 'folio read --help' for usage")
	}
	return cmd.Read(ctx, c.Root().Writer, path)
}

// Read opens path and runs a reading session over it.
func (cmd *ReadCmd) Read(ctx context.Context, out io.Writer, path string) error {
	cfg := cmd.flags.Config
	logger := logging.Component("read")

	book, err := reader.Open(path, reader.OpenOptions{SkipBroken: cfg.SkipBrokenChapters})
	if err != nil {
		return err
	}

	opts := cfg.PagerOptions()
	lines, sections := reader.Layout(book, opts.PageWidth)
	doc := pager.NewDocument(lines, cfg.HeadingRules()).WithSections(sections)
	logger.Info().
		Str("book", path).
		Str("title", book.Title).
		Int("lines", len(doc.Lines)).
		Int("chapters", len(doc.Markers)).
		Int("sections", len(sections)).
		Msg("book opened")
	for _, sec := range sections {
		logger.Debug().Int("line", sec.Line).Str("title", sec.Title).Msg("section")
	}

	store, err := state.NewStore(cfg.State.Dir)
	if err != nil {
		return err
	}

	if cmd.reset {
		if err := store.Clear(path); err != nil {
			return err
		}
		logger.Debug().Str("book", path).Msg("saved position cleared")
	}

	r := pager.NewReader(doc, pager.Config{
		Key:      path,
		Options:  opts,
		Prompter: cmd.prompter,
		Store:    store,
		Out:      out,
		Clear:    true,
		Logger:   logging.Component("pager"),
	})

	if cmd.tui {
		return runTUI(ctx, r)
	}
	return r.Run(ctx)
}

func runTUI(ctx context.Context, r *pager.Reader) error {
	s, err := r.Start(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(s), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		s = m.Session()
	}
	return r.Finish(s)
}
