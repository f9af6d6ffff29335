package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/metcalfc/folio/internal/library"
	"github.com/metcalfc/folio/internal/prompt"
)

type LibraryCmd struct {
	flags *Flags
	read  *ReadCmd

	prompter prompt.Prompter
}

// NewLibraryCmd creates a new library command
func NewLibraryCmd(flags *Flags, read *ReadCmd) *LibraryCmd {
	return &LibraryCmd{flags: flags, read: read, prompter: prompt.NewHuh()}
}

// Register adds the library command to the application
func (cmd *LibraryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "library",
		Usage:     "Pick a book from the library",
		UsageText: "folio library [dir]",
		Description: `Lists the folders under the library directory, then the books inside the
chosen folder. After a book is closed the folder list is shown again.

The directory defaults to library.dir from the config file.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *LibraryCmd) run(ctx context.Context, c *cli.Command) error {
	root := c.Args().First()
	if root == "" {
		root = cmd.flags.Config.Library.Dir
	}

	for {
		book, err := library.Choose(ctx, cmd.prompter, root, cmd.flags.Config.Library.Ignore...)
		if errors.Is(err, library.ErrEmpty) {
			fmt.Fprintf(c.Root().ErrWriter, "No books found in %s\n", root)
			return nil
		}
		if err != nil {
			return err
		}
		if book == "" {
			return nil
		}

		log.Debug().Str("book", book).Msg("library selection")
		if err := cmd.read.Read(ctx, c.Root().Writer, book); err != nil {
			return err
		}
	}
}
