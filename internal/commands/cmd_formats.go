package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/metcalfc/folio/internal/reader"
)

type FormatsCmd struct{}

// NewFormatsCmd creates a new formats command
func NewFormatsCmd() *FormatsCmd {
	return &FormatsCmd{}
}

// Register adds the formats command to the application
func (cmd *FormatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "formats",
		Usage:  "List supported book formats",
		Action: cmd.run,
	})

	return app
}

func (cmd *FormatsCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer
	for _, f := range reader.SupportedFormats() {
		_, _ = fmt.Fprintln(out, f)
	}
	_, _ = fmt.Fprintln(out, "Other files are read as plain text.")
	return nil
}
