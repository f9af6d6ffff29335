package commands

import (
	"github.com/metcalfc/folio/internal/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Width      int
	Height     int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// ApplyOverrides copies page size flags onto the loaded config and
// validates the result.
func (f *Flags) ApplyOverrides() error {
	if f.Width > 0 {
		f.Config.Page.Width = f.Width
	}
	if f.Height > 0 {
		f.Config.Page.Height = f.Height
	}
	return f.Config.Validate()
}
