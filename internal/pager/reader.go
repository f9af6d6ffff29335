package pager

import (
	"context"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/metcalfc/folio/internal/prompt"
	"github.com/metcalfc/folio/internal/state"
)

// PositionStore loads and saves reading positions keyed by book path.
type PositionStore interface {
	Load(bookPath string) (state.Position, bool)
	Save(bookPath string, scroll, chapter int) error
}

// Config wires a Reader to its collaborators.
type Config struct {
	Key      string // book identity used for the position record
	Options  Options
	Prompter prompt.Prompter
	Store    PositionStore
	Out      io.Writer
	Clear    bool // clear the screen before each page
	Logger   zerolog.Logger
}

// Reader runs an interactive reading session over a Document.
type Reader struct {
	doc *Document
	cfg Config
}

// NewReader creates a Reader for doc.
func NewReader(doc *Document, cfg Config) *Reader {
	return &Reader{doc: doc, cfg: cfg}
}

// Run reads until the user quits, then saves the position.
func (r *Reader) Run(ctx context.Context) error {
	s, err := r.Start(ctx)
	if err != nil {
		return err
	}

	s, err = r.Loop(ctx, s)
	if err != nil {
		return err
	}

	return r.Finish(s)
}

// Start builds the initial session, offering to resume a saved position
// that lies strictly inside the book.
func (r *Reader) Start(ctx context.Context) (Session, error) {
	s := NewSession(r.doc, r.cfg.Options)

	pos, ok := r.cfg.Store.Load(r.cfg.Key)
	if !ok || pos.Scroll <= 0 || pos.Scroll >= s.TotalLines() {
		return s, nil
	}

	msg := fmt.Sprintf("Continue from where you left off? (Line %d)", pos.Scroll+1)
	resume, err := r.cfg.Prompter.Confirm(ctx, msg, true)
	if err != nil {
		return s, fmt.Errorf("resume prompt: %w", err)
	}
	if !resume {
		r.cfg.Logger.Debug().Int("scroll", pos.Scroll).Msg("saved position declined")
		return s, nil
	}

	s = s.Restore(pos)
	r.cfg.Logger.Debug().Int("scroll", s.Scroll).Int("chapter", s.Chapter).Msg("resumed")
	return s, nil
}

// Loop renders a page, asks for a command and applies it until quit. A
// cancelled prompt counts as quit.
func (r *Reader) Loop(ctx context.Context, s Session) (Session, error) {
	for !s.Done() {
		r.render(s)

		choice, err := r.cfg.Prompter.Select(ctx, "Navigation:", Choices(s), string(s.Last))
		if err != nil {
			return s, fmt.Errorf("navigation prompt: %w", err)
		}

		cmd := Command(choice)
		if choice == "" {
			cmd = Quit
		}

		s = s.Apply(cmd)
		r.cfg.Logger.Debug().Str("cmd", string(cmd)).Int("scroll", s.Scroll).Int("chapter", s.Chapter).Msg("navigate")
	}
	return s, nil
}

// Finish saves the final position.
func (r *Reader) Finish(s Session) error {
	if err := r.cfg.Store.Save(r.cfg.Key, s.Scroll, s.Chapter); err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	r.cfg.Logger.Info().Str("book", r.cfg.Key).Int("scroll", s.Scroll).Int("chapter", s.Chapter).Msg("position saved")
	return nil
}

func (r *Reader) render(s Session) {
	if r.cfg.Out == nil {
		return
	}
	if r.cfg.Clear {
		termenv.NewOutput(r.cfg.Out).ClearScreen()
	}
	fmt.Fprint(r.cfg.Out, s.Render())
}

// Choices turns the legal commands of s into prompt choices.
func Choices(s Session) []prompt.Choice {
	legal := s.Legal()
	choices := make([]prompt.Choice, 0, len(legal))
	for _, c := range legal {
		choices = append(choices, prompt.Choice{Label: c.Label(), Value: string(c)})
	}
	return choices
}
