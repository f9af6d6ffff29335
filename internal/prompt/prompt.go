// Package prompt collects choices and confirmations from the user.
package prompt

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Choice is one labeled option in a select prompt.
type Choice struct {
	Label string
	Value string
}

// Prompter asks the user questions. Select returns an empty value when the
// user cancels.
type Prompter interface {
	Select(ctx context.Context, title string, choices []Choice, initial string) (string, error)
	Confirm(ctx context.Context, title string, def bool) (bool, error)
}

// Huh is a Prompter backed by huh forms.
type Huh struct {
	Accessible bool // plain numbered prompts instead of the interactive form
}

// NewHuh returns a huh backed prompter. It falls back to accessible mode
// when stdin is not a terminal so piped answers still work.
func NewHuh() *Huh {
	return &Huh{Accessible: !term.IsTerminal(int(os.Stdin.Fd()))}
}

// Select shows a single-select list starting on initial when it is one of
// the choices.
func (h *Huh) Select(ctx context.Context, title string, choices []Choice, initial string) (string, error) {
	value := initialValue(choices, initial)

	field := huh.NewSelect[string]().
		Title(title).
		Options(options(choices)...).
		Value(&value)

	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(h.Accessible).
		RunWithContext(ctx)
	return selected(value, err)
}

// Confirm asks a yes/no question. Aborting the prompt answers with def.
func (h *Huh) Confirm(ctx context.Context, title string, def bool) (bool, error) {
	value := def

	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(h.Accessible).
		RunWithContext(ctx)
	return confirmed(value, def, err)
}

// initialValue is the choice the select list starts on: initial when it is
// offered, else the first choice.
func initialValue(choices []Choice, initial string) string {
	if !hasValue(choices, initial) && len(choices) > 0 {
		return choices[0].Value
	}
	return initial
}

// selected maps an aborted select to the empty cancel marker.
func selected(value string, err error) (string, error) {
	if errors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// confirmed maps an aborted confirm to def.
func confirmed(value, def bool, err error) (bool, error) {
	if errors.Is(err, huh.ErrUserAborted) {
		return def, nil
	}
	if err != nil {
		return false, err
	}
	return value, nil
}

func options(choices []Choice) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		opts = append(opts, huh.NewOption(c.Label, c.Value))
	}
	return opts
}

func hasValue(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
